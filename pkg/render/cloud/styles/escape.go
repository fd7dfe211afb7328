package styles

import "strings"

var entities = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape entity-encodes a value for use in markup text or a quoted
// attribute.
func Escape(s string) string { return entities.Replace(s) }
