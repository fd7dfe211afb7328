package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS color keywords and functional notations such as
// "rgb(1,2,3)". It is intentionally loose: the value ends up in a style
// attribute, so the only hard requirement is that it cannot break out of it.
var namedColorRegex = regexp.MustCompile(`^([a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)

// ValidateColor validates a CSS color value used for tag or container styling.
// The special value "auto" is accepted; it selects black or white text from
// the background luminance.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if color == "auto" || hexColorRegex.MatchString(color) || namedColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidColor, "invalid color: %q", color)
}

// ValidateLink validates a tag link target.
//
// Links are written into href attributes, so the rules are about safety
// rather than URL correctness: relative links and any ordinary scheme are
// fine, script-capable schemes and control characters are not.
func ValidateLink(link string) error {
	if link == "" {
		return nil
	}

	const maxLinkLength = 2048
	if len(link) > maxLinkLength {
		return New(ErrCodeInvalidLink, "link too long (max %d characters)", maxLinkLength)
	}

	for _, r := range link {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLink, "link contains invalid control characters")
		}
	}

	lower := strings.ToLower(strings.TrimSpace(link))
	for _, scheme := range []string{"javascript:", "vbscript:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return New(ErrCodeInvalidLink, "link scheme not allowed: %q", scheme)
		}
	}

	return nil
}

// ValidatePath validates an input or output file path given on the command
// line or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateTagText validates the display text of a tag.
func ValidateTagText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidInput, "tag text cannot be empty")
	}
	if len(text) > 256 {
		return New(ErrCodeInvalidInput, "tag text too long (max 256 characters)")
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "tag text contains null bytes")
	}
	return nil
}
