package measure

import "github.com/mattn/go-runewidth"

// Cells measures labels in terminal cells. Font size is ignored: every tag
// is one line tall, and wide runes (CJK, emoji) count as two cells.
type Cells struct{}

// Measure implements Measurer.
func (Cells) Measure(l Label) (Size, error) {
	return l.Box.Outer(float64(runewidth.StringWidth(l.Text)), 1), nil
}
