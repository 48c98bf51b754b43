package view

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the terminal display width of the resolved text.
// Newlines contribute zero width.
func (v View) Width() (int, error) {
	text, err := v.Text()
	if err != nil {
		return 0, err
	}
	return runewidth.StringWidth(text), nil
}

// LenGraphemes returns the number of user-perceived characters (extended
// grapheme clusters) in the resolved text.
func (v View) LenGraphemes() (int, error) {
	text, err := v.Text()
	if err != nil {
		return 0, err
	}
	return uniseg.GraphemeClusterCount(text), nil
}
