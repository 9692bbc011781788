package ui

import (
	"fmt"
	"io"
)

// SetTerminalBackground emits OSC 11 to w to set the terminal's default
// background color, so unstyled cells match the theme. It returns a function
// that restores the terminal's own default via OSC 111.
func SetTerminalBackground(w io.Writer, hexColor string) func() {
	if hexColor == "" {
		return func() {}
	}
	fmt.Fprintf(w, "\033]11;%s\033\\", hexColor)

	return func() {
		fmt.Fprint(w, "\033]111\033\\")
	}
}
