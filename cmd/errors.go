package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var errorLabel = color.New(color.FgRed, color.Bold)

// printError writes "Error: <message>" to w. Colour is dropped when stderr
// is not a terminal.
func printError(w io.Writer, err error) {
	_, _ = errorLabel.Fprint(w, "Error:")
	_, _ = fmt.Fprintf(w, " %v\n", err)
}
