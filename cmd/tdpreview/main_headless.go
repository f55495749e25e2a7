//go:build headless

// Command tdpreview needs a display; headless builds only report that.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "tdpreview: built with the headless tag, no window available; use tdemo -term")
	os.Exit(1)
}
