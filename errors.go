package tinydisplay

import (
	"errors"
	"fmt"
)

// ErrNoFont is returned when text is drawn before a font is loaded.
var ErrNoFont = errors.New("tinydisplay: no font loaded")

// ResourceError reports a draw call that needs a resource the engine does
// not hold.
type ResourceError struct {
	Op  string // "text", "glyph"
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("tinydisplay: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResourceError) Unwrap() error {
	return e.Err
}
