package editor

import (
	"errors"
	"strings"
)

var ErrEditorClosed = errors.New("editor is not open")

// ValidationError lists the draft fields that were empty at submit time.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "please fill in all fields: " + strings.Join(e.Missing, ", ")
}
