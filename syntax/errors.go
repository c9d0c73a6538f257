package syntax

import (
	"errors"
	"fmt"
)

// ErrDestroyed is returned if a destroyed node is asked to take part in
// a linkage operation.
var ErrDestroyed = errors.New("syntax unit has been destroyed")

// ErrUngrouped is returned for anchor-relative operations on a node which is not
// a member of any collection.
var ErrUngrouped = errors.New("syntax unit is not a member of a collection")

// ErrNotMember is returned if a collection is handed a node which is not (or no
// longer) one of its members.
var ErrNotMember = errors.New("syntax unit is not a member of this collection")

// ErrNilUnit is returned when broadcasting a nil unit.
var ErrNilUnit = errors.New("cannot broadcast nil syntax unit")

// ErrNoRefiner is returned if a refinable node is asked to refine itself without
// ever having been attached to a refiner.
var ErrNoRefiner = errors.New("refinable syntax unit has no refiner attached")

// ParseError is an error for input not matching the expected structure.
// Line and Column refer to the original source text.
type ParseError struct {
	Line, Column int
	Message      string
	Err          error // underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Errorf creates a parse error at a given source position.
func Errorf(line, col int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

// ErrorAt re-anchors err at a source position. It is used for errors raised while
// parsing a fragment of raw content: whatever position the fragment parser reports,
// the resulting error points to the start of the raw content.
// If err is nil, ErrorAt returns nil.
func ErrorAt(line, col int, msg string, err error) error {
	if err == nil {
		return nil
	}
	var perr *ParseError
	if errors.As(err, &perr) && perr.Line == line && perr.Column == col {
		return perr
	}
	return &ParseError{Line: line, Column: col, Message: msg, Err: err}
}
