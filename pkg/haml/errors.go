package haml

import "fmt"

// MalformedDirectiveError is returned when a control line spells out a
// closing directive. Closers are generated by the compiler and may not be
// written by hand.
type MalformedDirectiveError struct {
	Line   int // 1-based, zero when unknown
	Source string // the line as written, without its terminator
	Tag    string
}

func (e *MalformedDirectiveError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %q: %s is generated automatically, do not close tags manually", e.Line, e.Source, e.Tag)
	}
	return fmt.Sprintf("%q: %s is generated automatically, do not close tags manually", e.Source, e.Tag)
}
