package hidreport

import "fmt"

// ParseError is a fatal descriptor parse failure: an unknown tag byte, a
// truncated item payload, or a corrupt Push/Pop (Pop with an empty stack).
// It always carries the byte offset at which the failure occurred.
type ParseError struct {
	Offset int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hidreport: parse error at offset %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("hidreport: parse error at offset %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
