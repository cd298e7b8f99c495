package validy

import (
	"errors"
	"fmt"
)

// Sentinel errors for API misuse. They are returned as Go errors (check with
// errors.Is) and never appear inside a Result: passing an unknown name is a
// defect in the calling code, not a data-quality problem, so it must fail
// loudly instead of producing a {Success:false} result.
var (
	ErrSchemaNotFound    = errors.New("schema not found")
	ErrValidatorNotFound = errors.New("validator not found")
	ErrDuplicateName     = errors.New("name already registered")
	ErrBatchTooLarge     = errors.New("batch exceeds configured limit")
)

// panicError wraps a recovered panic value so it can travel through the
// system-failure path with a readable message.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}

// systemViolation converts a recovered panic or internal error into the
// single engine-level violation surfaced as {Field:"system", Code:SYSTEM_ERROR}.
// The cause text is carried in Received for debugging; the rendered message
// stays generic so internals never leak into UI copy.
func systemViolation(cause any) Violation {
	var received string
	switch c := cause.(type) {
	case error:
		received = c.Error()
	default:
		received = fmt.Sprint(c)
	}
	return Violation{
		Path:     []string{FieldSystem},
		Code:     CodeSystem,
		Received: received,
	}
}
