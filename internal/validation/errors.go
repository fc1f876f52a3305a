package validation

import "fmt"

// MalformedResponseError indicates the generative provider payload could not
// yield any valid candidate: it is not a sequence of record-like objects, it
// is empty, or every record failed validation.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
