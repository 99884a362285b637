package packet

import "fmt"

// WireError is raised by Reader/Sender implementations when the
// underlying driver fails — a closed channel, a send that the NIC
// rejected, or similar transport-level failure.
type WireError struct {
	Msg   string
	Cause error
}

func (e *WireError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *WireError) Unwrap() error {
	return e.Cause
}

func newWireError(msg string, cause error) *WireError {
	return &WireError{Msg: msg, Cause: cause}
}
