package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks requests that could not be sent or answered.
	ErrTransport = errors.New("transport failure")
	// ErrDecode marks responses that are not an analysis result at all.
	ErrDecode = errors.New("malformed response")
	// ErrUploadRejected marks upload responses without a true "ok" flag.
	ErrUploadRejected = errors.New("upload rejected")
	// ErrUnsupportedFile marks uploads of files the service does not accept.
	ErrUnsupportedFile = errors.New("only .cps files are accepted")
)

// HTTPError carries the status of a response that could not be decoded.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.Status)
	}
	return fmt.Sprintf("http status %d: %s", e.Status, e.Body)
}

// NetworkCode is the diagnostic code of a synthesized transport failure.
const NetworkCode = "NET"

// FailureResult converts a transport or decode failure into the same shape
// as a result reported by the service.
func FailureResult(err error) *Result {
	return &Result{
		OK: false,
		Diagnostics: []Diagnostic{{
			Code:    NetworkCode,
			Message: err.Error(),
			Line:    1,
			Column:  1,
		}},
	}
}
