package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apierr "github.com/opst/smsctl/pkg/api/types/errors"
)

var (
	// ErrUnauthorized matches ApiError of 401.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrForbidden matches ApiError of 403.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound matches ApiError of 404.
	ErrNotFound = errors.New("not found")

	// ErrTransport matches ApiError caused without response.
	ErrTransport = errors.New("no response from server")

	// ErrInvalidRequest matches ApiError for requests rejected before sending.
	ErrInvalidRequest = errors.New("request is invalid")

	// ErrMalformedResponse is returned when a response does not fit its schema.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotReadBack is returned when a create or update has succeeded,
	// but the written resource cannot be fetched to complete the response.
	ErrNotReadBack = errors.New("saved, but cannot read it back")
)

// ApiError is a failure of an API call.
//
// Status is 0 when no response is received. In that case, Cause tells why.
// Payload is the body of the error response, or field errors found before sending.
type ApiError struct {
	Status    int
	Payload   apierr.Payload
	Summary   string
	Method    string
	URL       string
	RequestId string
	Cause     error
}

func (e *ApiError) Error() string {
	lines := []string{e.summary()}
	if !e.Payload.IsEmpty() {
		lines = append(lines, e.Payload.String())
	}
	if e.Cause != nil && e.Status == 0 {
		lines = append(lines, e.Cause.Error())
	}
	return strings.Join(lines, "\n")
}

func (e *ApiError) summary() string {
	if e.Summary != "" {
		return e.Summary
	}
	if e.Status == 0 {
		if e.IsValidation() {
			return ErrInvalidRequest.Error()
		}
		return ErrTransport.Error()
	}
	return fmt.Sprintf("%s (status code = %d)", StatusCodeRangeOf(e.Status), e.Status)
}

// Verbose includes the request line and the request id to find the call in server logs.
func (e *ApiError) Verbose() string {
	lines := []string{e.Error()}
	if e.Method != "" {
		lines = append(lines, fmt.Sprintf("request: %s %s", e.Method, e.URL))
	}
	if e.RequestId != "" {
		lines = append(lines, "request id: "+e.RequestId)
	}
	if e.Status != 0 {
		lines = append(lines, fmt.Sprintf("status: %d %s", e.Status, http.StatusText(e.Status)))
	}
	if e.Cause != nil {
		lines = append(lines, "caused by: "+e.Cause.Error())
	}
	return strings.Join(lines, "\n")
}

func (e *ApiError) Unwrap() error {
	return e.Cause
}

func (e *ApiError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrTransport:
		return e.IsTransport()
	case ErrInvalidRequest:
		return e.Status == 0 && !e.Payload.IsEmpty()
	}
	return false
}

// IsTransport reports the request has not reached the server.
func (e *ApiError) IsTransport() bool {
	return e.Status == 0 && e.Payload.IsEmpty()
}

// IsValidation reports the error carries field-level messages,
// from the server (4xx) or found before sending.
func (e *ApiError) IsValidation() bool {
	if len(e.Payload.Fields) == 0 {
		return false
	}
	return e.Status == 0 || StatusCodeRangeOf(e.Status) == Status4xx
}
