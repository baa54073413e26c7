package screen

import (
	"context"
	"errors"

	"github.com/opst/smsctl/cmd/smsctl/rest"
)

// TryAgain is the message for failures where no response is received.
const TryAgain = "cannot reach the server. check your network and try again"

// SubmitError is a failure of submitting a form, with a message to be shown.
type SubmitError struct {
	// Field is the name of field the message is for. Empty when the message is not for a field.
	Field   string
	Message string
	Cause   error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}

// ErrorMessage chooses a message to be shown for err.
//
// The message is the first one of
//
//   - the first message of preferred fields, in the given order
//
//   - the first message of other fields, in the order of the response
//
//   - the detail of the response
//
//   - fallback
//
// When no response is received, it is TryAgain.
func ErrorMessage(err error, fallback string, preferred ...string) (field string, message string) {
	var apierr *rest.ApiError
	if !errors.As(err, &apierr) {
		return "", fallback
	}
	if apierr.IsTransport() {
		return "", TryAgain
	}

	for _, f := range preferred {
		if m := apierr.Payload.Messages(f); len(m) != 0 {
			return f, m[0]
		}
	}
	if f, m, ok := apierr.Payload.First(); ok {
		return f.Name, m
	}
	if apierr.Payload.Detail != "" {
		return "", apierr.Payload.Detail
	}
	return "", fallback
}

// Submitter sends the input of the form.
type Submitter[I any, O any] func(ctx context.Context, in I) (O, error)

// Form is a controller of a create or update screen.
type Form[I any, O any] struct {
	submit    Submitter[I, O]
	fallback  string
	preferred []string
}

// NewForm creates a Form.
//
// fallback is the message when the failure tells nothing. Messages of preferred fields
// are chosen first. See ErrorMessage.
func NewForm[I any, O any](submit Submitter[I, O], fallback string, preferred ...string) *Form[I, O] {
	return &Form[I, O]{submit: submit, fallback: fallback, preferred: preferred}
}

// Submit sends in. On failure, it returns *SubmitError.
func (f *Form[I, O]) Submit(ctx context.Context, in I) (O, error) {
	out, err := f.submit(ctx, in)
	if err != nil {
		field, msg := ErrorMessage(err, f.fallback, f.preferred...)
		return out, &SubmitError{Field: field, Message: msg, Cause: err}
	}
	return out, nil
}
