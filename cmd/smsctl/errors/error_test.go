package errors_test

import (
	"errors"
	"strings"
	"testing"

	cerr "github.com/opst/smsctl/cmd/smsctl/errors"
)

func TestCuiError(t *testing.T) {
	cause := errors.New("connection refused")
	testee := cerr.NewCuiError(
		"cannot reach the server",
		cerr.WithLines("GET http://localhost:8000/api/v1/students/"),
		cerr.WithAdvice("is sms server running?"),
		cerr.WithVerbose("request id: 1234"),
		cerr.WithCause(cause),
	)

	expected := "cannot reach the server\nGET http://localhost:8000/api/v1/students/\nis sms server running?"
	if actual := testee.Error(); actual != expected {
		t.Errorf("unmatch Error():\n===actual===\n%s\n===expected===\n%s", actual, expected)
	}
	if !errors.Is(testee, cause) {
		t.Error("cause is not unwrapped")
	}

	verbose := testee.Verbose()
	for _, part := range []string{expected, "request id: 1234", "caused by: ", "connection refused"} {
		if !strings.Contains(verbose, part) {
			t.Errorf("Verbose() does not contain %q:\n%s", part, verbose)
		}
	}
}
