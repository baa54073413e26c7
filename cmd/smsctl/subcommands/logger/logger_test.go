package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opst/smsctl/cmd/smsctl/subcommands/logger"
)

func TestFor(t *testing.T) {
	t.Run("lines are prefixed with the command name", func(t *testing.T) {
		buf := new(bytes.Buffer)
		logger.For(buf, "smsctl student list").Printf("found %d", 3)

		got := buf.String()
		if !strings.HasPrefix(got, "[smsctl student list] ") {
			t.Errorf("prefix: %q", got)
		}
		if !strings.HasSuffix(got, "found 3\n") {
			t.Errorf("message: %q", got)
		}
	})

	t.Run("without name, no prefix is written", func(t *testing.T) {
		buf := new(bytes.Buffer)
		logger.For(buf, "").Print("hello")
		if got := buf.String(); strings.HasPrefix(got, "[") {
			t.Errorf("unexpected prefix: %q", got)
		}
	})
}
