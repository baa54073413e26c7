// Package logger builds loggers for subcommands.
package logger

import (
	"fmt"
	"io"
	"log"
)

// For returns a logger for the command named name, writing into w.
//
// Lines are prefixed with "[name] ".
func For(w io.Writer, name string) *log.Logger {
	prefix := ""
	if name != "" {
		prefix = fmt.Sprintf("[%s] ", name)
	}
	return log.New(w, prefix, log.LstdFlags)
}

// Null returns a logger discarding everything.
func Null() *log.Logger {
	return For(io.Discard, "")
}
