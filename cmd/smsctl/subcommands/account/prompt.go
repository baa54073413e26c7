package account

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt asks a value of label. When secret is true, input should not be echoed.
type Prompt func(label string, secret bool) (string, error)

var ErrEmptyInput = errors.New("no input")

// Terminal returns Prompt which writes labels to out and reads lines from in.
//
// When in is a terminal, secret values are read without echo.
func Terminal(in io.Reader, out io.Writer) Prompt {
	return func(label string, secret bool) (string, error) {
		if _, err := fmt.Fprintf(out, "%s: ", label); err != nil {
			return "", err
		}
		if f, ok := in.(*os.File); ok && secret && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
		return readLine(in)
	}
}

// readLine reads one line byte by byte, so that following reads start at the next line.
func readLine(in io.Reader) (string, error) {
	b := []byte{}
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			b = append(b, buf[0])
		}
		if errors.Is(err, io.EOF) {
			if len(b) == 0 {
				return "", ErrEmptyInput
			}
			break
		} else if err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(string(b), "\r"), nil
}

// ask returns given if it is not empty. Otherwise, it prompts.
func ask(prompt Prompt, given string, label string, secret bool) (string, error) {
	if given != "" {
		return given, nil
	}
	v, err := prompt(label, secret)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", label, err)
	}
	return v, nil
}
