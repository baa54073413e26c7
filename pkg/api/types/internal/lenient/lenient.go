// Package lenient decodes JSON values which servers put in more than one shape.
package lenient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

var null = []byte("null")

// Ref decodes a related resource.
//
// Some responses have only the id of a related resource in place of its
// projection. For them, the result is made by withId.
// null or absent value is the zero value.
func Ref[T any](raw json.RawMessage, withId func(id int) T) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, null) {
		return zero, nil
	}
	if trimmed[0] == '{' {
		v := new(T)
		if err := json.Unmarshal(trimmed, v); err != nil {
			return zero, err
		}
		return *v, nil
	}
	id, err := Int(trimmed)
	if err != nil {
		return zero, err
	}
	return withId(id), nil
}

// Int decodes an integer given as a number or a string, like 3 or "3".
//
// null or absent value is 0.
func Int(raw json.RawMessage) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, null) {
		return 0, nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", s)
		}
		return n, nil
	}
	var n int
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, err
	}
	return n, nil
}
