package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Field is messages for a field of a validation error.
type Field struct {
	Name     string
	Messages []string
}

// Payload is a body of an error response.
//
// The API responds either {"detail": "..."} or a map of field names to
// messages like {"student_id": ["already exists"]}.
// Fields are kept in the order the server has responded.
type Payload struct {
	Detail string
	Fields []Field
}

const keyDetail = "detail"

// ForDetail build a Payload only with detail message.
func ForDetail(detail string) Payload {
	return Payload{Detail: detail}
}

// ForFields build a Payload from pairs of field name and message.
//
// Messages for the same field are grouped in order of appearance.
func ForFields(nameMessage ...string) Payload {
	p := Payload{}
	for i := 0; i+1 < len(nameMessage); i += 2 {
		p = p.With(nameMessage[i], nameMessage[i+1])
	}
	return p
}

// With returns a new Payload which has an additional message for the field.
func (p Payload) With(field string, message string) Payload {
	fields := make([]Field, 0, len(p.Fields)+1)
	found := false
	for _, f := range p.Fields {
		if f.Name == field {
			f.Messages = append(append([]string{}, f.Messages...), message)
			found = true
		}
		fields = append(fields, f)
	}
	if !found {
		fields = append(fields, Field{Name: field, Messages: []string{message}})
	}
	return Payload{Detail: p.Detail, Fields: fields}
}

func (p Payload) IsEmpty() bool {
	return p.Detail == "" && len(p.Fields) == 0
}

// Messages returns messages for the field. If there are no such field, it returns nil.
func (p Payload) Messages(field string) []string {
	for _, f := range p.Fields {
		if f.Name == field {
			return f.Messages
		}
	}
	return nil
}

// First returns the first message of the first field which have messages.
func (p Payload) First() (Field, string, bool) {
	for _, f := range p.Fields {
		if len(f.Messages) != 0 {
			return f, f.Messages[0], true
		}
	}
	return Field{}, "", false
}

func (p Payload) String() string {
	lines := []string{}
	if p.Detail != "" {
		lines = append(lines, p.Detail)
	}
	for _, f := range p.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Name, strings.Join(f.Messages, " ")))
	}
	return strings.Join(lines, "\n")
}

func (p Payload) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	first := true
	write := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	if p.Detail != "" {
		if err := write(keyDetail, p.Detail); err != nil {
			return nil, err
		}
	}
	for _, f := range p.Fields {
		if err := write(f.Name, f.Messages); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var ErrNotAnObject = errors.New("error payload is not a JSON object")

func (p *Payload) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotAnObject
	}

	parsed := Payload{}
	for dec.More() {
		ktok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := ktok.(string)
		if !ok {
			return ErrNotAnObject
		}

		raw := json.RawMessage{}
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		msgs := messagesOf(raw)

		if key == keyDetail && len(msgs) == 1 && parsed.Detail == "" {
			parsed.Detail = msgs[0]
			continue
		}
		parsed.Fields = append(parsed.Fields, Field{Name: key, Messages: msgs})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = parsed
	return nil
}

// messagesOf accepts a string, a list of strings or other values.
// Values other than strings are kept as their JSON text.
func messagesOf(raw json.RawMessage) []string {
	s := ""
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}

	list := []json.RawMessage{}
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			msgs = append(msgs, messagesOf(item)...)
		}
		return msgs
	}

	return []string{strings.TrimSpace(string(raw))}
}

// Parse reads a body of error response.
//
// When the body is not a JSON object, whole text is handled as detail.
func Parse(r io.Reader) Payload {
	b, err := io.ReadAll(r)
	if err != nil {
		return Payload{}
	}
	p := Payload{}
	if err := json.Unmarshal(b, &p); err != nil {
		return ForDetail(strings.TrimSpace(string(b)))
	}
	return p
}
