// Package table renders lists of API resources as rows of text cells.
//
// A table is configured with columns. Each cell shows the output of the
// column's Render function if it is given, otherwise the raw value of the
// field whose JSON name is the column's Key. Absent values are shown as "".
package table

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Item is a thing which can be a row.
//
// RowKey should be unique in a table.
type Item interface {
	RowKey() string
}

type Column[T any] struct {
	// JSON field name of the raw value. Dotted path (like "student.full_name")
	// selects a field of a nested object.
	Key string

	Header string

	// optional. When it is nil, the raw value at Key is shown.
	Render func(T) string
}

type Table[T Item] struct {
	Columns []Column[T]

	// optional. Called with the item which is clicked.
	OnRowClick func(T)

	// text for empty table. Default is "no data".
	Placeholder string
}

const DefaultPlaceholder = "no data"

type Row struct {
	Key   string
	Cells []string

	// true for the row shown instead of empty body.
	Placeholder bool
}

var ErrDuplicateRowKey = errors.New("duplicated row key")

// Headers returns header labels in column order.
func (t Table[T]) Headers() []string {
	h := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		h = append(h, c.Header)
	}
	return h
}

func (t Table[T]) placeholder() string {
	if t.Placeholder == "" {
		return DefaultPlaceholder
	}
	return t.Placeholder
}

// Rows returns one row per item, in the order of items.
//
// When items is empty, it returns exactly one placeholder row.
//
// # Returns
//
// - []Row
//
// - error: ErrDuplicateRowKey when two items have the same RowKey.
func (t Table[T]) Rows(items []T) ([]Row, error) {
	if len(items) == 0 {
		return []Row{{Cells: []string{t.placeholder()}, Placeholder: true}}, nil
	}

	seen := map[string]struct{}{}
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		key := item.RowKey()
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRowKey, key)
		}
		seen[key] = struct{}{}

		cells := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			cells = append(cells, t.cell(c, item))
		}
		rows = append(rows, Row{Key: key, Cells: cells})
	}
	return rows, nil
}

func (t Table[T]) cell(c Column[T], item T) string {
	if c.Render != nil {
		return c.Render(item)
	}
	v, ok := Lookup(item, c.Key)
	if !ok {
		return ""
	}
	return Format(v)
}

// Click fires OnRowClick with the item which has the key.
//
// It returns false when there are no such item or no handler.
func (t Table[T]) Click(items []T, key string) bool {
	if t.OnRowClick == nil {
		return false
	}
	for _, item := range items {
		if item.RowKey() == key {
			t.OnRowClick(item)
			return true
		}
	}
	return false
}

// Write prints the table as aligned text.
func (t Table[T]) Write(w io.Writer, items []T) error {
	rows, err := t.Rows(items)
	if err != nil {
		return err
	}

	headers := t.Headers()
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		if r.Placeholder {
			continue
		}
		for i, c := range r.Cells {
			if cw := runewidth.StringWidth(c); widths[i] < cw {
				widths[i] = cw
			}
		}
	}

	line := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, c := range cells {
			if i == len(cells)-1 {
				padded[i] = c
				continue
			}
			padded[i] = runewidth.FillRight(c, widths[i])
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ") + "\n"
	}

	if _, err := io.WriteString(w, line(headers)); err != nil {
		return err
	}
	for _, r := range rows {
		text := ""
		if r.Placeholder {
			text = r.Cells[0] + "\n"
		} else {
			text = line(r.Cells)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds a value of field by its JSON name.
//
// Fields of embedded structs are also looked up, and dotted path selects a field
// of nested object. Nil pointers are handled as absent.
func Lookup(item any, key string) (any, bool) {
	v := reflect.ValueOf(item)
	for _, k := range strings.Split(key, ".") {
		var ok bool
		if v, ok = field(v, k); !ok {
			return nil, false
		}
	}
	v, ok := deref(v)
	if !ok {
		return nil, false
	}
	return v.Interface(), true
}

func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

func field(v reflect.Value, name string) (reflect.Value, bool) {
	v, ok := deref(v)
	if !ok {
		return reflect.Value{}, false
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		return mv, mv.IsValid()
	case reflect.Struct:
	default:
		return reflect.Value{}, false
	}

	ty := v.Type()
	embedded := []int{}
	for i := 0; i < ty.NumField(); i++ {
		f := ty.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, hasTag := f.Tag.Lookup("json")
		jsonName, _, _ := strings.Cut(tag, ",")
		if jsonName == "-" {
			continue
		}
		if f.Anonymous && jsonName == "" {
			embedded = append(embedded, i)
			continue
		}
		if !hasTag || jsonName == "" {
			jsonName = f.Name
		}
		if jsonName == name {
			return v.Field(i), true
		}
	}

	for _, i := range embedded {
		if fv, ok := field(v.Field(i), name); ok {
			return fv, true
		}
	}
	return reflect.Value{}, false
}

// Format converts a raw value into cell text.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
