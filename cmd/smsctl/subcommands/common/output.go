package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/table"
	"github.com/youta-t/flarc"
)

// WriteJSON dumps v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// ShowPage loads a page by fetch through a list screen, then prints it with WritePage.
func ShowPage[Q any, T table.Item](
	ctx context.Context,
	w io.Writer,
	tbl table.Table[T],
	q Q,
	fetch func(context.Context, Q) (paginated.Page[T], error),
) error {
	var page paginated.Page[T]
	list := screen.NewList(func(ctx context.Context, q Q) ([]T, error) {
		p, err := fetch(ctx, q)
		if err != nil {
			return nil, err
		}
		page = p
		return p.Results, nil
	}, nil)

	v, err := list.Load(ctx, q)
	if err != nil {
		return err
	}
	page.Results = v.Items
	return WritePage(w, tbl, page)
}

// WritePage prints results of the page as a table, and a footer telling how to move pages.
func WritePage[T table.Item](w io.Writer, tbl table.Table[T], page paginated.Page[T]) error {
	if err := tbl.Write(w, page.Results); err != nil {
		return err
	}
	if page.Count == 0 {
		return nil
	}
	footer := fmt.Sprintf("(%d of %d", len(page.Results), page.Count)
	if n, ok := page.PreviousPage(); ok {
		footer += ", previous: --page " + strconv.Itoa(n)
	}
	if n, ok := page.NextPage(); ok {
		footer += ", next: --page " + strconv.Itoa(n)
	}
	footer += ")\n"
	_, err := io.WriteString(w, footer)
	return err
}

// ParseId reads a positive id from an argument.
func ParseId(name string, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s should be a positive integer: %q", flarc.ErrUsage, name, value)
	}
	return n, nil
}

// NonFieldErrors is the key of messages for the whole input.
const NonFieldErrors = "non_field_errors"

// Submitted describes a failure of screen.Form in a line, like "email: already exists".
// Messages not for a specific field (including "non_field_errors") have no prefix.
//
// Other errors are returned as they are.
func Submitted(err error) error {
	var serr *screen.SubmitError
	if !errors.As(err, &serr) {
		return err
	}
	if serr.Field == "" || serr.Field == NonFieldErrors {
		return serr
	}
	return fmt.Errorf("%s: %w", serr.Field, serr)
}
