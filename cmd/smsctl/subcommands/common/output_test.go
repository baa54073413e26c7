package common_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/table"
	"github.com/opst/smsctl/pkg/utils/pointer"
)

var studentTable = table.Table[students.Summary]{
	Columns: []table.Column[students.Summary]{
		{Key: "student_id", Header: "STUDENT ID"},
		{Key: "full_name", Header: "NAME"},
	},
}

func TestShowPage(t *testing.T) {
	ctx := context.Background()

	t.Run("fetched page is printed with its footer", func(t *testing.T) {
		var asked []students.Filter
		fetch := func(_ context.Context, f students.Filter) (paginated.Page[students.Summary], error) {
			asked = append(asked, f)
			return paginated.Page[students.Summary]{
				Count:   21,
				Next:    pointer.Ref("http://example.com/api/v1/students/?page=2&search=kim"),
				Results: []students.Summary{{Id: 1, StudentId: "S001", FullName: "Minji Kim"}},
			}, nil
		}

		out := new(strings.Builder)
		if err := common.ShowPage(ctx, out, studentTable, students.Filter{Search: "kim"}, fetch); err != nil {
			t.Fatal(err)
		}
		if len(asked) != 1 || asked[0] != (students.Filter{Search: "kim"}) {
			t.Errorf("filters: %+v", asked)
		}
		got := out.String()
		if !strings.Contains(got, "Minji Kim") {
			t.Errorf("row is not printed:\n%s", got)
		}
		if !strings.Contains(got, "(1 of 21, next: --page 2)") {
			t.Errorf("footer is not printed:\n%s", got)
		}
	})

	t.Run("failure is returned, and nothing is printed", func(t *testing.T) {
		expected := errors.New("fake error")
		fetch := func(context.Context, students.Filter) (paginated.Page[students.Summary], error) {
			return paginated.Page[students.Summary]{}, expected
		}

		out := new(strings.Builder)
		if err := common.ShowPage(ctx, out, studentTable, students.Filter{}, fetch); !errors.Is(err, expected) {
			t.Errorf("unexpected error: %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("printed:\n%s", out.String())
		}
	})
}
