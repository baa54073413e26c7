package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/api/types/students"
)

func (c *client) ListStudents(ctx context.Context, filter students.Filter) (paginated.Page[students.Summary], error) {
	q := newParams().
		str("search", filter.Search).
		num("page", filter.Page)

	return call[paginated.Page[students.Summary]](
		ctx, c, http.MethodGet, []string{"students"},
		MessageFor{
			Status4xx: "cannot list students",
			Status5xx: "server error on listing students",
		},
		withQuery(q.values()),
	)
}

func (c *client) GetStudent(ctx context.Context, id int) (students.Detail, error) {
	return call[students.Detail](
		ctx, c, http.MethodGet, []string{"students", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("student (id = %d) is not found", id),
			Status5xx: "server error on fetching student",
		},
	)
}

func (c *client) CreateStudent(ctx context.Context, spec students.Spec) (students.Detail, error) {
	return call[students.Detail](
		ctx, c, http.MethodPost, []string{"students"},
		MessageFor{
			Status4xx: "cannot create the student",
			Status5xx: "server error on creating student",
		},
		withBody(spec),
	)
}

func (c *client) UpdateStudent(ctx context.Context, id int, change students.Change) (students.Detail, error) {
	return call[students.Detail](
		ctx, c, http.MethodPatch, []string{"students", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update student (id = %d)", id),
			Status5xx: "server error on updating student",
		},
		withBody(change),
	)
}

func (c *client) DeleteStudent(ctx context.Context, id int) error {
	return callDiscarding(
		ctx, c, http.MethodDelete, []string{"students", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot delete student (id = %d)", id),
			Status5xx: "server error on deleting student",
		},
	)
}
