package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/api/types/paginated"
)

func (c *client) ListCourses(ctx context.Context, filter courses.Filter) (paginated.Page[courses.Summary], error) {
	q := newParams().
		str("search", filter.Search).
		num("page", filter.Page)

	return call[paginated.Page[courses.Summary]](
		ctx, c, http.MethodGet, []string{"courses"},
		MessageFor{
			Status4xx: "cannot list courses",
			Status5xx: "server error on listing courses",
		},
		withQuery(q.values()),
	)
}

func (c *client) GetCourse(ctx context.Context, id int) (courses.Detail, error) {
	return call[courses.Detail](
		ctx, c, http.MethodGet, []string{"courses", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("course (id = %d) is not found", id),
			Status5xx: "server error on fetching course",
		},
	)
}

func (c *client) CreateCourse(ctx context.Context, spec courses.Spec) (courses.Detail, error) {
	return call[courses.Detail](
		ctx, c, http.MethodPost, []string{"courses"},
		MessageFor{
			Status4xx: "cannot create the course",
			Status5xx: "server error on creating course",
		},
		withBody(spec),
	)
}

func (c *client) UpdateCourse(ctx context.Context, id int, change courses.Change) (courses.Detail, error) {
	return call[courses.Detail](
		ctx, c, http.MethodPatch, []string{"courses", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update course (id = %d)", id),
			Status5xx: "server error on updating course",
		},
		withBody(change),
	)
}

func (c *client) DeleteCourse(ctx context.Context, id int) error {
	return callDiscarding(
		ctx, c, http.MethodDelete, []string{"courses", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot delete course (id = %d)", id),
			Status5xx: "server error on deleting course",
		},
	)
}

func (c *client) GetCourseStudents(ctx context.Context, id int) ([]enrollments.Detail, error) {
	return call[[]enrollments.Detail](
		ctx, c, http.MethodGet, []string{"courses", itoa(id), "students"},
		MessageFor{
			Status4xx: fmt.Sprintf("course (id = %d) is not found", id),
			Status5xx: "server error on listing students of course",
		},
	)
}
