package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/api/types/paginated"
)

func (c *client) ListEnrollments(ctx context.Context, filter enrollments.Filter) (paginated.Page[enrollments.Detail], error) {
	q := newParams().
		num("student", filter.Student).
		num("course", filter.Course).
		str("status", string(filter.Status)).
		num("page", filter.Page)

	return call[paginated.Page[enrollments.Detail]](
		ctx, c, http.MethodGet, []string{"courses", "enrollments"},
		MessageFor{
			Status4xx: "cannot list enrollments",
			Status5xx: "server error on listing enrollments",
		},
		withQuery(q.values()),
	)
}

func (c *client) GetEnrollment(ctx context.Context, id int) (enrollments.Detail, error) {
	return call[enrollments.Detail](
		ctx, c, http.MethodGet, []string{"courses", "enrollments", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("enrollment (id = %d) is not found", id),
			Status5xx: "server error on fetching enrollment",
		},
	)
}

// CreateEnrollment enrolls a student.
//
// When the response does not carry the whole enrollment, the enrollment is
// looked up by the student and the course.
func (c *client) CreateEnrollment(ctx context.Context, spec enrollments.Spec) (enrollments.Detail, error) {
	e, err := call[enrollments.Detail](
		ctx, c, http.MethodPost, []string{"courses", "enrollments"},
		MessageFor{
			Status4xx: "cannot enroll the student",
			Status5xx: "server error on creating enrollment",
		},
		withBody(spec),
		withoutSchemaCheck(),
	)
	if err != nil {
		return enrollments.Detail{}, err
	}
	return readBack(e, "POST courses/enrollments", func() (enrollments.Detail, error) {
		if e.Id != 0 {
			return c.GetEnrollment(ctx, e.Id)
		}
		found, err := latest(
			func(page int) (paginated.Page[enrollments.Detail], error) {
				return c.ListEnrollments(ctx, enrollments.Filter{
					Student: spec.StudentId, Course: spec.CourseId, Page: page,
				})
			},
			func(d enrollments.Detail) bool {
				return d.Student.Id == spec.StudentId && d.Course.Id == spec.CourseId
			},
			func(d enrollments.Detail) int { return d.Id },
		)
		if err != nil {
			return enrollments.Detail{}, err
		}
		return found, nil
	})
}

// UpdateEnrollmentStatus changes the status of an enrollment.
//
// When the response does not carry the whole enrollment, it is fetched again.
func (c *client) UpdateEnrollmentStatus(ctx context.Context, id int, status enrollments.Status) (enrollments.Detail, error) {
	e, err := call[enrollments.Detail](
		ctx, c, http.MethodPatch, []string{"courses", "enrollments", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot change status of enrollment (id = %d)", id),
			Status5xx: "server error on updating enrollment",
		},
		withBody(enrollments.StatusChange{Status: status}),
		withoutSchemaCheck(),
	)
	if err != nil {
		return enrollments.Detail{}, err
	}
	return readBack(e, fmt.Sprintf("PATCH courses/enrollments/%d", id), func() (enrollments.Detail, error) {
		return c.GetEnrollment(ctx, id)
	})
}

func (c *client) DeleteEnrollment(ctx context.Context, id int) error {
	return callDiscarding(
		ctx, c, http.MethodDelete, []string{"courses", "enrollments", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot delete enrollment (id = %d)", id),
			Status5xx: "server error on deleting enrollment",
		},
	)
}
