package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/api/types/paginated"
)

func (c *client) ListGrades(ctx context.Context, filter grades.Filter) (paginated.Page[grades.Summary], error) {
	q := newParams().
		num("student", filter.Student).
		num("course", filter.Course).
		str("semester", filter.Semester).
		str("grade_type", string(filter.GradeType)).
		str("search", filter.Search).
		num("page", filter.Page)

	return call[paginated.Page[grades.Summary]](
		ctx, c, http.MethodGet, []string{"grades"},
		MessageFor{
			Status4xx: "cannot list grades",
			Status5xx: "server error on listing grades",
		},
		withQuery(q.values()),
	)
}

func (c *client) GetGrade(ctx context.Context, id int) (grades.Detail, error) {
	return call[grades.Detail](
		ctx, c, http.MethodGet, []string{"grades", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("grade (id = %d) is not found", id),
			Status5xx: "server error on fetching grade",
		},
	)
}

// CreateGrade records a grade.
//
// When the response does not carry the whole grade, the grade is looked up
// among grades of the student in the course of the same semester and type.
func (c *client) CreateGrade(ctx context.Context, spec grades.Spec) (grades.Detail, error) {
	g, err := call[grades.Detail](
		ctx, c, http.MethodPost, []string{"grades"},
		MessageFor{
			Status4xx: "cannot record the grade",
			Status5xx: "server error on creating grade",
		},
		withBody(spec),
		withoutSchemaCheck(),
	)
	if err != nil {
		return grades.Detail{}, err
	}
	return readBack(g, "POST grades", func() (grades.Detail, error) {
		id := g.Id
		if id == 0 {
			found, err := latest(
				func(page int) (paginated.Page[grades.Summary], error) {
					return c.ListGrades(ctx, grades.Filter{
						Student:   spec.Student,
						Course:    spec.Course,
						Semester:  spec.Semester,
						GradeType: spec.GradeType,
						Page:      page,
					})
				},
				func(s grades.Summary) bool {
					return s.Semester == spec.Semester && s.GradeType == spec.GradeType &&
						(spec.Score == nil || s.Score == *spec.Score)
				},
				func(s grades.Summary) int { return s.Id },
			)
			if err != nil {
				return grades.Detail{}, err
			}
			id = found.Id
		}
		return c.GetGrade(ctx, id)
	})
}

// UpdateGrade changes a grade partially.
//
// When the response does not carry the whole grade, it is fetched again.
func (c *client) UpdateGrade(ctx context.Context, id int, change grades.Change) (grades.Detail, error) {
	g, err := call[grades.Detail](
		ctx, c, http.MethodPatch, []string{"grades", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update grade (id = %d)", id),
			Status5xx: "server error on updating grade",
		},
		withBody(change),
		withoutSchemaCheck(),
	)
	if err != nil {
		return grades.Detail{}, err
	}
	return readBack(g, fmt.Sprintf("PATCH grades/%d", id), func() (grades.Detail, error) {
		return c.GetGrade(ctx, id)
	})
}

func (c *client) DeleteGrade(ctx context.Context, id int) error {
	return callDiscarding(
		ctx, c, http.MethodDelete, []string{"grades", itoa(id)},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot delete grade (id = %d)", id),
			Status5xx: "server error on deleting grade",
		},
	)
}

func (c *client) GetGradesByStudent(ctx context.Context, studentId int) ([]grades.Summary, error) {
	return call[[]grades.Summary](
		ctx, c, http.MethodGet, []string{"grades", "by_student"},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot list grades of student (id = %d)", studentId),
			Status5xx: "server error on listing grades",
		},
		withQuery(newParams().num("student_id", studentId).values()),
	)
}

func (c *client) GetGradesByCourse(ctx context.Context, courseId int) ([]grades.Summary, error) {
	return call[[]grades.Summary](
		ctx, c, http.MethodGet, []string{"grades", "by_course"},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot list grades of course (id = %d)", courseId),
			Status5xx: "server error on listing grades",
		},
		withQuery(newParams().num("course_id", courseId).values()),
	)
}

func (c *client) GetGradeStatistics(ctx context.Context, filter grades.StatisticsFilter) (grades.Statistics, error) {
	q := newParams().
		num("course_id", filter.Course).
		str("semester", filter.Semester)

	return call[grades.Statistics](
		ctx, c, http.MethodGet, []string{"grades", "statistics"},
		MessageFor{
			Status4xx: "cannot get grade statistics",
			Status5xx: "server error on calculating grade statistics",
		},
		withQuery(q.values()),
	)
}
