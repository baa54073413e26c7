package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opst/smsctl/pkg/api/types/analytics"
)

func (c *client) GetDashboard(ctx context.Context) (analytics.Dashboard, error) {
	return call[analytics.Dashboard](
		ctx, c, http.MethodGet, []string{"analytics", "dashboard"},
		MessageFor{Status5xx: "server error on fetching dashboard"},
	)
}

func (c *client) GetGradeDistribution(ctx context.Context, filter analytics.DistributionFilter) (analytics.Distribution, error) {
	q := newParams().
		num("course_id", filter.CourseId).
		str("semester", filter.Semester)

	return call[analytics.Distribution](
		ctx, c, http.MethodGet, []string{"analytics", "grades", "distribution"},
		MessageFor{
			Status4xx: "cannot get grade distribution",
			Status5xx: "server error on fetching grade distribution",
		},
		withQuery(q.values()),
	)
}

// ListCourseAnalytics returns statistics per course.
//
// Items without id are given their position as id.
func (c *client) ListCourseAnalytics(ctx context.Context) ([]analytics.CourseAnalytics, error) {
	items, err := call[[]analytics.CourseAnalytics](
		ctx, c, http.MethodGet, []string{"analytics", "courses"},
		MessageFor{Status5xx: "server error on fetching course analytics"},
	)
	if err != nil {
		return nil, err
	}
	numberUnidentified(items, func(i *analytics.CourseAnalytics) *int { return &i.Id })
	return items, nil
}

// ListStudentPerformances returns performance summaries of all students.
//
// Items without id are given their position as id.
func (c *client) ListStudentPerformances(ctx context.Context) ([]analytics.PerformanceSummary, error) {
	items, err := call[[]analytics.PerformanceSummary](
		ctx, c, http.MethodGet, []string{"analytics", "students", "performance"},
		MessageFor{Status5xx: "server error on fetching student performances"},
	)
	if err != nil {
		return nil, err
	}
	numberUnidentified(items, func(p *analytics.PerformanceSummary) *int { return &p.Id })
	return items, nil
}

func (c *client) GetStudentPerformance(ctx context.Context, studentId int) (analytics.PerformanceReport, error) {
	return call[analytics.PerformanceReport](
		ctx, c, http.MethodGet, []string{"analytics", "students", "performance"},
		MessageFor{
			Status4xx: fmt.Sprintf("cannot get performance of student (id = %d)", studentId),
			Status5xx: "server error on fetching student performance",
		},
		withQuery(newParams().num("student_id", studentId).values()),
	)
}

// numberUnidentified gives items without id their position counted from 1,
// shifted above the largest id of the others so that ids do not collide.
func numberUnidentified[T any](items []T, idOf func(*T) *int) {
	largest := 0
	for i := range items {
		if id := *idOf(&items[i]); largest < id {
			largest = id
		}
	}
	for i := range items {
		if id := idOf(&items[i]); *id == 0 {
			*id = largest + i + 1
		}
	}
}
