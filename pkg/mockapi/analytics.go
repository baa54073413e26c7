package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/smsctl/pkg/api/types/analytics"
)

func DashboardHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, st.Dashboard())
	}
}

func GradeDistributionHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := analytics.DistributionFilter{Semester: c.QueryParam("semester")}
		var err error
		if filter.CourseId, err = queryInt(c, "course_id"); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, st.GradeDistribution(filter))
	}
}

func CourseAnalyticsHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, st.CourseAnalytics())
	}
}

// StudentPerformanceHandler responds a report of a student when "student_id" is given,
// otherwise summaries of all students.
func StudentPerformanceHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.QueryParam("student_id") == "" {
			return c.JSON(http.StatusOK, st.StudentPerformances())
		}
		id, err := queryInt(c, "student_id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, st.StudentPerformance(id))
	}
}
