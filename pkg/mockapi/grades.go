package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
	"github.com/opst/smsctl/pkg/api/types/grades"
)

func GradeListHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := grades.Filter{
			Semester: c.QueryParam("semester"),
			Search:   c.QueryParam("search"),
		}
		var err error
		if filter.Student, err = queryInt(c, "student"); err != nil {
			return err
		}
		if filter.Course, err = queryInt(c, "course"); err != nil {
			return err
		}
		if t := c.QueryParam("grade_type"); t != "" {
			ty, err := grades.ParseType(t)
			if err != nil {
				return badRequest(apierr.ForFields(
					"grade_type", "Select a valid choice. "+t+" is not one of the available choices.",
				))
			}
			filter.GradeType = ty
		}

		page, err := paginate(c, st.ListGrades(filter))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page)
	}
}

func GradeGetHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		g, err := st.GetGrade(id)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, g)
	}
}

func GradeCreateHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec, err := bind[grades.Spec](c)
		if err != nil {
			return err
		}
		g, err := st.CreateGrade(spec)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusCreated, g)
	}
}

func GradeUpdateHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		change, err := bind[grades.Change](c)
		if err != nil {
			return err
		}
		g, err := st.UpdateGrade(id, change)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, g)
	}
}

func GradeDeleteHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		if err := st.DeleteGrade(id); err != nil {
			return storeError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func GradesByStudentHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := requiredInt(c, "student_id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, st.GradesByStudent(id))
	}
}

func GradesByCourseHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := requiredInt(c, "course_id")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, st.GradesByCourse(id))
	}
}

func GradeStatisticsHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := grades.StatisticsFilter{Semester: c.QueryParam("semester")}
		var err error
		if filter.Course, err = queryInt(c, "course_id"); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, grades.Statistics{Courses: st.GradeStatistics(filter)})
	}
}
