package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
)

func CourseListHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := paginate(c, st.ListCourses(c.QueryParam("search")))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page)
	}
}

func CourseGetHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		co, err := st.GetCourse(id)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, co)
	}
}

func CourseCreateHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec, err := bind[courses.Spec](c)
		if err != nil {
			return err
		}
		co, err := st.CreateCourse(spec)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusCreated, co)
	}
}

func CourseUpdateHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		change, err := bind[courses.Change](c)
		if err != nil {
			return err
		}
		co, err := st.UpdateCourse(id, change)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, co)
	}
}

func CourseDeleteHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		if err := st.DeleteCourse(id); err != nil {
			return storeError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func CourseStudentsHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		es, err := st.CourseStudents(id)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, es)
	}
}

func EnrollmentListHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := enrollments.Filter{}
		var err error
		if filter.Student, err = queryInt(c, "student"); err != nil {
			return err
		}
		if filter.Course, err = queryInt(c, "course"); err != nil {
			return err
		}
		if s := c.QueryParam("status"); s != "" {
			status, err := enrollments.ParseStatus(s)
			if err != nil {
				return badRequest(apierr.ForFields(
					"status", "Select a valid choice. "+s+" is not one of the available choices.",
				))
			}
			filter.Status = status
		}

		page, err := paginate(c, st.ListEnrollments(filter))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page)
	}
}

func EnrollmentGetHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		e, err := st.GetEnrollment(id)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, e)
	}
}

func EnrollmentCreateHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec, err := bind[enrollments.Spec](c)
		if err != nil {
			return err
		}
		e, err := st.CreateEnrollment(spec)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusCreated, e)
	}
}

func EnrollmentUpdateHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		change, err := bind[enrollments.StatusChange](c)
		if err != nil {
			return err
		}
		e, err := st.UpdateEnrollmentStatus(id, change.Status)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, e)
	}
}

func EnrollmentDeleteHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		if err := st.DeleteEnrollment(id); err != nil {
			return storeError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
