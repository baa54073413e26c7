package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/smsctl/pkg/api/types/students"
)

func StudentListHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := paginate(c, st.ListStudents(c.QueryParam("search")))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page)
	}
}

func StudentGetHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		s, err := st.GetStudent(id)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, s)
	}
}

func StudentCreateHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec, err := bind[students.Spec](c)
		if err != nil {
			return err
		}
		s, err := st.CreateStudent(spec)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusCreated, s)
	}
}

func StudentUpdateHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		change, err := bind[students.Change](c)
		if err != nil {
			return err
		}
		s, err := st.UpdateStudent(id, change)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, s)
	}
}

func StudentDeleteHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathId(c)
		if err != nil {
			return err
		}
		if err := st.DeleteStudent(id); err != nil {
			return storeError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
