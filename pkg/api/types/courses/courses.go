package courses

import (
	"strconv"
	"time"
)

// Summary is the list projection of a course.
type Summary struct {
	Id         int     `json:"id" validate:"required"`
	CourseCode string  `json:"course_code" validate:"required"`
	Name       string  `json:"name"`
	Credits    int     `json:"credits"`
	Instructor *string `json:"instructor,omitempty"`
}

func (s Summary) RowKey() string {
	return strconv.Itoa(s.Id)
}

type Detail struct {
	Summary
	Description  *string   `json:"description,omitempty"`
	StudentCount *int      `json:"student_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Spec struct {
	CourseCode  string  `json:"course_code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Credits     int     `json:"credits" validate:"required"`
	Instructor  *string `json:"instructor,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Change struct {
	CourseCode  *string `json:"course_code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Credits     *int    `json:"credits,omitempty"`
	Instructor  *string `json:"instructor,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c Change) IsEmpty() bool {
	return c == Change{}
}

type Filter struct {
	Search string
	Page   int
}
