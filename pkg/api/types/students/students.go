package students

import (
	"strconv"
	"time"
)

// Summary is the list projection of a student.
type Summary struct {
	Id        int    `json:"id" validate:"required"`
	StudentId string `json:"student_id" validate:"required"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

func (s Summary) RowKey() string {
	return strconv.Itoa(s.Id)
}

type Detail struct {
	Summary
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Spec is a payload to create a student.
type Spec struct {
	StudentId   string  `json:"student_id" validate:"required"`
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// Change is a payload of partial update. Nil fields are not sent.
type Change struct {
	StudentId   *string `json:"student_id,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (c Change) IsEmpty() bool {
	return c == Change{}
}

type Filter struct {
	Search string
	Page   int
}
