package enrollments

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/internal/lenient"
	"github.com/opst/smsctl/pkg/api/types/students"
)

type Status string

const (
	Active    Status = "active"
	Completed Status = "completed"
	Dropped   Status = "dropped"
)

func Statuses() []Status {
	return []Status{Active, Completed, Dropped}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts only known statuses.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown enrollment status: %q (choose from active, completed, dropped)", s)
}

type Detail struct {
	Id         int              `json:"id" validate:"required"`
	Student    students.Summary `json:"student"`
	Course     courses.Summary  `json:"course"`
	EnrolledAt time.Time        `json:"enrolled_at"`
	Status     Status           `json:"status" validate:"oneof=active completed dropped"`
}

func (d Detail) RowKey() string {
	return strconv.Itoa(d.Id)
}

// UnmarshalJSON accepts ids in place of the student and the course,
// as responses for create/update do.
func (d *Detail) UnmarshalJSON(b []byte) error {
	type plain Detail
	p := struct {
		*plain
		Student json.RawMessage `json:"student"`
		Course  json.RawMessage `json:"course"`
	}{plain: &plain{}}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	student, err := lenient.Ref(p.Student, func(id int) students.Summary {
		return students.Summary{Id: id}
	})
	if err != nil {
		return fmt.Errorf("student: %w", err)
	}
	course, err := lenient.Ref(p.Course, func(id int) courses.Summary {
		return courses.Summary{Id: id}
	})
	if err != nil {
		return fmt.Errorf("course: %w", err)
	}

	*d = Detail(*p.plain)
	d.Student = student
	d.Course = course
	return nil
}

// Partial reports d lacks its id or projections of the student and the course.
func (d Detail) Partial() bool {
	return d.Id == 0 || d.Student.StudentId == "" || d.Course.CourseCode == ""
}

type Spec struct {
	StudentId int `json:"student_id" validate:"required"`
	CourseId  int `json:"course_id" validate:"required"`
}

// StatusChange is the only updatable part of an enrollment.
type StatusChange struct {
	Status Status `json:"status" validate:"oneof=active completed dropped"`
}

type Filter struct {
	Student int
	Course  int
	Status  Status
	Page    int
}
