package grades

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/internal/lenient"
	"github.com/opst/smsctl/pkg/api/types/students"
)

type Type string

const (
	Exam       Type = "exam"
	Quiz       Type = "quiz"
	Assignment Type = "assignment"
	Project    Type = "project"
	Midterm    Type = "midterm"
	Final      Type = "final"
)

func Types() []Type {
	return []Type{Exam, Quiz, Assignment, Project, Midterm, Final}
}

func (t Type) String() string {
	return string(t)
}

func ParseType(s string) (Type, error) {
	for _, ty := range Types() {
		if string(ty) == s {
			return ty, nil
		}
	}
	return "", fmt.Errorf("unknown grade type: %q (choose from exam, quiz, assignment, project, midterm, final)", s)
}

// Summary is the list projection of a grade.
//
// Percentage and LetterGrade are computed by the server.
type Summary struct {
	Id          int     `json:"id" validate:"required"`
	StudentName string  `json:"student_name"`
	CourseName  string  `json:"course_name"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	Percentage  float64 `json:"percentage"`
	LetterGrade string  `json:"letter_grade" validate:"omitempty,oneof=A B C D F"`
	GradeType   Type    `json:"grade_type" validate:"oneof=exam quiz assignment project midterm final"`
	Semester    string  `json:"semester"`
}

func (s Summary) RowKey() string {
	return strconv.Itoa(s.Id)
}

// ScoreText formats a score as "85/100".
func (s Summary) ScoreText() string {
	return fmt.Sprintf("%s/%s", number(s.Score), number(s.MaxScore))
}

// PercentageText formats the percentage with one decimal, like "85.0%".
func (s Summary) PercentageText() string {
	return fmt.Sprintf("%.1f%%", s.Percentage)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type Detail struct {
	Summary
	Student   students.Summary `json:"student"`
	Course    courses.Summary  `json:"course"`
	Comments  string           `json:"comments"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// UnmarshalJSON fills names of the list projection from embedded projections
// when the payload does not carry them.
//
// Ids in place of the student and the course are accepted, as responses for
// create/update do.
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
	if d.StudentName == "" {
		d.StudentName = d.Student.FullName
	}
	if d.CourseName == "" {
		d.CourseName = d.Course.Name
	}
	return nil
}

// Partial reports d lacks its id or projections of the student and the course.
func (d Detail) Partial() bool {
	return d.Id == 0 || d.Student.StudentId == "" || d.Course.CourseCode == ""
}

// Spec is a payload to create a grade.
//
// The API takes ids of student and course in "student" and "course".
type Spec struct {
	Student   int      `json:"student" validate:"required"`
	Course    int      `json:"course" validate:"required"`
	Score     *float64 `json:"score" validate:"required"`
	MaxScore  *float64 `json:"max_score,omitempty"`
	GradeType Type     `json:"grade_type" validate:"required,oneof=exam quiz assignment project midterm final"`
	Semester  string   `json:"semester" validate:"required"`
	Comments  *string  `json:"comments,omitempty"`
}

type Change struct {
	Student   *int     `json:"student,omitempty"`
	Course    *int     `json:"course,omitempty"`
	Score     *float64 `json:"score,omitempty"`
	MaxScore  *float64 `json:"max_score,omitempty"`
	GradeType *Type    `json:"grade_type,omitempty" validate:"omitempty,oneof=exam quiz assignment project midterm final"`
	Semester  *string  `json:"semester,omitempty"`
	Comments  *string  `json:"comments,omitempty"`
}

func (c Change) IsEmpty() bool {
	return c == Change{}
}

type Filter struct {
	Student   int
	Course    int
	Semester  string
	GradeType Type
	Search    string
	Page      int
}

// CourseStatistics is a row of grade statistics per course.
type CourseStatistics struct {
	CourseName    string  `json:"course_name"`
	CourseCode    string  `json:"course_code" validate:"required"`
	AverageScore  float64 `json:"average_score"`
	HighestScore  float64 `json:"highest_score"`
	LowestScore   float64 `json:"lowest_score"`
	TotalStudents int     `json:"total_students"`
}

func (c CourseStatistics) RowKey() string {
	return c.CourseCode
}

type StatisticsFilter struct {
	Course   int
	Semester string
}

// Statistics is per-course grade statistics.
//
// Some servers respond an aggregate over all grades instead of per-course rows.
// Then Courses is empty and TotalGrades and AverageScore are set.
type Statistics struct {
	Courses      []CourseStatistics `validate:"dive"`
	TotalGrades  *int
	AverageScore *float64
}

func (s Statistics) MarshalJSON() ([]byte, error) {
	if s.TotalGrades == nil {
		if s.Courses == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.Courses)
	}
	return json.Marshal(struct {
		TotalGrades  *int     `json:"total_grades"`
		AverageScore *float64 `json:"average_score"`
	}{TotalGrades: s.TotalGrades, AverageScore: s.AverageScore})
}

func (s *Statistics) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) != 0 && trimmed[0] == '[' {
		courses := []CourseStatistics{}
		if err := json.Unmarshal(trimmed, &courses); err != nil {
			return err
		}
		*s = Statistics{Courses: courses}
		return nil
	}

	agg := struct {
		TotalGrades  *int     `json:"total_grades"`
		AverageScore *float64 `json:"average_score"`
	}{}
	if err := json.Unmarshal(trimmed, &agg); err != nil {
		return err
	}
	if agg.TotalGrades == nil {
		return errors.New(`grade statistics: neither a list nor has "total_grades"`)
	}
	*s = Statistics{TotalGrades: agg.TotalGrades, AverageScore: agg.AverageScore}
	return nil
}
