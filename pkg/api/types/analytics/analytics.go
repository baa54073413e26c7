package analytics

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/opst/smsctl/pkg/api/types/internal/lenient"
)

type Dashboard struct {
	TotalStudents     int     `json:"total_students"`
	TotalCourses      int     `json:"total_courses"`
	ActiveEnrollments int     `json:"active_enrollments"`
	TotalGrades       int     `json:"total_grades"`
	AverageGrade      float64 `json:"average_grade"`
}

// Distribution is count of grades per letter.
type Distribution struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
	F int `json:"F"`
}

func (d Distribution) Total() int {
	return d.A + d.B + d.C + d.D + d.F
}

// Letters returns pairs of letter and count, ordered from A to F.
func (d Distribution) Letters() []LetterCount {
	return []LetterCount{
		{Letter: "A", Count: d.A},
		{Letter: "B", Count: d.B},
		{Letter: "C", Count: d.C},
		{Letter: "D", Count: d.D},
		{Letter: "F", Count: d.F},
	}
}

type LetterCount struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

func (l LetterCount) RowKey() string {
	return l.Letter
}

// Share returns the ratio of count to total in percent.
func (l LetterCount) Share(total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(l.Count)*100/float64(total))
}

type DistributionFilter struct {
	CourseId int
	Semester string
}

type CourseAnalytics struct {
	Id                int          `json:"id"`
	CourseCode        string       `json:"course_code"`
	CourseName        string       `json:"course_name"`
	TotalStudents     int          `json:"total_students"`
	AverageGrade      float64      `json:"average_grade"`
	GradeDistribution Distribution `json:"grade_distribution"`
}

func (c CourseAnalytics) RowKey() string {
	return strconv.Itoa(c.Id)
}

type PerformanceSummary struct {
	Id                int          `json:"id"`
	StudentId         string       `json:"student_id"`
	StudentName       string       `json:"student_name"`
	AverageGrade      float64      `json:"average_grade"`
	TotalCourses      int          `json:"total_courses"`
	GradeDistribution Distribution `json:"grade_distribution"`
}

func (p PerformanceSummary) RowKey() string {
	return strconv.Itoa(p.Id)
}

type PerformanceGrade struct {
	Course      string  `json:"course"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	Percentage  float64 `json:"percentage"`
	LetterGrade string  `json:"letter_grade"`
	Semester    string  `json:"semester"`
}

// PerformanceReport is a performance of a student.
type PerformanceReport struct {
	StudentId         int                `json:"student_id" validate:"required"`
	Grades            []PerformanceGrade `json:"grades"`
	AveragePercentage float64            `json:"average_percentage"`
}

// UnmarshalJSON accepts student_id both as a number and as a string,
// since servers echo back the query parameter.
func (r *PerformanceReport) UnmarshalJSON(b []byte) error {
	type plain PerformanceReport
	p := struct {
		*plain
		StudentId json.RawMessage `json:"student_id"`
	}{plain: &plain{}}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	id, err := lenient.Int(p.StudentId)
	if err != nil {
		return fmt.Errorf("student_id: %w", err)
	}
	*r = PerformanceReport(*p.plain)
	r.StudentId = id
	return nil
}

// LetterOf maps a percentage to a letter grade with the same bands as the server.
func LetterOf(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}
