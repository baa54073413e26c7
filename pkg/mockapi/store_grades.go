package mockapi

import (
	"math"
	"sort"

	"github.com/opst/smsctl/pkg/api/types/analytics"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
	"github.com/opst/smsctl/pkg/api/types/grades"
)

func newestGrade(a, b *grade) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.Id > b.Id
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *Store) gradeSummary(g *grade) grades.Summary {
	pct := g.percentage()
	sum := grades.Summary{
		Id:          g.Id,
		Score:       g.Score,
		MaxScore:    g.MaxScore,
		Percentage:  pct,
		LetterGrade: analytics.LetterOf(pct),
		GradeType:   g.GradeType,
		Semester:    g.Semester,
	}
	if st, ok := s.students[g.StudentId]; ok {
		sum.StudentName = st.FullName
	}
	if c, ok := s.courses[g.CourseId]; ok {
		sum.CourseName = c.Name
	}
	return sum
}

func (s *Store) gradeDetail(g *grade) grades.Detail {
	d := grades.Detail{
		Summary:   s.gradeSummary(g),
		Comments:  g.Comments,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if st, ok := s.students[g.StudentId]; ok {
		d.Student = st.Summary
	}
	if c, ok := s.courses[g.CourseId]; ok {
		d.Course = c.Summary
	}
	return d
}

func (s *Store) matchGrades(match func(*grade) bool) []*grade {
	ret := []*grade{}
	for _, g := range sorted(s.grades, newestGrade) {
		if match(g) {
			ret = append(ret, g)
		}
	}
	return ret
}

// ListGrades returns grades matching filter, newest first.
//
// Search is matched with names of student and course.
func (s *Store) ListGrades(filter grades.Filter) []grades.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := []grades.Summary{}
	for _, g := range s.matchGrades(func(g *grade) bool {
		switch {
		case filter.Student != 0 && g.StudentId != filter.Student:
			return false
		case filter.Course != 0 && g.CourseId != filter.Course:
			return false
		case filter.Semester != "" && g.Semester != filter.Semester:
			return false
		case filter.GradeType != "" && g.GradeType != filter.GradeType:
			return false
		}
		if filter.Search == "" {
			return true
		}
		names := []string{}
		if st, ok := s.students[g.StudentId]; ok {
			names = append(names, st.FirstName, st.LastName)
		}
		if c, ok := s.courses[g.CourseId]; ok {
			names = append(names, c.Name)
		}
		return contains(filter.Search, names...)
	}) {
		ret = append(ret, s.gradeSummary(g))
	}
	return ret
}

func (s *Store) GetGrade(id int) (grades.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.grades[id]
	if !ok {
		return grades.Detail{}, ErrMissing
	}
	return s.gradeDetail(g), nil
}

func (s *Store) checkGradeRefs(studentId, courseId int) apierr.Payload {
	p := apierr.Payload{}
	if _, ok := s.students[studentId]; !ok {
		p = p.With("student", doesNotExist(studentId))
	}
	if _, ok := s.courses[courseId]; !ok {
		p = p.With("course", doesNotExist(courseId))
	}
	return p
}

// CreateGrade records a grade. Missing max score is 100.
func (s *Store) CreateGrade(spec grades.Spec) (grades.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.checkGradeRefs(spec.Student, spec.Course); !p.IsEmpty() {
		return grades.Detail{}, invalid(p)
	}

	now := s.now()
	g := &grade{
		Id:        s.nextId("grades"),
		StudentId: spec.Student,
		CourseId:  spec.Course,
		MaxScore:  defaultMaxScore,
		GradeType: spec.GradeType,
		Semester:  spec.Semester,
		CreatedAt: now,
		UpdatedAt: now,
	}
	set(&g.Score, spec.Score)
	set(&g.MaxScore, spec.MaxScore)
	set(&g.Comments, spec.Comments)
	s.grades[g.Id] = g
	return s.gradeDetail(g), nil
}

func (s *Store) UpdateGrade(id int, change grades.Change) (grades.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.grades[id]
	if !ok {
		return grades.Detail{}, ErrMissing
	}
	g := *current
	set(&g.StudentId, change.Student)
	set(&g.CourseId, change.Course)
	set(&g.Score, change.Score)
	set(&g.MaxScore, change.MaxScore)
	set(&g.GradeType, change.GradeType)
	set(&g.Semester, change.Semester)
	set(&g.Comments, change.Comments)

	p := s.checkGradeRefs(g.StudentId, g.CourseId)
	if g.Semester == "" {
		p = p.With("semester", "This field may not be blank.")
	}
	if !p.IsEmpty() {
		return grades.Detail{}, invalid(p)
	}

	g.UpdatedAt = s.now()
	s.grades[id] = &g
	return s.gradeDetail(&g), nil
}

func (s *Store) DeleteGrade(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grades[id]; !ok {
		return ErrMissing
	}
	delete(s.grades, id)
	return nil
}

func (s *Store) GradesByStudent(studentId int) []grades.Summary {
	return s.ListGrades(grades.Filter{Student: studentId})
}

func (s *Store) GradesByCourse(courseId int) []grades.Summary {
	return s.ListGrades(grades.Filter{Course: courseId})
}

// GradeStatistics aggregates scores per course, ordered by course name.
//
// Courses without grades are not included.
func (s *Store) GradeStatistics(filter grades.StatisticsFilter) []grades.CourseStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	type acc struct {
		stat     grades.CourseStatistics
		sum      float64
		n        int
		students map[int]struct{}
	}
	perCourse := map[int]*acc{}
	for _, g := range s.matchGrades(func(g *grade) bool {
		if filter.Course != 0 && g.CourseId != filter.Course {
			return false
		}
		return filter.Semester == "" || g.Semester == filter.Semester
	}) {
		c, ok := s.courses[g.CourseId]
		if !ok {
			continue
		}
		a, ok := perCourse[c.Id]
		if !ok {
			a = &acc{
				stat: grades.CourseStatistics{
					CourseName:   c.Name,
					CourseCode:   c.CourseCode,
					HighestScore: g.Score,
					LowestScore:  g.Score,
				},
				students: map[int]struct{}{},
			}
			perCourse[c.Id] = a
		}
		a.sum += g.Score
		a.n += 1
		a.stat.HighestScore = math.Max(a.stat.HighestScore, g.Score)
		a.stat.LowestScore = math.Min(a.stat.LowestScore, g.Score)
		a.students[g.StudentId] = struct{}{}
	}

	ret := make([]grades.CourseStatistics, 0, len(perCourse))
	for _, a := range perCourse {
		a.stat.AverageScore = round2(a.sum / float64(a.n))
		a.stat.TotalStudents = len(a.students)
		ret = append(ret, a.stat)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].CourseName == ret[j].CourseName {
			return ret[i].CourseCode < ret[j].CourseCode
		}
		return ret[i].CourseName < ret[j].CourseName
	})
	return ret
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func distributionOf(gs []*grade) analytics.Distribution {
	d := analytics.Distribution{}
	for _, g := range gs {
		switch analytics.LetterOf(g.percentage()) {
		case "A":
			d.A += 1
		case "B":
			d.B += 1
		case "C":
			d.C += 1
		case "D":
			d.D += 1
		default:
			d.F += 1
		}
	}
	return d
}

func averagePercentage(gs []*grade) float64 {
	if len(gs) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range gs {
		sum += g.percentage()
	}
	return round2(sum / float64(len(gs)))
}

func (s *Store) Dashboard() analytics.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := analytics.Dashboard{
		TotalStudents: len(s.students),
		TotalCourses:  len(s.courses),
		TotalGrades:   len(s.grades),
	}
	for _, e := range s.enrollments {
		if e.Status == enrollments.Active {
			d.ActiveEnrollments += 1
		}
	}
	if len(s.grades) != 0 {
		sum := 0.0
		for _, g := range s.grades {
			sum += g.Score
		}
		d.AverageGrade = round2(sum / float64(len(s.grades)))
	}
	return d
}

func (s *Store) GradeDistribution(filter analytics.DistributionFilter) analytics.Distribution {
	s.mu.Lock()
	defer s.mu.Unlock()

	return distributionOf(s.matchGrades(func(g *grade) bool {
		if filter.CourseId != 0 && g.CourseId != filter.CourseId {
			return false
		}
		return filter.Semester == "" || g.Semester == filter.Semester
	}))
}

// CourseAnalytics returns statistics of every course, ordered by name.
func (s *Store) CourseAnalytics() []analytics.CourseAnalytics {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := []analytics.CourseAnalytics{}
	for _, c := range sorted(s.courses, byCourseName) {
		gs := s.matchGrades(func(g *grade) bool { return g.CourseId == c.Id })
		ret = append(ret, analytics.CourseAnalytics{
			Id:                c.Id,
			CourseCode:        c.CourseCode,
			CourseName:        c.Name,
			TotalStudents:     s.activeCount(c.Id),
			AverageGrade:      averagePercentage(gs),
			GradeDistribution: distributionOf(gs),
		})
	}
	return ret
}

// StudentPerformances returns a summary of every student, newest first.
func (s *Store) StudentPerformances() []analytics.PerformanceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := []analytics.PerformanceSummary{}
	for _, st := range sorted(s.students, newestStudent) {
		gs := s.matchGrades(func(g *grade) bool { return g.StudentId == st.Id })
		taken := map[int]struct{}{}
		for _, g := range gs {
			taken[g.CourseId] = struct{}{}
		}
		ret = append(ret, analytics.PerformanceSummary{
			Id:                st.Id,
			StudentId:         st.StudentId,
			StudentName:       st.FullName,
			AverageGrade:      averagePercentage(gs),
			TotalCourses:      len(taken),
			GradeDistribution: distributionOf(gs),
		})
	}
	return ret
}

// StudentPerformance reports every grade of the student.
func (s *Store) StudentPerformance(studentId int) analytics.PerformanceReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs := s.matchGrades(func(g *grade) bool { return g.StudentId == studentId })
	report := analytics.PerformanceReport{
		StudentId:         studentId,
		Grades:            []analytics.PerformanceGrade{},
		AveragePercentage: averagePercentage(gs),
	}
	for _, g := range gs {
		pg := analytics.PerformanceGrade{
			Score:       g.Score,
			MaxScore:    g.MaxScore,
			Percentage:  g.percentage(),
			LetterGrade: analytics.LetterOf(g.percentage()),
			Semester:    g.Semester,
		}
		if c, ok := s.courses[g.CourseId]; ok {
			pg.Course = c.Name
		}
		report.Grades = append(report.Grades, pg)
	}
	return report
}
