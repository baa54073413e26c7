package mock

import (
	"context"
	"testing"

	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	"github.com/opst/smsctl/pkg/api/types/analytics"
	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/api/types/students"
)

type UpdateStudentArgs struct {
	Id     int
	Change students.Change
}

type UpdateCourseArgs struct {
	Id     int
	Change courses.Change
}

type UpdateEnrollmentStatusArgs struct {
	Id     int
	Status enrollments.Status
}

type UpdateGradeArgs struct {
	Id     int
	Change grades.Change
}

// New returns a mock of rest.SmsClient.
//
// Set functions to Impl for methods to be called. Calling a method without Impl fails the test.
// Arguments of each call are recorded in Calls.
func New(t *testing.T) *MockClient {
	return &MockClient{t: t}
}

var _ rest.SmsClient = &MockClient{}

type MockClient struct {
	t    *testing.T
	Impl struct {
		ObtainToken             func(ctx context.Context, cred accounts.Credentials) (accounts.TokenPair, error)
		GetCurrentUser          func(ctx context.Context) (accounts.User, error)
		Register                func(ctx context.Context, reg accounts.Registration) (accounts.User, error)
		ListStudents            func(ctx context.Context, filter students.Filter) (paginated.Page[students.Summary], error)
		GetStudent              func(ctx context.Context, id int) (students.Detail, error)
		CreateStudent           func(ctx context.Context, spec students.Spec) (students.Detail, error)
		UpdateStudent           func(ctx context.Context, id int, change students.Change) (students.Detail, error)
		DeleteStudent           func(ctx context.Context, id int) error
		ListCourses             func(ctx context.Context, filter courses.Filter) (paginated.Page[courses.Summary], error)
		GetCourse               func(ctx context.Context, id int) (courses.Detail, error)
		CreateCourse            func(ctx context.Context, spec courses.Spec) (courses.Detail, error)
		UpdateCourse            func(ctx context.Context, id int, change courses.Change) (courses.Detail, error)
		DeleteCourse            func(ctx context.Context, id int) error
		GetCourseStudents       func(ctx context.Context, id int) ([]enrollments.Detail, error)
		ListEnrollments         func(ctx context.Context, filter enrollments.Filter) (paginated.Page[enrollments.Detail], error)
		GetEnrollment           func(ctx context.Context, id int) (enrollments.Detail, error)
		CreateEnrollment        func(ctx context.Context, spec enrollments.Spec) (enrollments.Detail, error)
		UpdateEnrollmentStatus  func(ctx context.Context, id int, status enrollments.Status) (enrollments.Detail, error)
		DeleteEnrollment        func(ctx context.Context, id int) error
		ListGrades              func(ctx context.Context, filter grades.Filter) (paginated.Page[grades.Summary], error)
		GetGrade                func(ctx context.Context, id int) (grades.Detail, error)
		CreateGrade             func(ctx context.Context, spec grades.Spec) (grades.Detail, error)
		UpdateGrade             func(ctx context.Context, id int, change grades.Change) (grades.Detail, error)
		DeleteGrade             func(ctx context.Context, id int) error
		GetGradesByStudent      func(ctx context.Context, studentId int) ([]grades.Summary, error)
		GetGradesByCourse       func(ctx context.Context, courseId int) ([]grades.Summary, error)
		GetGradeStatistics      func(ctx context.Context, filter grades.StatisticsFilter) (grades.Statistics, error)
		GetDashboard            func(ctx context.Context) (analytics.Dashboard, error)
		GetGradeDistribution    func(ctx context.Context, filter analytics.DistributionFilter) (analytics.Distribution, error)
		ListCourseAnalytics     func(ctx context.Context) ([]analytics.CourseAnalytics, error)
		ListStudentPerformances func(ctx context.Context) ([]analytics.PerformanceSummary, error)
		GetStudentPerformance   func(ctx context.Context, studentId int) (analytics.PerformanceReport, error)
	}
	Calls struct {
		ObtainToken             []accounts.Credentials
		GetCurrentUser          int
		Register                []accounts.Registration
		ListStudents            []students.Filter
		GetStudent              []int
		CreateStudent           []students.Spec
		UpdateStudent           []UpdateStudentArgs
		DeleteStudent           []int
		ListCourses             []courses.Filter
		GetCourse               []int
		CreateCourse            []courses.Spec
		UpdateCourse            []UpdateCourseArgs
		DeleteCourse            []int
		GetCourseStudents       []int
		ListEnrollments         []enrollments.Filter
		GetEnrollment           []int
		CreateEnrollment        []enrollments.Spec
		UpdateEnrollmentStatus  []UpdateEnrollmentStatusArgs
		DeleteEnrollment        []int
		ListGrades              []grades.Filter
		GetGrade                []int
		CreateGrade             []grades.Spec
		UpdateGrade             []UpdateGradeArgs
		DeleteGrade             []int
		GetGradesByStudent      []int
		GetGradesByCourse       []int
		GetGradeStatistics      []grades.StatisticsFilter
		GetDashboard            int
		GetGradeDistribution    []analytics.DistributionFilter
		ListCourseAnalytics     int
		ListStudentPerformances int
		GetStudentPerformance   []int
	}
}

func (m *MockClient) ObtainToken(ctx context.Context, cred accounts.Credentials) (accounts.TokenPair, error) {
	m.t.Helper()

	m.Calls.ObtainToken = append(m.Calls.ObtainToken, cred)
	if m.Impl.ObtainToken == nil {
		m.t.Fatal("ObtainToken is not ready to be called")
	}
	return m.Impl.ObtainToken(ctx, cred)
}

func (m *MockClient) GetCurrentUser(ctx context.Context) (accounts.User, error) {
	m.t.Helper()

	m.Calls.GetCurrentUser += 1
	if m.Impl.GetCurrentUser == nil {
		m.t.Fatal("GetCurrentUser is not ready to be called")
	}
	return m.Impl.GetCurrentUser(ctx)
}

func (m *MockClient) Register(ctx context.Context, reg accounts.Registration) (accounts.User, error) {
	m.t.Helper()

	m.Calls.Register = append(m.Calls.Register, reg)
	if m.Impl.Register == nil {
		m.t.Fatal("Register is not ready to be called")
	}
	return m.Impl.Register(ctx, reg)
}

func (m *MockClient) ListStudents(ctx context.Context, filter students.Filter) (paginated.Page[students.Summary], error) {
	m.t.Helper()

	m.Calls.ListStudents = append(m.Calls.ListStudents, filter)
	if m.Impl.ListStudents == nil {
		m.t.Fatal("ListStudents is not ready to be called")
	}
	return m.Impl.ListStudents(ctx, filter)
}

func (m *MockClient) GetStudent(ctx context.Context, id int) (students.Detail, error) {
	m.t.Helper()

	m.Calls.GetStudent = append(m.Calls.GetStudent, id)
	if m.Impl.GetStudent == nil {
		m.t.Fatal("GetStudent is not ready to be called")
	}
	return m.Impl.GetStudent(ctx, id)
}

func (m *MockClient) CreateStudent(ctx context.Context, spec students.Spec) (students.Detail, error) {
	m.t.Helper()

	m.Calls.CreateStudent = append(m.Calls.CreateStudent, spec)
	if m.Impl.CreateStudent == nil {
		m.t.Fatal("CreateStudent is not ready to be called")
	}
	return m.Impl.CreateStudent(ctx, spec)
}

func (m *MockClient) UpdateStudent(ctx context.Context, id int, change students.Change) (students.Detail, error) {
	m.t.Helper()

	m.Calls.UpdateStudent = append(m.Calls.UpdateStudent, UpdateStudentArgs{Id: id, Change: change})
	if m.Impl.UpdateStudent == nil {
		m.t.Fatal("UpdateStudent is not ready to be called")
	}
	return m.Impl.UpdateStudent(ctx, id, change)
}

func (m *MockClient) DeleteStudent(ctx context.Context, id int) error {
	m.t.Helper()

	m.Calls.DeleteStudent = append(m.Calls.DeleteStudent, id)
	if m.Impl.DeleteStudent == nil {
		m.t.Fatal("DeleteStudent is not ready to be called")
	}
	return m.Impl.DeleteStudent(ctx, id)
}

func (m *MockClient) ListCourses(ctx context.Context, filter courses.Filter) (paginated.Page[courses.Summary], error) {
	m.t.Helper()

	m.Calls.ListCourses = append(m.Calls.ListCourses, filter)
	if m.Impl.ListCourses == nil {
		m.t.Fatal("ListCourses is not ready to be called")
	}
	return m.Impl.ListCourses(ctx, filter)
}

func (m *MockClient) GetCourse(ctx context.Context, id int) (courses.Detail, error) {
	m.t.Helper()

	m.Calls.GetCourse = append(m.Calls.GetCourse, id)
	if m.Impl.GetCourse == nil {
		m.t.Fatal("GetCourse is not ready to be called")
	}
	return m.Impl.GetCourse(ctx, id)
}

func (m *MockClient) CreateCourse(ctx context.Context, spec courses.Spec) (courses.Detail, error) {
	m.t.Helper()

	m.Calls.CreateCourse = append(m.Calls.CreateCourse, spec)
	if m.Impl.CreateCourse == nil {
		m.t.Fatal("CreateCourse is not ready to be called")
	}
	return m.Impl.CreateCourse(ctx, spec)
}

func (m *MockClient) UpdateCourse(ctx context.Context, id int, change courses.Change) (courses.Detail, error) {
	m.t.Helper()

	m.Calls.UpdateCourse = append(m.Calls.UpdateCourse, UpdateCourseArgs{Id: id, Change: change})
	if m.Impl.UpdateCourse == nil {
		m.t.Fatal("UpdateCourse is not ready to be called")
	}
	return m.Impl.UpdateCourse(ctx, id, change)
}

func (m *MockClient) DeleteCourse(ctx context.Context, id int) error {
	m.t.Helper()

	m.Calls.DeleteCourse = append(m.Calls.DeleteCourse, id)
	if m.Impl.DeleteCourse == nil {
		m.t.Fatal("DeleteCourse is not ready to be called")
	}
	return m.Impl.DeleteCourse(ctx, id)
}

func (m *MockClient) GetCourseStudents(ctx context.Context, id int) ([]enrollments.Detail, error) {
	m.t.Helper()

	m.Calls.GetCourseStudents = append(m.Calls.GetCourseStudents, id)
	if m.Impl.GetCourseStudents == nil {
		m.t.Fatal("GetCourseStudents is not ready to be called")
	}
	return m.Impl.GetCourseStudents(ctx, id)
}

func (m *MockClient) ListEnrollments(ctx context.Context, filter enrollments.Filter) (paginated.Page[enrollments.Detail], error) {
	m.t.Helper()

	m.Calls.ListEnrollments = append(m.Calls.ListEnrollments, filter)
	if m.Impl.ListEnrollments == nil {
		m.t.Fatal("ListEnrollments is not ready to be called")
	}
	return m.Impl.ListEnrollments(ctx, filter)
}

func (m *MockClient) GetEnrollment(ctx context.Context, id int) (enrollments.Detail, error) {
	m.t.Helper()

	m.Calls.GetEnrollment = append(m.Calls.GetEnrollment, id)
	if m.Impl.GetEnrollment == nil {
		m.t.Fatal("GetEnrollment is not ready to be called")
	}
	return m.Impl.GetEnrollment(ctx, id)
}

func (m *MockClient) CreateEnrollment(ctx context.Context, spec enrollments.Spec) (enrollments.Detail, error) {
	m.t.Helper()

	m.Calls.CreateEnrollment = append(m.Calls.CreateEnrollment, spec)
	if m.Impl.CreateEnrollment == nil {
		m.t.Fatal("CreateEnrollment is not ready to be called")
	}
	return m.Impl.CreateEnrollment(ctx, spec)
}

func (m *MockClient) UpdateEnrollmentStatus(ctx context.Context, id int, status enrollments.Status) (enrollments.Detail, error) {
	m.t.Helper()

	m.Calls.UpdateEnrollmentStatus = append(m.Calls.UpdateEnrollmentStatus, UpdateEnrollmentStatusArgs{Id: id, Status: status})
	if m.Impl.UpdateEnrollmentStatus == nil {
		m.t.Fatal("UpdateEnrollmentStatus is not ready to be called")
	}
	return m.Impl.UpdateEnrollmentStatus(ctx, id, status)
}

func (m *MockClient) DeleteEnrollment(ctx context.Context, id int) error {
	m.t.Helper()

	m.Calls.DeleteEnrollment = append(m.Calls.DeleteEnrollment, id)
	if m.Impl.DeleteEnrollment == nil {
		m.t.Fatal("DeleteEnrollment is not ready to be called")
	}
	return m.Impl.DeleteEnrollment(ctx, id)
}

func (m *MockClient) ListGrades(ctx context.Context, filter grades.Filter) (paginated.Page[grades.Summary], error) {
	m.t.Helper()

	m.Calls.ListGrades = append(m.Calls.ListGrades, filter)
	if m.Impl.ListGrades == nil {
		m.t.Fatal("ListGrades is not ready to be called")
	}
	return m.Impl.ListGrades(ctx, filter)
}

func (m *MockClient) GetGrade(ctx context.Context, id int) (grades.Detail, error) {
	m.t.Helper()

	m.Calls.GetGrade = append(m.Calls.GetGrade, id)
	if m.Impl.GetGrade == nil {
		m.t.Fatal("GetGrade is not ready to be called")
	}
	return m.Impl.GetGrade(ctx, id)
}

func (m *MockClient) CreateGrade(ctx context.Context, spec grades.Spec) (grades.Detail, error) {
	m.t.Helper()

	m.Calls.CreateGrade = append(m.Calls.CreateGrade, spec)
	if m.Impl.CreateGrade == nil {
		m.t.Fatal("CreateGrade is not ready to be called")
	}
	return m.Impl.CreateGrade(ctx, spec)
}

func (m *MockClient) UpdateGrade(ctx context.Context, id int, change grades.Change) (grades.Detail, error) {
	m.t.Helper()

	m.Calls.UpdateGrade = append(m.Calls.UpdateGrade, UpdateGradeArgs{Id: id, Change: change})
	if m.Impl.UpdateGrade == nil {
		m.t.Fatal("UpdateGrade is not ready to be called")
	}
	return m.Impl.UpdateGrade(ctx, id, change)
}

func (m *MockClient) DeleteGrade(ctx context.Context, id int) error {
	m.t.Helper()

	m.Calls.DeleteGrade = append(m.Calls.DeleteGrade, id)
	if m.Impl.DeleteGrade == nil {
		m.t.Fatal("DeleteGrade is not ready to be called")
	}
	return m.Impl.DeleteGrade(ctx, id)
}

func (m *MockClient) GetGradesByStudent(ctx context.Context, studentId int) ([]grades.Summary, error) {
	m.t.Helper()

	m.Calls.GetGradesByStudent = append(m.Calls.GetGradesByStudent, studentId)
	if m.Impl.GetGradesByStudent == nil {
		m.t.Fatal("GetGradesByStudent is not ready to be called")
	}
	return m.Impl.GetGradesByStudent(ctx, studentId)
}

func (m *MockClient) GetGradesByCourse(ctx context.Context, courseId int) ([]grades.Summary, error) {
	m.t.Helper()

	m.Calls.GetGradesByCourse = append(m.Calls.GetGradesByCourse, courseId)
	if m.Impl.GetGradesByCourse == nil {
		m.t.Fatal("GetGradesByCourse is not ready to be called")
	}
	return m.Impl.GetGradesByCourse(ctx, courseId)
}

func (m *MockClient) GetGradeStatistics(ctx context.Context, filter grades.StatisticsFilter) (grades.Statistics, error) {
	m.t.Helper()

	m.Calls.GetGradeStatistics = append(m.Calls.GetGradeStatistics, filter)
	if m.Impl.GetGradeStatistics == nil {
		m.t.Fatal("GetGradeStatistics is not ready to be called")
	}
	return m.Impl.GetGradeStatistics(ctx, filter)
}

func (m *MockClient) GetDashboard(ctx context.Context) (analytics.Dashboard, error) {
	m.t.Helper()

	m.Calls.GetDashboard += 1
	if m.Impl.GetDashboard == nil {
		m.t.Fatal("GetDashboard is not ready to be called")
	}
	return m.Impl.GetDashboard(ctx)
}

func (m *MockClient) GetGradeDistribution(ctx context.Context, filter analytics.DistributionFilter) (analytics.Distribution, error) {
	m.t.Helper()

	m.Calls.GetGradeDistribution = append(m.Calls.GetGradeDistribution, filter)
	if m.Impl.GetGradeDistribution == nil {
		m.t.Fatal("GetGradeDistribution is not ready to be called")
	}
	return m.Impl.GetGradeDistribution(ctx, filter)
}

func (m *MockClient) ListCourseAnalytics(ctx context.Context) ([]analytics.CourseAnalytics, error) {
	m.t.Helper()

	m.Calls.ListCourseAnalytics += 1
	if m.Impl.ListCourseAnalytics == nil {
		m.t.Fatal("ListCourseAnalytics is not ready to be called")
	}
	return m.Impl.ListCourseAnalytics(ctx)
}

func (m *MockClient) ListStudentPerformances(ctx context.Context) ([]analytics.PerformanceSummary, error) {
	m.t.Helper()

	m.Calls.ListStudentPerformances += 1
	if m.Impl.ListStudentPerformances == nil {
		m.t.Fatal("ListStudentPerformances is not ready to be called")
	}
	return m.Impl.ListStudentPerformances(ctx)
}

func (m *MockClient) GetStudentPerformance(ctx context.Context, studentId int) (analytics.PerformanceReport, error) {
	m.t.Helper()

	m.Calls.GetStudentPerformance = append(m.Calls.GetStudentPerformance, studentId)
	if m.Impl.GetStudentPerformance == nil {
		m.t.Fatal("GetStudentPerformance is not ready to be called")
	}
	return m.Impl.GetStudentPerformance(ctx, studentId)
}
