package mockapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/opst/smsctl/pkg/api/types/accounts"
	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissing is returned when the record is not found.
var ErrMissing = errors.New("not found")

// InvalidError is a rejection of input, reported per field.
type InvalidError struct {
	Payload apierr.Payload
}

func (e *InvalidError) Error() string {
	return "invalid input: " + e.Payload.String()
}

func invalid(p apierr.Payload) error {
	return &InvalidError{Payload: p}
}

const (
	defaultMaxScore = 100.0
	defaultCredits  = 3
)

type user struct {
	accounts.User
	passwordHash []byte
}

type course struct {
	courses.Detail
}

type enrollment struct {
	Id         int
	StudentId  int
	CourseId   int
	EnrolledAt time.Time
	Status     enrollments.Status
}

type grade struct {
	Id        int
	StudentId int
	CourseId  int
	Score     float64
	MaxScore  float64
	GradeType grades.Type
	Semester  string
	Comments  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g grade) percentage() float64 {
	if g.MaxScore == 0 {
		return 0
	}
	return g.Score * 100 / g.MaxScore
}

// Store is an in-memory database of the API.
//
// Every method is safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	now func() time.Time
	seq map[string]int

	users       map[int]*user
	students    map[int]*students.Detail
	courses     map[int]*course
	enrollments map[int]*enrollment
	grades      map[int]*grade
}

type StoreOption = func(*Store) *Store

// WithClock replaces the clock which stamps records.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) *Store {
		s.now = now
		return s
	}
}

func NewStore(options ...StoreOption) *Store {
	return utils.ApplyAll(&Store{
		now:         time.Now,
		seq:         map[string]int{},
		users:       map[int]*user{},
		students:    map[int]*students.Detail{},
		courses:     map[int]*course{},
		enrollments: map[int]*enrollment{},
		grades:      map[int]*grade{},
	}, options...)
}

func (s *Store) nextId(table string) int {
	s.seq[table] += 1
	return s.seq[table]
}

// sorted returns values of m ordered by less. Ties are broken by key.
func sorted[T any](m map[int]*T, less func(a, b *T) bool) []*T {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ret := make([]*T, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, m[k])
	}
	if less != nil {
		sort.SliceStable(ret, func(i, j int) bool { return less(ret[i], ret[j]) })
	}
	return ret
}

func contains(needle string, haystack ...string) bool {
	needle = strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func doesNotExist(id int) string {
	return fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, id)
}

// AddUser registers a user without confirmation of password.
func (s *Store) AddUser(username, password string, instructor bool) (accounts.User, error) {
	return s.Register(accounts.Registration{
		Username:        username,
		Email:           username + "@example.com",
		Password:        password,
		PasswordConfirm: password,
		FullName:        username,
	}, instructor)
}

// Register creates a new user.
func (s *Store) Register(reg accounts.Registration, instructor bool) (accounts.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := apierr.Payload{}
	for _, u := range s.users {
		if u.Username == reg.Username {
			p = p.With("username", "A user with that username already exists.")
		}
		if strings.EqualFold(u.Email, reg.Email) {
			p = p.With("email", "user with this email already exists.")
		}
	}
	if reg.Password != reg.PasswordConfirm {
		p = p.With("password", "Password fields didn't match.")
	}
	if !p.IsEmpty() {
		return accounts.User{}, invalid(p)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.MinCost)
	if err != nil {
		return accounts.User{}, err
	}

	now := s.now()
	u := &user{
		User: accounts.User{
			Id:           s.nextId("users"),
			Username:     reg.Username,
			Email:        reg.Email,
			FullName:     reg.FullName,
			IsInstructor: instructor,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		passwordHash: hash,
	}
	s.users[u.Id] = u
	return u.User, nil
}

// Authenticate finds an active user having the username and password.
func (s *Store) Authenticate(username, password string) (accounts.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username != username || !u.IsActive {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
			return accounts.User{}, false
		}
		return u.User, true
	}
	return accounts.User{}, false
}

func (s *Store) GetUser(id int) (accounts.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return accounts.User{}, ErrMissing
	}
	return u.User, nil
}

// ListStudents returns students matching search, newest first.
//
// search is matched with first name, last name, email and student id.
func (s *Store) ListStudents(search string) []students.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := []students.Summary{}
	for _, st := range sorted(s.students, newestStudent) {
		if search != "" && !contains(search, st.FirstName, st.LastName, st.Email, st.StudentId) {
			continue
		}
		ret = append(ret, st.Summary)
	}
	return ret
}

func newestStudent(a, b *students.Detail) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.Id > b.Id
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *Store) GetStudent(id int) (students.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		return students.Detail{}, ErrMissing
	}
	return *st, nil
}

// student id and email should be unique.
func (s *Store) checkStudentUniqueness(self int, studentId, email string) apierr.Payload {
	p := apierr.Payload{}
	for _, st := range s.students {
		if st.Id == self {
			continue
		}
		if st.StudentId == studentId {
			p = p.With("student_id", "student with this student id already exists.")
		}
		if strings.EqualFold(st.Email, email) {
			p = p.With("email", "student with this email already exists.")
		}
	}
	return p
}

func (s *Store) CreateStudent(spec students.Spec) (students.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.checkStudentUniqueness(0, spec.StudentId, spec.Email); !p.IsEmpty() {
		return students.Detail{}, invalid(p)
	}

	now := s.now()
	st := &students.Detail{
		Summary: students.Summary{
			Id:        s.nextId("students"),
			StudentId: spec.StudentId,
			Email:     spec.Email,
		},
		FirstName:   spec.FirstName,
		LastName:    spec.LastName,
		DateOfBirth: spec.DateOfBirth,
		Phone:       spec.Phone,
		Address:     spec.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	st.FullName = fullName(st.FirstName, st.LastName)
	s.students[st.Id] = st
	return *st, nil
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// UpdateStudent overwrites only fields which are set in change.
func (s *Store) UpdateStudent(id int, change students.Change) (students.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.students[id]
	if !ok {
		return students.Detail{}, ErrMissing
	}
	st := *current
	set(&st.StudentId, change.StudentId)
	set(&st.FirstName, change.FirstName)
	set(&st.LastName, change.LastName)
	set(&st.Email, change.Email)
	setOptional(&st.DateOfBirth, change.DateOfBirth)
	setOptional(&st.Phone, change.Phone)
	setOptional(&st.Address, change.Address)

	p := apierr.Payload{}
	if st.StudentId == "" {
		p = p.With("student_id", "This field may not be blank.")
	}
	if st.Email == "" {
		p = p.With("email", "This field may not be blank.")
	}
	for _, f := range s.checkStudentUniqueness(id, st.StudentId, st.Email).Fields {
		for _, m := range f.Messages {
			p = p.With(f.Name, m)
		}
	}
	if !p.IsEmpty() {
		return students.Detail{}, invalid(p)
	}

	st.FullName = fullName(st.FirstName, st.LastName)
	st.UpdatedAt = s.now()
	s.students[id] = &st
	return st, nil
}

func set[T any](dest *T, v *T) {
	if v != nil {
		*dest = *v
	}
}

func setOptional[T any](dest **T, v *T) {
	if v != nil {
		c := *v
		*dest = &c
	}
}

// DeleteStudent removes the student with its enrollments and grades.
func (s *Store) DeleteStudent(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return ErrMissing
	}
	delete(s.students, id)
	for k, e := range s.enrollments {
		if e.StudentId == id {
			delete(s.enrollments, k)
		}
	}
	for k, g := range s.grades {
		if g.StudentId == id {
			delete(s.grades, k)
		}
	}
	return nil
}

// ListCourses returns courses matching search, ordered by name.
//
// search is matched with course code, name, description and instructor.
func (s *Store) ListCourses(search string) []courses.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := []courses.Summary{}
	for _, c := range sorted(s.courses, byCourseName) {
		if search != "" && !contains(
			search, c.CourseCode, c.Name, deref(c.Description), deref(c.Instructor),
		) {
			continue
		}
		ret = append(ret, c.Summary)
	}
	return ret
}

func byCourseName(a, b *course) bool {
	return a.Name < b.Name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Store) activeCount(courseId int) int {
	n := 0
	for _, e := range s.enrollments {
		if e.CourseId == courseId && e.Status == enrollments.Active {
			n += 1
		}
	}
	return n
}

func (s *Store) courseDetail(c *course) courses.Detail {
	d := c.Detail
	n := s.activeCount(c.Id)
	d.StudentCount = &n
	return d
}

func (s *Store) GetCourse(id int) (courses.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return courses.Detail{}, ErrMissing
	}
	return s.courseDetail(c), nil
}

func (s *Store) checkCourseUniqueness(self int, code string) apierr.Payload {
	for _, c := range s.courses {
		if c.Id != self && c.CourseCode == code {
			return apierr.ForFields("course_code", "course with this course code already exists.")
		}
	}
	return apierr.Payload{}
}

func (s *Store) CreateCourse(spec courses.Spec) (courses.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.checkCourseUniqueness(0, spec.CourseCode); !p.IsEmpty() {
		return courses.Detail{}, invalid(p)
	}
	credits := spec.Credits
	if credits == 0 {
		credits = defaultCredits
	}

	now := s.now()
	c := &course{Detail: courses.Detail{
		Summary: courses.Summary{
			Id:         s.nextId("courses"),
			CourseCode: spec.CourseCode,
			Name:       spec.Name,
			Credits:    credits,
			Instructor: spec.Instructor,
		},
		Description: spec.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}
	s.courses[c.Id] = c
	return s.courseDetail(c), nil
}

func (s *Store) UpdateCourse(id int, change courses.Change) (courses.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.courses[id]
	if !ok {
		return courses.Detail{}, ErrMissing
	}
	c := *current
	set(&c.CourseCode, change.CourseCode)
	set(&c.Name, change.Name)
	set(&c.Credits, change.Credits)
	setOptional(&c.Instructor, change.Instructor)
	setOptional(&c.Description, change.Description)

	p := s.checkCourseUniqueness(id, c.CourseCode)
	if c.CourseCode == "" {
		p = p.With("course_code", "This field may not be blank.")
	}
	if c.Name == "" {
		p = p.With("name", "This field may not be blank.")
	}
	if !p.IsEmpty() {
		return courses.Detail{}, invalid(p)
	}

	c.UpdatedAt = s.now()
	s.courses[id] = &c
	return s.courseDetail(&c), nil
}

// DeleteCourse removes the course with its enrollments and grades.
func (s *Store) DeleteCourse(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return ErrMissing
	}
	delete(s.courses, id)
	for k, e := range s.enrollments {
		if e.CourseId == id {
			delete(s.enrollments, k)
		}
	}
	for k, g := range s.grades {
		if g.CourseId == id {
			delete(s.grades, k)
		}
	}
	return nil
}

// CourseStudents returns active enrollments of the course.
func (s *Store) CourseStudents(id int) ([]enrollments.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return nil, ErrMissing
	}
	ret := []enrollments.Detail{}
	for _, e := range sorted(s.enrollments, newestEnrollment) {
		if e.CourseId == id && e.Status == enrollments.Active {
			ret = append(ret, s.enrollmentDetail(e))
		}
	}
	return ret, nil
}

func newestEnrollment(a, b *enrollment) bool {
	if a.EnrolledAt.Equal(b.EnrolledAt) {
		return a.Id > b.Id
	}
	return a.EnrolledAt.After(b.EnrolledAt)
}

func (s *Store) enrollmentDetail(e *enrollment) enrollments.Detail {
	d := enrollments.Detail{
		Id:         e.Id,
		EnrolledAt: e.EnrolledAt,
		Status:     e.Status,
	}
	if st, ok := s.students[e.StudentId]; ok {
		d.Student = st.Summary
	}
	if c, ok := s.courses[e.CourseId]; ok {
		d.Course = c.Summary
	}
	return d
}

// ListEnrollments returns enrollments matching filter, newest first.
//
// Page of filter is ignored.
func (s *Store) ListEnrollments(filter enrollments.Filter) []enrollments.Detail {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := []enrollments.Detail{}
	for _, e := range sorted(s.enrollments, newestEnrollment) {
		if filter.Student != 0 && e.StudentId != filter.Student {
			continue
		}
		if filter.Course != 0 && e.CourseId != filter.Course {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		ret = append(ret, s.enrollmentDetail(e))
	}
	return ret
}

func (s *Store) GetEnrollment(id int) (enrollments.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.enrollments[id]
	if !ok {
		return enrollments.Detail{}, ErrMissing
	}
	return s.enrollmentDetail(e), nil
}

// CreateEnrollment enrolls a student to a course.
//
// A pair of student and course can be enrolled only once.
func (s *Store) CreateEnrollment(spec enrollments.Spec) (enrollments.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := apierr.Payload{}
	if _, ok := s.students[spec.StudentId]; !ok {
		p = p.With("student_id", doesNotExist(spec.StudentId))
	}
	if _, ok := s.courses[spec.CourseId]; !ok {
		p = p.With("course_id", doesNotExist(spec.CourseId))
	}
	if p.IsEmpty() {
		for _, e := range s.enrollments {
			if e.StudentId == spec.StudentId && e.CourseId == spec.CourseId {
				p = p.With("non_field_errors", "The fields student, course must make a unique set.")
				break
			}
		}
	}
	if !p.IsEmpty() {
		return enrollments.Detail{}, invalid(p)
	}

	e := &enrollment{
		Id:         s.nextId("enrollments"),
		StudentId:  spec.StudentId,
		CourseId:   spec.CourseId,
		EnrolledAt: s.now(),
		Status:     enrollments.Active,
	}
	s.enrollments[e.Id] = e
	return s.enrollmentDetail(e), nil
}

func (s *Store) UpdateEnrollmentStatus(id int, status enrollments.Status) (enrollments.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.enrollments[id]
	if !ok {
		return enrollments.Detail{}, ErrMissing
	}
	if _, err := enrollments.ParseStatus(string(status)); err != nil {
		return enrollments.Detail{}, invalid(apierr.ForFields(
			"status", fmt.Sprintf(`"%s" is not a valid choice.`, status),
		))
	}
	updated := *e
	updated.Status = status
	s.enrollments[id] = &updated
	return s.enrollmentDetail(&updated), nil
}

func (s *Store) DeleteEnrollment(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.enrollments[id]; !ok {
		return ErrMissing
	}
	delete(s.enrollments, id)
	return nil
}
