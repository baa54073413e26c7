package enrollment_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest/mock"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/enrollment"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/internal/commandline"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/internal/testenv"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/logger"
	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/mockapi"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/opst/smsctl/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func positive(t *testing.T, v string) *args.Optional[args.Int] {
	t.Helper()
	o := args.OptionalPositive()
	if v == "" {
		return o
	}
	if err := o.Set(v); err != nil {
		t.Fatal(err)
	}
	return o
}

func enrolled(t *testing.T, st *mockapi.Store) (students.Detail, courses.Detail, enrollments.Detail) {
	t.Helper()
	s := try.To(st.CreateStudent(students.Spec{StudentId: "S001", FirstName: "Minji", LastName: "Kim", Email: "kim@example.com"})).OrFatal(t)
	c := try.To(st.CreateCourse(courses.Spec{CourseCode: "CS101", Name: "Programming", Credits: 3})).OrFatal(t)
	e := try.To(st.CreateEnrollment(enrollments.Spec{StudentId: s.Id, CourseId: c.Id})).OrFatal(t)
	return s, c, e
}

func TestListTask(t *testing.T) {
	t.Run("filters are passed", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.ListEnrollments = func(ctx context.Context, filter enrollments.Filter) (paginated.Page[enrollments.Detail], error) {
			return paginated.Page[enrollments.Detail]{}, nil
		}
		status := args.Parser(enrollments.ParseStatus)
		if err := status.Set("dropped"); err != nil {
			t.Fatal(err)
		}
		cl, stdout, _ := commandline.New("smsctl enrollment list", enrollment.ListFlags{
			Student: positive(t, "12"),
			Course:  positive(t, ""),
			Status:  status,
			Page:    positive(t, ""),
		}, nil)

		if err := enrollment.ListTask()(context.Background(), logger.Null(), *env.New(), client, cl, nil); err != nil {
			t.Fatal(err)
		}

		want := enrollments.Filter{Student: 12, Status: enrollments.Dropped}
		if calls := client.Calls.ListEnrollments; len(calls) != 1 || calls[0] != want {
			t.Errorf("calls: %+v", calls)
		}
		if !strings.Contains(stdout.String(), "no enrollments") {
			t.Errorf("output:\n%s", stdout.String())
		}
	})

	t.Run("unknown status is rejected by the flag", func(t *testing.T) {
		if err := args.Parser(enrollments.ParseStatus).Set("graduated"); err == nil {
			t.Error("unknown status is accepted")
		}
	})
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("both of student and course are required", func(t *testing.T) {
		client := mock.New(t)
		cl, _, _ := commandline.New("smsctl enrollment create", enrollment.CreateFlags{
			Student: positive(t, "1"), Course: positive(t, ""),
		}, nil)
		err := enrollment.CreateTask()(ctx, logger.Null(), *env.New(), client, cl, nil)
		if !errors.Is(err, flarc.ErrUsage) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("enrolling twice is told without field name", func(t *testing.T) {
		client, st := testenv.SignedIn(t)
		s, c, _ := enrolled(t, st)
		cl, _, _ := commandline.New("smsctl enrollment create", enrollment.CreateFlags{
			Student: positive(t, strconv.Itoa(s.Id)), Course: positive(t, strconv.Itoa(c.Id)),
		}, nil)

		err := enrollment.CreateTask()(ctx, logger.Null(), *env.New(), client, cl, nil)
		if err == nil || err.Error() != "The fields student, course must make a unique set." {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestStatusTask(t *testing.T) {
	ctx := context.Background()

	t.Run("after the change, enrollments of the student are listed", func(t *testing.T) {
		client, st := testenv.SignedIn(t)
		_, _, e := enrolled(t, st)
		cl, stdout, _ := commandline.New("smsctl enrollment status", struct{}{}, map[string][]string{
			enrollment.ARG_ID:     {strconv.Itoa(e.Id)},
			enrollment.ARG_STATUS: {"completed"},
		})

		if err := enrollment.StatusTask()(ctx, logger.Null(), *env.New(), client, cl, nil); err != nil {
			t.Fatal(err)
		}

		got := try.To(st.GetEnrollment(e.Id)).OrFatal(t)
		if got.Status != enrollments.Completed {
			t.Errorf("status: %s", got.Status)
		}
		if !strings.Contains(stdout.String(), "completed") || !strings.Contains(stdout.String(), "CS101") {
			t.Errorf("output:\n%s", stdout.String())
		}
	})

	t.Run("unknown status is usage error, and not sent", func(t *testing.T) {
		client := mock.New(t)
		cl, _, _ := commandline.New("smsctl enrollment status", struct{}{}, map[string][]string{
			enrollment.ARG_ID:     {"1"},
			enrollment.ARG_STATUS: {"graduated"},
		})

		err := enrollment.StatusTask()(ctx, logger.Null(), *env.New(), client, cl, nil)
		if !errors.Is(err, flarc.ErrUsage) {
			t.Errorf("unexpected error: %v", err)
		}
		if len(client.Calls.UpdateEnrollmentStatus) != 0 {
			t.Errorf("sent: %+v", client.Calls.UpdateEnrollmentStatus)
		}
	})
}
