package grade_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest/mock"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/grade"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/internal/commandline"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/internal/testenv"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/logger"
	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/mockapi"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/opst/smsctl/pkg/utils/pointer"
	"github.com/opst/smsctl/pkg/utils/try"
)

func set[T interface{ String() string }](t *testing.T, o *args.Optional[T], v string) *args.Optional[T] {
	t.Helper()
	if err := o.Set(v); err != nil {
		t.Fatal(err)
	}
	return o
}

func fixture(t *testing.T, st *mockapi.Store) (students.Detail, courses.Detail) {
	t.Helper()
	s := try.To(st.CreateStudent(students.Spec{StudentId: "S001", FirstName: "Minji", LastName: "Kim", Email: "kim@example.com"})).OrFatal(t)
	c := try.To(st.CreateCourse(courses.Spec{CourseCode: "CS101", Name: "Programming", Credits: 3})).OrFatal(t)
	return s, c
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("percentage and letter of server are shown", func(t *testing.T) {
		client, st := testenv.SignedIn(t)
		s, c := fixture(t, st)
		cl, _, _ := commandline.New("smsctl grade create", grade.CreateFlags{
			Student:  set(t, args.OptionalPositive(), strconv.Itoa(s.Id)),
			Course:   set(t, args.OptionalPositive(), strconv.Itoa(c.Id)),
			Score:    set(t, args.OptionalFloat(), "85"),
			MaxScore: args.OptionalFloat(),
			Type:     set(t, args.Parser(grades.ParseType), "midterm"),
		}, nil)

		if err := grade.CreateTask()(ctx, logger.Null(), env.SmsEnv{Semester: "2024-1"}, client, cl, nil); err != nil {
			t.Fatal(err)
		}

		lcl, stdout, _ := commandline.New("smsctl grade by-student", struct{}{}, map[string][]string{
			grade.ARG_ID: {strconv.Itoa(s.Id)},
		})
		if err := grade.ByTask(grade.ByStudent)(ctx, logger.Null(), *env.New(), client, lcl, nil); err != nil {
			t.Fatal(err)
		}
		for _, cell := range []string{"Minji Kim", "Programming", "midterm", "85/100", "85.0%", "B", "2024-1"} {
			if !strings.Contains(stdout.String(), cell) {
				t.Errorf("%q is not shown:\n%s", cell, stdout.String())
			}
		}
	})

	t.Run("missing type is told before sending", func(t *testing.T) {
		client, st := testenv.SignedIn(t)
		s, c := fixture(t, st)
		cl, _, _ := commandline.New("smsctl grade create", grade.CreateFlags{
			Student:  set(t, args.OptionalPositive(), strconv.Itoa(s.Id)),
			Course:   set(t, args.OptionalPositive(), strconv.Itoa(c.Id)),
			Score:    set(t, args.OptionalFloat(), "85"),
			MaxScore: args.OptionalFloat(),
			Type:     args.Parser(grades.ParseType),
			Semester: "2024-1",
		}, nil)

		err := grade.CreateTask()(ctx, logger.Null(), *env.New(), client, cl, nil)
		if err == nil || err.Error() != "grade_type: This field is required." {
			t.Errorf("unexpected error: %v", err)
		}
		if recorded := st.ListGrades(grades.Filter{}); len(recorded) != 0 {
			t.Errorf("recorded: %+v", recorded)
		}
	})
}

func TestListTask(t *testing.T) {
	type when struct {
		semester string
		env      env.SmsEnv
	}

	theory := func(when when, then grades.Filter) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.ListGrades = func(ctx context.Context, filter grades.Filter) (paginated.Page[grades.Summary], error) {
				return paginated.Page[grades.Summary]{}, nil
			}
			cl, _, _ := commandline.New("smsctl grade list", grade.ListFlags{
				Student:  args.OptionalPositive(),
				Course:   set(t, args.OptionalPositive(), "3"),
				Semester: when.semester,
				Type:     args.Parser(grades.ParseType),
				Page:     args.OptionalPositive(),
			}, nil)

			if err := grade.ListTask()(context.Background(), logger.Null(), when.env, client, cl, nil); err != nil {
				t.Fatal(err)
			}
			if calls := client.Calls.ListGrades; len(calls) != 1 || calls[0] != then {
				t.Errorf("calls: %+v", calls)
			}
		}
	}

	t.Run("semester of smsenv is the default", theory(
		when{env: env.SmsEnv{Semester: "2024-1"}},
		grades.Filter{Course: 3, Semester: "2024-1"},
	))
	t.Run("semester flag wins over smsenv", theory(
		when{semester: "2023-2", env: env.SmsEnv{Semester: "2024-1"}},
		grades.Filter{Course: 3, Semester: "2023-2"},
	))
	t.Run("no semester is not filtered", theory(
		when{},
		grades.Filter{Course: 3},
	))
}

func TestUpdateTask(t *testing.T) {
	client := mock.New(t)
	client.Impl.UpdateGrade = func(ctx context.Context, id int, change grades.Change) (grades.Detail, error) {
		return grades.Detail{Summary: grades.Summary{Id: id, GradeType: grades.Final}}, nil
	}
	cl, _, _ := commandline.New("smsctl grade update", grade.UpdateFlags{
		Score:    args.OptionalFloat(),
		MaxScore: args.OptionalFloat(),
		Type:     set(t, args.Parser(grades.ParseType), "final"),
	}, map[string][]string{grade.ARG_ID: {"5"}})

	if err := grade.UpdateTask()(context.Background(), logger.Null(), *env.New(), client, cl, nil); err != nil {
		t.Fatal(err)
	}

	want := grades.Change{GradeType: pointer.Ref(grades.Final)}
	calls := client.Calls.UpdateGrade
	if len(calls) != 1 || calls[0].Id != 5 || calls[0].Change.GradeType == nil || *calls[0].Change.GradeType != *want.GradeType {
		t.Fatalf("calls: %+v", calls)
	}
	if calls[0].Change.Score != nil || calls[0].Change.Semester != nil {
		t.Errorf("unpassed fields are sent: %+v", calls[0].Change)
	}
}

func TestStatsTask(t *testing.T) {
	client, st := testenv.SignedIn(t)
	s, c := fixture(t, st)
	for _, score := range []float64{80, 90} {
		try.To(st.CreateGrade(grades.Spec{
			Student: s.Id, Course: c.Id, Score: pointer.Ref(score),
			GradeType: grades.Quiz, Semester: "2024-1",
		})).OrFatal(t)
	}

	cl, stdout, _ := commandline.New("smsctl grade stats", grade.StatsFlags{
		Course: args.OptionalPositive(),
	}, nil)
	if err := grade.StatsTask()(context.Background(), logger.Null(), env.SmsEnv{Semester: "2024-1"}, client, cl, nil); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output:\n%s", stdout.String())
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "CS101 Programming 85 90 80 1" {
		t.Errorf("row: %q", lines[1])
	}
}
