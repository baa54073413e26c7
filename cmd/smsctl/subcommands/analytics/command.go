package analytics

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	apianalytics "github.com/opst/smsctl/pkg/api/types/analytics"
	"github.com/opst/smsctl/pkg/table"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	dashboard, err := flarc.NewCommand(
		"Show counts of students, courses, enrollments and grades.",
		struct{}{},
		flarc.Args{},
		common.NewTask(DashboardTask()),
	)
	if err != nil {
		return nil, err
	}
	distribution, err := flarc.NewCommand(
		"Show the distribution of letter grades.",
		DistributionFlags{Course: args.OptionalPositive()},
		flarc.Args{},
		common.NewTask(DistributionTask()),
	)
	if err != nil {
		return nil, err
	}
	courses, err := flarc.NewCommand(
		"Show averages and distributions of grades per course.",
		struct{}{},
		flarc.Args{},
		common.NewTask(CoursesTask()),
	)
	if err != nil {
		return nil, err
	}
	performance, err := flarc.NewCommand(
		"Show performances of students.",
		PerformanceFlags{Student: args.OptionalPositive()},
		flarc.Args{},
		common.NewTask(PerformanceTask()),
		flarc.WithDescription(`
Show average grades of all students.

With --student, grades of the student are shown with the average percentage.
`),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Show analytics of grades.",
		struct{}{},
		flarc.WithSubcommand("dashboard", dashboard),
		flarc.WithSubcommand("distribution", distribution),
		flarc.WithSubcommand("courses", courses),
		flarc.WithSubcommand("performance", performance),
	)
}

func DashboardTask() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		d, err := client.GetDashboard(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(
			cl.Stdout(),
			"students:           %d\ncourses:            %d\nactive enrollments: %d\ngrades:             %d\naverage grade:      %.2f\n",
			d.TotalStudents, d.TotalCourses, d.ActiveEnrollments, d.TotalGrades, d.AverageGrade,
		)
		return err
	}
}

type DistributionFlags struct {
	Course   *args.Optional[args.Int] `flag:"course" metavar:"ID" help:"grades in the course only"`
	Semester string                   `flag:"semester" metavar:"2024-1" help:"grades in the semester. default is \"semester\" in smsenv"`
}

func DistributionTask() common.Task[DistributionFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		smsEnv env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[DistributionFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		semester := flags.Semester
		if semester == "" {
			semester = smsEnv.Semester
		}
		d, err := client.GetGradeDistribution(ctx, apianalytics.DistributionFilter{
			CourseId: int(flags.Course.Value()),
			Semester: semester,
		})
		if err != nil {
			return err
		}

		total := d.Total()
		tbl := table.Table[apianalytics.LetterCount]{
			Columns: []table.Column[apianalytics.LetterCount]{
				{Key: "letter", Header: "LETTER"},
				{Key: "count", Header: "COUNT"},
				{
					Key: "share", Header: "SHARE",
					Render: func(l apianalytics.LetterCount) string { return l.Share(total) },
				},
			},
		}
		return tbl.Write(cl.Stdout(), d.Letters())
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func distribution(d apianalytics.Distribution) string {
	return fmt.Sprintf("A:%d B:%d C:%d D:%d F:%d", d.A, d.B, d.C, d.D, d.F)
}

var CoursesTable = table.Table[apianalytics.CourseAnalytics]{
	Columns: []table.Column[apianalytics.CourseAnalytics]{
		{Key: "course_code", Header: "CODE"},
		{Key: "course_name", Header: "COURSE"},
		{Key: "total_students", Header: "STUDENTS"},
		{
			Key: "average_grade", Header: "AVERAGE",
			Render: func(c apianalytics.CourseAnalytics) string { return percent(c.AverageGrade) },
		},
		{
			Key: "grade_distribution", Header: "DISTRIBUTION",
			Render: func(c apianalytics.CourseAnalytics) string { return distribution(c.GradeDistribution) },
		},
	},
	Placeholder: "no courses",
}

func CoursesTask() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		found, err := client.ListCourseAnalytics(ctx)
		if err != nil {
			return err
		}
		return CoursesTable.Write(cl.Stdout(), found)
	}
}

type PerformanceFlags struct {
	Student *args.Optional[args.Int] `flag:"student" metavar:"ID" help:"show grades of the student"`
}

var PerformancesTable = table.Table[apianalytics.PerformanceSummary]{
	Columns: []table.Column[apianalytics.PerformanceSummary]{
		{Key: "student_id", Header: "STUDENT ID"},
		{Key: "student_name", Header: "NAME"},
		{Key: "total_courses", Header: "COURSES"},
		{
			Key: "average_grade", Header: "AVERAGE",
			Render: func(p apianalytics.PerformanceSummary) string { return percent(p.AverageGrade) },
		},
		{
			Key: "average_grade", Header: "LETTER",
			Render: func(p apianalytics.PerformanceSummary) string { return apianalytics.LetterOf(p.AverageGrade) },
		},
	},
	Placeholder: "no students",
}

type reportRow struct {
	no int
	apianalytics.PerformanceGrade
}

func (r reportRow) RowKey() string {
	return strconv.Itoa(r.no)
}

var reportTable = table.Table[reportRow]{
	Columns: []table.Column[reportRow]{
		{Key: "course", Header: "COURSE"},
		{Key: "semester", Header: "SEMESTER"},
		{Key: "score", Header: "SCORE"},
		{Key: "max_score", Header: "MAX"},
		{
			Key: "percentage", Header: "PERCENTAGE",
			Render: func(r reportRow) string { return percent(r.Percentage) },
		},
		{Key: "letter_grade", Header: "LETTER"},
	},
	Placeholder: "no grades",
}

func PerformanceTask() common.Task[PerformanceFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[PerformanceFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		if !flags.Student.IsSet() {
			found, err := client.ListStudentPerformances(ctx)
			if err != nil {
				return err
			}
			return PerformancesTable.Write(cl.Stdout(), found)
		}

		report, err := client.GetStudentPerformance(ctx, int(flags.Student.Value()))
		if err != nil {
			return err
		}
		rows := make([]reportRow, 0, len(report.Grades))
		for i, g := range report.Grades {
			rows = append(rows, reportRow{no: i, PerformanceGrade: g})
		}
		if err := reportTable.Write(cl.Stdout(), rows); err != nil {
			return err
		}
		_, err = fmt.Fprintf(
			cl.Stdout(), "average: %s (%s)\n",
			percent(report.AveragePercentage), apianalytics.LetterOf(report.AveragePercentage),
		)
		return err
	}
}
