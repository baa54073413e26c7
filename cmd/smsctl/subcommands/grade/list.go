package grade

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/table"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/youta-t/flarc"
)

// Table is columns of grade lists. Percentage and letter are as the server computed.
var Table = table.Table[grades.Summary]{
	Columns: []table.Column[grades.Summary]{
		{Key: "id", Header: "ID"},
		{Key: "student_name", Header: "STUDENT"},
		{Key: "course_name", Header: "COURSE"},
		{Key: "grade_type", Header: "TYPE"},
		{Key: "score", Header: "SCORE", Render: grades.Summary.ScoreText},
		{Key: "percentage", Header: "PERCENTAGE", Render: grades.Summary.PercentageText},
		{Key: "letter_grade", Header: "LETTER"},
		{Key: "semester", Header: "SEMESTER"},
	},
	Placeholder: "no grades",
}

type ListFlags struct {
	Student  *args.Optional[args.Int]    `flag:"student" metavar:"ID" help:"grades of the student"`
	Course   *args.Optional[args.Int]    `flag:"course" metavar:"ID" help:"grades in the course"`
	Semester string                      `flag:"semester" metavar:"2024-1" help:"grades in the semester. default is \"semester\" in smsenv"`
	Type     *args.Optional[grades.Type] `flag:"type" metavar:"exam|quiz|assignment|project|midterm|final" help:"grades of the type"`
	Search   string                      `flag:"search" alias:"s" help:"find grades whose student or course name contains this text"`
	Page     *args.Optional[args.Int]    `flag:"page" alias:"p" metavar:"N" help:"page number to show. default is the first page"`
}

func NewList() (flarc.Command, error) {
	return flarc.NewCommand(
		"List grades.",
		ListFlags{
			Student: args.OptionalPositive(),
			Course:  args.OptionalPositive(),
			Type:    args.Parser(grades.ParseType),
			Page:    args.OptionalPositive(),
		},
		flarc.Args{},
		common.NewTask(ListTask()),
	)
}

// semester returns flag if it is set, otherwise the default of smsenv.
func semester(flag string, smsEnv env.SmsEnv) string {
	if flag != "" {
		return flag
	}
	return smsEnv.Semester
}

func ListTask() common.Task[ListFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		smsEnv env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[ListFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		return common.ShowPage(ctx, cl.Stdout(), Table, grades.Filter{
			Student:   int(flags.Student.Value()),
			Course:    int(flags.Course.Value()),
			Semester:  semester(flags.Semester, smsEnv),
			GradeType: flags.Type.Value(),
			Search:    flags.Search,
			Page:      int(flags.Page.Value()),
		}, client.ListGrades)
	}
}
