package grade

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/opst/smsctl/pkg/utils/pointer"
	"github.com/youta-t/flarc"
)

type CreateFlags struct {
	Student  *args.Optional[args.Int]    `flag:"student" metavar:"ID" help:"id of the student. required"`
	Course   *args.Optional[args.Int]    `flag:"course" metavar:"ID" help:"id of the course. required"`
	Score    *args.Optional[args.Float]  `flag:"score" help:"required"`
	MaxScore *args.Optional[args.Float]  `flag:"max-score" help:"default is 100"`
	Type     *args.Optional[grades.Type] `flag:"type" metavar:"exam|quiz|assignment|project|midterm|final" help:"required"`
	Semester string                      `flag:"semester" metavar:"2024-1" help:"default is \"semester\" in smsenv"`
	Comments string                      `flag:"comments"`
}

func NewCreate() (flarc.Command, error) {
	return flarc.NewCommand(
		"Record a grade.",
		CreateFlags{
			Student:  args.OptionalPositive(),
			Course:   args.OptionalPositive(),
			Score:    args.OptionalFloat(),
			MaxScore: args.OptionalFloat(),
			Type:     args.Parser(grades.ParseType),
		},
		flarc.Args{},
		common.NewTask(CreateTask()),
		flarc.WithDescription(`
Record a grade of a student in a course.

Percentage and letter grade are computed by the server.

Example
-------

	{{ .Command }} --student 12 --course 3 --score 85 --type midterm --semester 2024-1
`),
	)
}

func decimal(f *args.Optional[args.Float]) *float64 {
	if !f.IsSet() {
		return nil
	}
	return pointer.Ref(float64(f.Value()))
}

func CreateTask() common.Task[CreateFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		smsEnv env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[CreateFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		if !flags.Student.IsSet() || !flags.Course.IsSet() {
			return fmt.Errorf("%w: both of --student and --course are required", flarc.ErrUsage)
		}

		form := screen.NewForm(
			client.CreateGrade, "failed to record the grade",
			"score", "max_score",
		)
		g, err := form.Submit(ctx, grades.Spec{
			Student:   int(flags.Student.Value()),
			Course:    int(flags.Course.Value()),
			Score:     decimal(flags.Score),
			MaxScore:  decimal(flags.MaxScore),
			GradeType: flags.Type.Value(),
			Semester:  semester(flags.Semester, smsEnv),
			Comments:  pointer.NonZero(flags.Comments),
		})
		if err != nil {
			return common.Submitted(err)
		}
		return common.WriteJSON(cl.Stdout(), g)
	}
}
