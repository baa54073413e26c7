package enrollment

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/youta-t/flarc"
)

type CreateFlags struct {
	Student *args.Optional[args.Int] `flag:"student" metavar:"ID" help:"id of the student to be enrolled. required"`
	Course  *args.Optional[args.Int] `flag:"course" metavar:"ID" help:"id of the course. required"`
}

func NewCreate() (flarc.Command, error) {
	return flarc.NewCommand(
		"Enroll a student in a course.",
		CreateFlags{
			Student: args.OptionalPositive(),
			Course:  args.OptionalPositive(),
		},
		flarc.Args{},
		common.NewTask(CreateTask()),
		flarc.WithDescription(`
Enroll a student in a course. New enrollments are active.

Example
-------

	{{ .Command }} --student 12 --course 3
`),
	)
}

func CreateTask() common.Task[CreateFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[CreateFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		if !flags.Student.IsSet() || !flags.Course.IsSet() {
			return fmt.Errorf("%w: both of --student and --course are required", flarc.ErrUsage)
		}

		form := screen.NewForm(
			client.CreateEnrollment, "failed to enroll the student",
			common.NonFieldErrors, "student_id", "course_id",
		)
		e, err := form.Submit(ctx, enrollments.Spec{
			StudentId: int(flags.Student.Value()),
			CourseId:  int(flags.Course.Value()),
		})
		if err != nil {
			return common.Submitted(err)
		}
		return common.WriteJSON(cl.Stdout(), e)
	}
}
