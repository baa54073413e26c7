package course

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/opst/smsctl/pkg/utils/pointer"
	"github.com/youta-t/flarc"
)

type CreateFlags struct {
	CourseCode  string                   `flag:"code" metavar:"CS101" help:"course code. required"`
	Name        string                   `flag:"name" help:"required"`
	Credits     *args.Optional[args.Int] `flag:"credits" help:"default is 3"`
	Instructor  string                   `flag:"instructor" help:"default is \"instructor\" in smsenv"`
	Description string                   `flag:"description"`
}

const defaultCredits = 3

func NewCreate() (flarc.Command, error) {
	return flarc.NewCommand(
		"Open a new course.",
		CreateFlags{Credits: args.OptionalPositive()},
		flarc.Args{},
		common.NewTask(CreateTask()),
	)
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
		credits := int(pointer.Or(flags.Credits.Ptr(), defaultCredits))
		instructor := flags.Instructor
		if instructor == "" {
			instructor = smsEnv.Instructor
		}

		form := screen.NewForm(
			client.CreateCourse, "failed to create the course",
			"course_code", "name",
		)
		c, err := form.Submit(ctx, courses.Spec{
			CourseCode:  flags.CourseCode,
			Name:        flags.Name,
			Credits:     credits,
			Instructor:  pointer.NonZero(instructor),
			Description: pointer.NonZero(flags.Description),
		})
		if err != nil {
			return common.Submitted(err)
		}
		return common.WriteJSON(cl.Stdout(), c)
	}
}
