package course

import (
	"context"
	"fmt"
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

type UpdateFlags struct {
	CourseCode  string                   `flag:"code"`
	Name        string                   `flag:"name"`
	Credits     *args.Optional[args.Int] `flag:"credits"`
	Instructor  string                   `flag:"instructor"`
	Description string                   `flag:"description"`
}

func NewUpdate() (flarc.Command, error) {
	return flarc.NewCommand(
		"Change fields of a course.",
		UpdateFlags{Credits: args.OptionalPositive()},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the course to be changed"},
		},
		common.NewTask(UpdateTask()),
		flarc.WithDescription(`
Change fields of a course. Only passed flags are sent, and others are kept.
`),
	)
}

func UpdateTask() common.Task[UpdateFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[UpdateFlags],
		_ []any,
	) error {
		id, err := common.ParseId(ARG_ID, cl.Args()[ARG_ID][0])
		if err != nil {
			return err
		}
		flags := cl.Flags()
		change := courses.Change{
			CourseCode:  pointer.NonZero(flags.CourseCode),
			Name:        pointer.NonZero(flags.Name),
			Instructor:  pointer.NonZero(flags.Instructor),
			Description: pointer.NonZero(flags.Description),
		}
		if p := flags.Credits.Ptr(); p != nil {
			credits := int(*p)
			change.Credits = &credits
		}
		if change.IsEmpty() {
			return fmt.Errorf("%w: nothing to be changed. pass one or more flags", flarc.ErrUsage)
		}

		form := screen.NewForm(
			func(ctx context.Context, c courses.Change) (courses.Detail, error) {
				return client.UpdateCourse(ctx, id, c)
			},
			"failed to update the course",
			"course_code", "name",
		)
		c, err := form.Submit(ctx, change)
		if err != nil {
			return common.Submitted(err)
		}
		return common.WriteJSON(cl.Stdout(), c)
	}
}
