package student

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/utils/pointer"
	"github.com/youta-t/flarc"
)

// UpdateFlags are fields to be changed. Flags not passed are left as they are.
type UpdateFlags struct {
	StudentId   string `flag:"student-id"`
	FirstName   string `flag:"first-name"`
	LastName    string `flag:"last-name"`
	Email       string `flag:"email"`
	DateOfBirth string `flag:"date-of-birth" metavar:"YYYY-MM-DD"`
	Phone       string `flag:"phone"`
	Address     string `flag:"address"`
}

func NewUpdate() (flarc.Command, error) {
	return flarc.NewCommand(
		"Change fields of a student.",
		UpdateFlags{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the student to be changed"},
		},
		common.NewTask(UpdateTask()),
		flarc.WithDescription(`
Change fields of a student. Only passed flags are sent, and others are kept.

Example
-------

	{{ .Command }} --phone 010-0000-0000 12
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
		change := students.Change{
			StudentId:   pointer.NonZero(flags.StudentId),
			FirstName:   pointer.NonZero(flags.FirstName),
			LastName:    pointer.NonZero(flags.LastName),
			Email:       pointer.NonZero(flags.Email),
			DateOfBirth: pointer.NonZero(flags.DateOfBirth),
			Phone:       pointer.NonZero(flags.Phone),
			Address:     pointer.NonZero(flags.Address),
		}
		if change.IsEmpty() {
			return fmt.Errorf("%w: nothing to be changed. pass one or more flags", flarc.ErrUsage)
		}

		form := screen.NewForm(
			func(ctx context.Context, c students.Change) (students.Detail, error) {
				return client.UpdateStudent(ctx, id, c)
			},
			"failed to update the student",
			"student_id", "email",
		)
		s, err := form.Submit(ctx, change)
		if err != nil {
			return common.Submitted(err)
		}
		return common.WriteJSON(cl.Stdout(), s)
	}
}
