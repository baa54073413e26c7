package student

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/utils/pointer"
	"github.com/youta-t/flarc"
)

type CreateFlags struct {
	StudentId   string `flag:"student-id" metavar:"S2024001" help:"student number. required"`
	FirstName   string `flag:"first-name" help:"required"`
	LastName    string `flag:"last-name" help:"required"`
	Email       string `flag:"email" help:"required"`
	DateOfBirth string `flag:"date-of-birth" metavar:"YYYY-MM-DD"`
	Phone       string `flag:"phone"`
	Address     string `flag:"address"`
}

func NewCreate() (flarc.Command, error) {
	return flarc.NewCommand(
		"Register a new student.",
		CreateFlags{},
		flarc.Args{},
		common.NewTask(CreateTask()),
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
		form := screen.NewForm(
			client.CreateStudent, "failed to create the student",
			"student_id", "email",
		)
		s, err := form.Submit(ctx, students.Spec{
			StudentId:   flags.StudentId,
			FirstName:   flags.FirstName,
			LastName:    flags.LastName,
			Email:       flags.Email,
			DateOfBirth: pointer.NonZero(flags.DateOfBirth),
			Phone:       pointer.NonZero(flags.Phone),
			Address:     pointer.NonZero(flags.Address),
		})
		if err != nil {
			return common.Submitted(err)
		}
		return common.WriteJSON(cl.Stdout(), s)
	}
}
