package student

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/youta-t/flarc"
)

func NewRm() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete a student.",
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the student to be deleted"},
		},
		common.NewTask(RmTask()),
		flarc.WithDescription(`
Delete a student. Enrollments and grades of the student are also deleted by the server.
`),
	)
}

func RmTask() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		id, err := common.ParseId(ARG_ID, cl.Args()[ARG_ID][0])
		if err != nil {
			return err
		}
		if err := client.DeleteStudent(ctx, id); err != nil {
			return err
		}
		logger.Printf("student %d is deleted", id)
		return nil
	}
}
