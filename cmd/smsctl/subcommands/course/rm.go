package course

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
		"Delete a course.",
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the course to be deleted"},
		},
		common.NewTask(RmTask()),
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
		if err := client.DeleteCourse(ctx, id); err != nil {
			return err
		}
		logger.Printf("course %d is deleted", id)
		return nil
	}
}
