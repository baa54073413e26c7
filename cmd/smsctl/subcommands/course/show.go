package course

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/youta-t/flarc"
)

func NewShow() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show a course with the number of active students.",
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the course"},
		},
		common.NewTask(ShowTask()),
	)
}

func ShowTask() common.Task[struct{}] {
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
		c, err := client.GetCourse(ctx, id)
		if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), c)
	}
}
