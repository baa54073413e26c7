package enrollment

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/youta-t/flarc"
)

func NewStatus() (flarc.Command, error) {
	return flarc.NewCommand(
		"Change the status of an enrollment.",
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the enrollment"},
			{Name: ARG_STATUS, Required: true, Help: "new status. one of active, completed or dropped"},
		},
		common.NewTask(StatusTask()),
		flarc.WithDescription(`
Change the status of an enrollment.

Whether the transition is allowed is judged by the server.
After the change, enrollments of the same student are listed again.
`),
	)
}

func StatusTask() common.Task[struct{}] {
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
		status, err := enrollments.ParseStatus(cl.Args()[ARG_STATUS][0])
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}

		e, err := client.UpdateEnrollmentStatus(ctx, id, status)
		if err != nil {
			return err
		}
		logger.Printf("enrollment %d is %s", e.Id, e.Status)

		return common.ShowPage(
			ctx, cl.Stdout(), Table,
			enrollments.Filter{Student: e.Student.Id}, client.ListEnrollments,
		)
	}
}
