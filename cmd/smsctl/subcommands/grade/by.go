package grade

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/youta-t/flarc"
)

// Query is a request of grades of a student or a course.
type Query func(ctx context.Context, client rest.SmsClient, id int) ([]grades.Summary, error)

func ByStudent(ctx context.Context, client rest.SmsClient, id int) ([]grades.Summary, error) {
	return client.GetGradesByStudent(ctx, id)
}

func ByCourse(ctx context.Context, client rest.SmsClient, id int) ([]grades.Summary, error) {
	return client.GetGradesByCourse(ctx, id)
}

func NewByStudent() (flarc.Command, error) {
	return flarc.NewCommand(
		"List all grades of a student.",
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the student"},
		},
		common.NewTask(ByTask(ByStudent)),
	)
}

func NewByCourse() (flarc.Command, error) {
	return flarc.NewCommand(
		"List all grades in a course.",
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the course"},
		},
		common.NewTask(ByTask(ByCourse)),
	)
}

func ByTask(query Query) common.Task[struct{}] {
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
		found, err := query(ctx, client, id)
		if err != nil {
			return err
		}
		return Table.Write(cl.Stdout(), found)
	}
}
