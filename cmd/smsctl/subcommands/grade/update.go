package grade

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/opst/smsctl/pkg/utils/pointer"
	"github.com/youta-t/flarc"
)

type UpdateFlags struct {
	Score    *args.Optional[args.Float]  `flag:"score"`
	MaxScore *args.Optional[args.Float]  `flag:"max-score"`
	Type     *args.Optional[grades.Type] `flag:"type" metavar:"exam|quiz|assignment|project|midterm|final"`
	Semester string                      `flag:"semester" metavar:"2024-1"`
	Comments string                      `flag:"comments"`
}

func NewUpdate() (flarc.Command, error) {
	return flarc.NewCommand(
		"Change a grade.",
		UpdateFlags{
			Score:    args.OptionalFloat(),
			MaxScore: args.OptionalFloat(),
			Type:     args.Parser(grades.ParseType),
		},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the grade to be changed"},
		},
		common.NewTask(UpdateTask()),
		flarc.WithDescription(`
Change a grade. Only passed flags are sent, and others are kept.
Percentage and letter grade are computed again by the server.
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
		change := grades.Change{
			Score:     decimal(flags.Score),
			MaxScore:  decimal(flags.MaxScore),
			GradeType: flags.Type.Ptr(),
			Semester:  pointer.NonZero(flags.Semester),
			Comments:  pointer.NonZero(flags.Comments),
		}
		if change.IsEmpty() {
			return fmt.Errorf("%w: nothing to be changed. pass one or more flags", flarc.ErrUsage)
		}

		form := screen.NewForm(
			func(ctx context.Context, c grades.Change) (grades.Detail, error) {
				return client.UpdateGrade(ctx, id, c)
			},
			"failed to update the grade",
			"score", "max_score",
		)
		g, err := form.Submit(ctx, change)
		if err != nil {
			return common.Submitted(err)
		}
		return common.WriteJSON(cl.Stdout(), g)
	}
}
