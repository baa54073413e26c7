package student

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/table"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/youta-t/flarc"
)

// Table is columns of student lists.
var Table = table.Table[students.Summary]{
	Columns: []table.Column[students.Summary]{
		{Key: "id", Header: "ID"},
		{Key: "student_id", Header: "STUDENT ID"},
		{Key: "full_name", Header: "NAME"},
		{Key: "email", Header: "EMAIL"},
	},
	Placeholder: "no students",
}

type ListFlags struct {
	Search string                   `flag:"search" alias:"s" help:"find students whose id, name or email contains this text"`
	Page   *args.Optional[args.Int] `flag:"page" alias:"p" metavar:"N" help:"page number to show. default is the first page"`
}

func NewList() (flarc.Command, error) {
	return flarc.NewCommand(
		"List students.",
		ListFlags{
			Search: "",
			Page:   args.OptionalPositive(),
		},
		flarc.Args{},
		common.NewTask(ListTask()),
		flarc.WithDescription(`
List students, newest first, 20 per page.

Example
-------

	{{ .Command }} --search kim --page 2
`),
	)
}

func ListTask() common.Task[ListFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[ListFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		return common.ShowPage(ctx, cl.Stdout(), Table, students.Filter{
			Search: flags.Search,
			Page:   int(flags.Page.Value()),
		}, client.ListStudents)
	}
}
