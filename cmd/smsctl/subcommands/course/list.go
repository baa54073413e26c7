package course

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/table"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/youta-t/flarc"
)

var Table = table.Table[courses.Summary]{
	Columns: []table.Column[courses.Summary]{
		{Key: "id", Header: "ID"},
		{Key: "course_code", Header: "CODE"},
		{Key: "name", Header: "NAME"},
		{Key: "credits", Header: "CREDITS"},
		{Key: "instructor", Header: "INSTRUCTOR"},
	},
	Placeholder: "no courses",
}

type ListFlags struct {
	Search string                   `flag:"search" alias:"s" help:"find courses whose code, name or instructor contains this text"`
	Page   *args.Optional[args.Int] `flag:"page" alias:"p" metavar:"N" help:"page number to show. default is the first page"`
}

func NewList() (flarc.Command, error) {
	return flarc.NewCommand(
		"List courses.",
		ListFlags{
			Search: "",
			Page:   args.OptionalPositive(),
		},
		flarc.Args{},
		common.NewTask(ListTask()),
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
		return common.ShowPage(ctx, cl.Stdout(), Table, courses.Filter{
			Search: flags.Search,
			Page:   int(flags.Page.Value()),
		}, client.ListCourses)
	}
}
