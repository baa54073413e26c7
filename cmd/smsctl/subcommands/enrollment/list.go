package enrollment

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/table"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/youta-t/flarc"
)

var Table = table.Table[enrollments.Detail]{
	Columns: []table.Column[enrollments.Detail]{
		{Key: "id", Header: "ID"},
		{Key: "student.full_name", Header: "STUDENT"},
		{Key: "course.course_code", Header: "COURSE"},
		{Key: "course.name", Header: "COURSE NAME"},
		{Key: "status", Header: "STATUS"},
		{
			Key: "enrolled_at", Header: "ENROLLED AT",
			Render: func(d enrollments.Detail) string { return d.EnrolledAt.Format("2006-01-02") },
		},
	},
	Placeholder: "no enrollments",
}

type ListFlags struct {
	Student *args.Optional[args.Int]           `flag:"student" metavar:"ID" help:"enrollments of the student"`
	Course  *args.Optional[args.Int]           `flag:"course" metavar:"ID" help:"enrollments in the course"`
	Status  *args.Optional[enrollments.Status] `flag:"status" metavar:"active|completed|dropped" help:"enrollments in the status"`
	Page    *args.Optional[args.Int]           `flag:"page" alias:"p" metavar:"N" help:"page number to show. default is the first page"`
}

func NewList() (flarc.Command, error) {
	return flarc.NewCommand(
		"List enrollments.",
		ListFlags{
			Student: args.OptionalPositive(),
			Course:  args.OptionalPositive(),
			Status:  args.Parser(enrollments.ParseStatus),
			Page:    args.OptionalPositive(),
		},
		flarc.Args{},
		common.NewTask(ListTask()),
		flarc.WithDescription(`
List enrollments, newest first.

Example
-------

Finding dropped enrollments of the student 12:

	{{ .Command }} --student 12 --status dropped
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
		return common.ShowPage(ctx, cl.Stdout(), Table, enrollments.Filter{
			Student: int(flags.Student.Value()),
			Course:  int(flags.Course.Value()),
			Status:  flags.Status.Value(),
			Page:    int(flags.Page.Value()),
		}, client.ListEnrollments)
	}
}
