package course

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/table"
	"github.com/youta-t/flarc"
)

// StudentsTable is columns of active enrollments of a course.
var StudentsTable = table.Table[enrollments.Detail]{
	Columns: []table.Column[enrollments.Detail]{
		{Key: "id", Header: "ENROLLMENT"},
		{Key: "student.student_id", Header: "STUDENT ID"},
		{Key: "student.full_name", Header: "NAME"},
		{Key: "student.email", Header: "EMAIL"},
		{
			Key: "enrolled_at", Header: "ENROLLED AT",
			Render: func(d enrollments.Detail) string { return d.EnrolledAt.Format("2006-01-02") },
		},
	},
	Placeholder: "no students",
}

func NewStudents() (flarc.Command, error) {
	return flarc.NewCommand(
		"List students actively enrolled in a course.",
		struct{}{},
		flarc.Args{
			{Name: ARG_ID, Required: true, Help: "id of the course"},
		},
		common.NewTask(StudentsTask()),
	)
}

func StudentsTask() common.Task[struct{}] {
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
		enrolled, err := client.GetCourseStudents(ctx, id)
		if err != nil {
			return err
		}
		return StudentsTable.Write(cl.Stdout(), enrolled)
	}
}
