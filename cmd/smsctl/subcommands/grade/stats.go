package grade

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/table"
	"github.com/opst/smsctl/pkg/utils/args"
	"github.com/youta-t/flarc"
)

var StatsTable = table.Table[grades.CourseStatistics]{
	Columns: []table.Column[grades.CourseStatistics]{
		{Key: "course_code", Header: "CODE"},
		{Key: "course_name", Header: "COURSE"},
		{Key: "average_score", Header: "AVERAGE"},
		{Key: "highest_score", Header: "HIGHEST"},
		{Key: "lowest_score", Header: "LOWEST"},
		{Key: "total_students", Header: "STUDENTS"},
	},
	Placeholder: "no grades",
}

type StatsFlags struct {
	Course   *args.Optional[args.Int] `flag:"course" metavar:"ID" help:"statistics of the course only"`
	Semester string                   `flag:"semester" metavar:"2024-1" help:"grades in the semester. default is \"semester\" in smsenv"`
}

func NewStats() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show statistics of grades per course.",
		StatsFlags{Course: args.OptionalPositive()},
		flarc.Args{},
		common.NewTask(StatsTask()),
	)
}

func StatsTask() common.Task[StatsFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		smsEnv env.SmsEnv,
		client rest.SmsClient,
		cl flarc.Commandline[StatsFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		stats, err := client.GetGradeStatistics(ctx, grades.StatisticsFilter{
			Course:   int(flags.Course.Value()),
			Semester: semester(flags.Semester, smsEnv),
		})
		if err != nil {
			return err
		}

		if stats.TotalGrades != nil {
			average := "-"
			if stats.AverageScore != nil {
				average = fmt.Sprintf("%.2f", *stats.AverageScore)
			}
			_, err := fmt.Fprintf(cl.Stdout(), "total grades: %d\naverage score: %s\n", *stats.TotalGrades, average)
			return err
		}
		return StatsTable.Write(cl.Stdout(), stats.Courses)
	}
}
