package grade

import (
	"github.com/youta-t/flarc"
)

const ARG_ID = "ID"

func New() (flarc.Command, error) {
	list, err := NewList()
	if err != nil {
		return nil, err
	}
	show, err := NewShow()
	if err != nil {
		return nil, err
	}
	create, err := NewCreate()
	if err != nil {
		return nil, err
	}
	update, err := NewUpdate()
	if err != nil {
		return nil, err
	}
	rm, err := NewRm()
	if err != nil {
		return nil, err
	}
	byStudent, err := NewByStudent()
	if err != nil {
		return nil, err
	}
	byCourse, err := NewByCourse()
	if err != nil {
		return nil, err
	}
	stats, err := NewStats()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate grades.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("by-student", byStudent),
		flarc.WithSubcommand("by-course", byCourse),
		flarc.WithSubcommand("stats", stats),
	)
}
