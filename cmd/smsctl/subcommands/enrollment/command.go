package enrollment

import (
	"github.com/youta-t/flarc"
)

const (
	ARG_ID     = "ID"
	ARG_STATUS = "STATUS"
)

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
	status, err := NewStatus()
	if err != nil {
		return nil, err
	}
	rm, err := NewRm()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate enrollments of students in courses.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("status", status),
		flarc.WithSubcommand("rm", rm),
	)
}
