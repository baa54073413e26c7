package course

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
	students, err := NewStudents()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate courses.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("students", students),
	)
}
