package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path"

	"github.com/joho/godotenv"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/account"
	subanalytics "github.com/opst/smsctl/cmd/smsctl/subcommands/analytics"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	subcourse "github.com/opst/smsctl/cmd/smsctl/subcommands/course"
	subenrollment "github.com/opst/smsctl/cmd/smsctl/subcommands/enrollment"
	subgrade "github.com/opst/smsctl/cmd/smsctl/subcommands/grade"
	subinit "github.com/opst/smsctl/cmd/smsctl/subcommands/init"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/logger"
	substudent "github.com/opst/smsctl/cmd/smsctl/subcommands/student"
	subver "github.com/opst/smsctl/cmd/smsctl/subcommands/version"
	"github.com/opst/smsctl/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.For(os.Stderr, name)

	// SMSCTL_* in .env are defaults. Variables already set win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Fatalf("failed to load .env: %s", err)
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	login := try.To(account.NewLogin()).OrFatal(logger)
	logout := try.To(account.NewLogout()).OrFatal(logger)
	status := try.To(account.NewStatus()).OrFatal(logger)
	whoami := try.To(account.NewWhoami()).OrFatal(logger)
	register := try.To(account.NewRegister()).OrFatal(logger)
	student := try.To(substudent.New()).OrFatal(logger)
	course := try.To(subcourse.New()).OrFatal(logger)
	enrollment := try.To(subenrollment.New()).OrFatal(logger)
	grade := try.To(subgrade.New()).OrFatal(logger)
	analytics := try.To(subanalytics.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	smsctl := try.To(
		flarc.NewCommandGroup(
			"Student Management System commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("login", login),
			flarc.WithSubcommand("logout", logout),
			flarc.WithSubcommand("status", status),
			flarc.WithSubcommand("whoami", whoami),
			flarc.WithSubcommand("register", register),
			flarc.WithSubcommand("student", student),
			flarc.WithSubcommand("course", course),
			flarc.WithSubcommand("enrollment", enrollment),
			flarc.WithSubcommand("grade", grade),
			flarc.WithSubcommand("analytics", analytics),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, smsctl, flarc.WithHelp(true)))
}
