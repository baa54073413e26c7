package init

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/opst/smsctl/cmd/smsctl/config/open"
	prof "github.com/opst/smsctl/cmd/smsctl/config/profiles"
	smserr "github.com/opst/smsctl/cmd/smsctl/errors"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/utils"
	"github.com/youta-t/flarc"
)

const ARG_PROFILE_FILE = "PROFILE_FILE"

type Option = func(*config) *config

type config struct {
	dir string
}

// WithDir sets the directory where ProfileMarker is written. Default is the current directory.
func WithDir(dir string) Option {
	return func(c *config) *config {
		c.dir = dir
		return c
	}
}

func New(options ...Option) (flarc.Command, error) {
	return flarc.NewCommand(
		"Register a connection profile and use it in this directory.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_PROFILE_FILE, Required: true,
				Help: "filepath to a profile, which tells where the Student Management System API is.",
			},
		},
		common.NewTaskWithCommonFlag(Task(options...)),
		flarc.WithDescription(`
Register a new profile into your profile store.

"profile" is a YAML file like:

    apiRoot: http://localhost:8000/api/v1
    cert:
        ca: <base64 encoded PEM, optional>

{{ .Command }} saves the profile into your profile store under the name
given by "--profile" (default: the current directory), and writes the name
into "` + common.ProfileMarker + `" in the current directory.
`),
	)
}

func Task(options ...Option) common.TaskWithCommonFlag[struct{}] {
	conf := utils.ApplyAll(&config{dir: "."}, options...)

	return func(
		ctx context.Context,
		logger *log.Logger,
		cf common.CommonFlags,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		profFile := cl.Args()[ARG_PROFILE_FILE][0]

		store, err := prof.LoadProfileStore(cf.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			// ok.
			store = prof.ProfileStore{}
		} else if err != nil {
			return fmt.Errorf("failed to load profile store (%s): %w", cf.ProfileStore, err)
		}

		newProf, err := prof.LoadProfile(profFile)
		if err != nil {
			return smserr.NewCuiError(
				fmt.Sprintf("cannot read profile file (%s)", profFile),
				smserr.WithCause(err),
			)
		}
		if err := newProf.Verify(); err != nil {
			return smserr.NewCuiError(
				fmt.Sprintf("%s is not a valid profile", profFile),
				smserr.WithCause(err),
				smserr.WithAdvice("apiRoot should be an http(s) URL and cert.ca should be a base64 encoded PEM."),
			)
		}

		store[cf.Profile] = newProf
		if err := store.Save(cf.ProfileStore); err != nil {
			return fmt.Errorf("failed to save profile store (%s): %w", cf.ProfileStore, err)
		}
		logger.Printf("profile %s is saved to %s", cf.Profile, cf.ProfileStore)

		marker := filepath.Join(conf.dir, common.ProfileMarker)
		if err := open.WritePrivate(marker, []byte(cf.Profile)); err != nil {
			return fmt.Errorf("failed to write %s: %w", marker, err)
		}
		return nil
	}
}
