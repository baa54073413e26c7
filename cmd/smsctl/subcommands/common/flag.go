package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/opst/smsctl/cmd/smsctl/config/session"
)

const (
	EnvProfile      = "SMSCTL_PROFILE"
	EnvProfileStore = "SMSCTL_PROFILE_STORE"
	EnvSession      = "SMSCTL_SESSION"
	EnvSmsEnv       = "SMSCTL_ENV"
)

// ProfileMarker is the file which tells the profile to be used in its directory and descendants.
const ProfileMarker = ".smsprofile"

type CommonFlags struct {
	Profile      string `flag:"profile" help:"sms profile name to use"`
	ProfileStore string `flag:"profile-store" help:"path to sms profile store file"`
	Session      string `flag:"session" help:"path to session file. default is per profile, in ~/.smsctl/sessions"`
	Env          string `flag:"env" help:"path to smsenv file"`
}

// SessionPath is the session file for the flags. Session wins if it is set.
func (cf CommonFlags) SessionPath(home string) string {
	if cf.Session != "" {
		return cf.Session
	}
	return session.DefaultPath(home, cf.Profile)
}

type commonFlagDetection struct {
	home   string
	getenv func(string) string
}

type CommonFlagDetectionOption func(*commonFlagDetection) *commonFlagDetection

func WithHome(home string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.home = home
		return opt
	}
}

// WithGetenv replaces the source of environment variables. Default is os.Getenv.
func WithGetenv(getenv func(string) string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.getenv = getenv
		return opt
	}
}

// Flags detects default values of CommonFlags.
//
// Profile is the first line of ".smsprofile" file found in from or its ancestors,
// and env is "smsenv" file found in the same way.
// When they are not found, profile is the absolute path of from,
// and env is "smsenv" in from.
//
// SMSCTL_PROFILE, SMSCTL_PROFILE_STORE, SMSCTL_SESSION and SMSCTL_ENV
// overwrite the detected values.
func Flags(from string, opt ...CommonFlagDetectionOption) (CommonFlags, error) {
	detparam := commonFlagDetection{
		home:   "",
		getenv: os.Getenv,
	}
	for _, o := range opt {
		detparam = *o(&detparam)
	}

	home := detparam.home
	if home == "" {
		_home, err := os.UserHomeDir()
		if err != nil {
			_home = ""
		}
		home = _home
	}

	if _from, err := filepath.Abs(from); err == nil {
		from = _from
	}

	profile := from

	profileFound := false
	envFound := false
	env := filepath.Join(from, "smsenv")
	for searchpath := from; ; {
		if !profileFound {
			candidate := filepath.Join(searchpath, ProfileMarker)
			if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
				_profile, err := os.ReadFile(candidate)
				if err != nil {
					return CommonFlags{}, err
				}
				profileFound = true
				if p := strings.Split(string(_profile), "\n"); 0 < len(p) {
					profile = strings.TrimSpace(p[0])
				}
			}
		}
		if !envFound {
			candidate := filepath.Join(searchpath, "smsenv")
			if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
				envFound = true
				env = candidate
			}
		}

		if profileFound && envFound {
			break
		}

		next := filepath.Dir(searchpath)
		if next == searchpath {
			break
		}
		searchpath = next
	}

	cf := CommonFlags{
		Profile:      profile,
		ProfileStore: filepath.Join(home, ".smsctl", "profile"),
		Env:          env,
	}

	for name, dest := range map[string]*string{
		EnvProfile:      &cf.Profile,
		EnvProfileStore: &cf.ProfileStore,
		EnvSession:      &cf.Session,
		EnvSmsEnv:       &cf.Env,
	} {
		if v := detparam.getenv(name); v != "" {
			*dest = v
		}
	}

	return cf, nil
}
