package testutils

import (
	"os"
	"path/filepath"
	"testing"

	prof "github.com/opst/smsctl/cmd/smsctl/config/profiles"
	"gopkg.in/yaml.v3"
)

// create profile store file for test.
//
// the created file is removed after testcase automaticaly.
//
// args:
//   - *testing.T
//   - name: name of the profile
//   - profile: profile to be created for test
//
// returns:
//   - string: filepath to profile store file. if creating is failed, it will be `""`
//   - error: error caused during creating profile file. if creating is not failed, it will be `nil`.
func TempProfile(t *testing.T, name string, profile *prof.SmsProfile) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := yaml.NewEncoder(f).Encode(prof.ProfileStore{name: profile}); err != nil {
		return "", err
	}

	return path, nil
}
