package env_test

import (
	"testing"

	senv "github.com/opst/smsctl/cmd/smsctl/env"
)

func TestLoadSmsEnv(t *testing.T) {
	t.Run("read smsenv, and it should return defaults", func(t *testing.T) {
		result, err := senv.LoadSmsEnv("./testdata/smsenv_test.yaml")
		if err != nil {
			t.Fatalf("failed to parse smsenv: %v", err)
		}
		if result.Semester != "2024-1" {
			t.Errorf("unmatch semester: %s", result.Semester)
		}
		if result.Instructor != "Park" {
			t.Errorf("unmatch instructor: %s", result.Instructor)
		}
	})

	t.Run("when missing filepath given, empty SmsEnv should be created", func(t *testing.T) {
		env, err := senv.LoadSmsEnv("./testdata/not-exist.yaml")
		if err != nil {
			t.Errorf("unexpected error occured: %v", err)
		}
		if *env != (senv.SmsEnv{}) {
			t.Errorf("unexpected data: %+v", env)
		}
	})
}
