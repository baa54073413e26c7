package env

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SmsEnv is defaults for commands run in a working tree.
//
// It is read from a "smsenv" file found in the current directory or its ancestors.
type SmsEnv struct {
	// default semester for grade queries, like "2024-1"
	Semester string `yaml:"semester"`

	// default instructor for new courses
	Instructor string `yaml:"instructor"`
}

func New() *SmsEnv {
	return new(SmsEnv)
}

// LoadSmsEnv reads smsenv file. Missing file is handled as empty SmsEnv.
func LoadSmsEnv(filepath string) (*SmsEnv, error) {
	env := SmsEnv{}

	content, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return &env, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(content, &env); err != nil {
		return nil, err
	}

	return &env, nil
}
