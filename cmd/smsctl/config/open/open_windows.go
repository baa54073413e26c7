//go:build windows

package open

import (
	"os"

	winacl "github.com/hectane/go-acl"
)

// createPrivate opens the file at path as empty, creating it if missing.
//
// Mode given to OpenFile is not effective on windows, so ACL is set before
// truncating.
func createPrivate(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, privateMode)
	if err != nil {
		return nil, err
	}
	if err := winacl.Chmod(path, privateMode); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Truncate(0); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
