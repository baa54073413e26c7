//go:build !windows

package open

import "os"

// createPrivate opens the file at path as empty, creating it if missing.
func createPrivate(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_RDWR, privateMode)
}
