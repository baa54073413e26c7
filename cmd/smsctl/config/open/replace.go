package open

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hectane/go-acl"
)

var ErrCannotCreate = errors.New("cannot create file")
var ErrCannotUpdate = errors.New("cannot update file")

const privateMode = os.FileMode(0600)

// WritePrivate writes content into a new file at path, accessible only by the current user.
//
// An existing file is truncated. Parent directories are created with mode 0700 if missing.
func WritePrivate(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0700)); err != nil {
		return err
	}
	f, err := createPrivate(path)
	if err != nil {
		return fmt.Errorf("%w at %s: %w", ErrCannotCreate, path, err)
	}
	defer f.Close()
	if err := acl.Chmod(path, privateMode); err != nil {
		return err
	}
	_, err = f.Write(content)
	return err
}

// Replace overwrites content of the file at path, keeping it accessible only by
// the current user.
//
// The previous content is copied to "<path>.backup" while writing, and the
// backup is left when writing new content is failed.
// Parent directories are created with mode 0700 if missing.
func Replace(path string, content []byte) error {
	saving := false

	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0700)); err != nil {
		return err
	}

	bkpath := path + ".backup"
	bk, err := createPrivate(bkpath)
	if err != nil {
		return err
	}
	defer func() {
		if !saving {
			os.Remove(bkpath)
		}
	}()
	defer bk.Close()

	f, err := os.OpenFile(path, os.O_RDWR, privateMode)
	if err == nil {
		// existing file may have loose permissions.
		if err := acl.Chmod(path, privateMode); err != nil {
			f.Close()
			return err
		}
	} else if os.IsPermission(err) {
		return fmt.Errorf("%w, because no permission to write file at %s", ErrCannotUpdate, path)
	} else if os.IsNotExist(err) {
		f_, err_ := createPrivate(path)
		if err_ != nil {
			return fmt.Errorf("%w at %s: %w", ErrCannotCreate, path, err_)
		}
		f = f_
	} else {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(bk, f); err != nil {
		return err
	}

	saving = true
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		return err
	}
	saving = false
	return nil
}
