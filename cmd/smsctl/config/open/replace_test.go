package open_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opst/smsctl/cmd/smsctl/config/open"
)

func TestReplace(t *testing.T) {
	t.Run("it creates a file with directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "file")
		if err := open.Replace(path, []byte("hello")); err != nil {
			t.Fatal(err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "hello" {
			t.Errorf("unmatch content: %s", content)
		}
		if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
			t.Errorf("backup is left: %v", err)
		}
	})

	t.Run("it overwrites shorter content and tightens permission", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, []byte("long long content"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := open.Replace(path, []byte("short")); err != nil {
			t.Fatal(err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "short" {
			t.Errorf("unmatch content: %s", content)
		}

		if runtime.GOOS == "windows" {
			return
		}
		stat, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := stat.Mode().Perm(); perm != 0600 {
			t.Errorf("unexpected permission: %o", perm)
		}
	})
}

func TestWritePrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dir", "marker")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("previous content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := open.WritePrivate(path, []byte("new")); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "new" {
		t.Errorf("unmatch content: %s", content)
	}

	if runtime.GOOS == "windows" {
		return
	}
	stat, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := stat.Mode().Perm(); perm != 0600 {
		t.Errorf("unexpected permission: %o", perm)
	}
}
