// Package session keeps the token pair of the signed-in user.
//
// Only two values are stored: the access token and the refresh token.
// A Store is passed explicitly to whatever needs it; there are no globals.
package session

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/opst/smsctl/cmd/smsctl/config/open"
	"gopkg.in/yaml.v3"
)

type Tokens struct {
	Access  string `yaml:"access_token"`
	Refresh string `yaml:"refresh_token"`
}

// HasAccess reports an access token is present. It does not check expiry.
func (t Tokens) HasAccess() bool {
	return t.Access != ""
}

type Store interface {
	// Get returns stored tokens. When nothing is stored, it returns empty Tokens without error.
	Get() (Tokens, error)

	// Set replaces stored tokens.
	Set(Tokens) error

	// Clear removes both tokens.
	Clear() error
}

// AccessToken returns a function reading the access token from the store on each call.
func AccessToken(s Store) func() (string, error) {
	return func() (string, error) {
		t, err := s.Get()
		if err != nil {
			return "", err
		}
		return t.Access, nil
	}
}

var ErrBrokenSession = errors.New("session file is broken")

// FileStore stores tokens in a YAML file accessible only by the current user.
//
// Every operation reads or writes the file, so processes sharing the file
// share the session.
type FileStore struct {
	path string
}

var _ Store = &FileStore{}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the path of session file for the profile:
// "<home>/.smsctl/sessions/<escaped profile name>".
func DefaultPath(home string, profile string) string {
	return filepath.Join(home, ".smsctl", "sessions", url.PathEscape(profile))
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Get() (Tokens, error) {
	content, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Tokens{}, nil
		}
		return Tokens{}, err
	}
	t := Tokens{}
	if err := yaml.Unmarshal(content, &t); err != nil {
		return Tokens{}, fmt.Errorf("%w (%s): %w", ErrBrokenSession, fs.path, err)
	}
	return t, nil
}

func (fs *FileStore) Set(t Tokens) error {
	content, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return open.Replace(fs.path, content)
}

func (fs *FileStore) Clear() error {
	for _, p := range []string{fs.path, fs.path + ".backup"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// MemoryStore keeps tokens only in memory.
type MemoryStore struct {
	mu     sync.Mutex
	tokens Tokens
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Get() (Tokens, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.tokens, nil
}

func (ms *MemoryStore) Set(t Tokens) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.tokens = t
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.tokens = Tokens{}
	return nil
}
