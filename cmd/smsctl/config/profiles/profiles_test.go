package profiles_test

import (
	_ "embed"
	"encoding/base64"
	"errors"
	"path/filepath"
	"testing"

	prof "github.com/opst/smsctl/cmd/smsctl/config/profiles"
	"github.com/opst/smsctl/pkg/utils/try"
)

//go:embed testdata/ca.crt
var cacertfile []byte

func TestUnmarshall(t *testing.T) {
	conf, err := prof.Unmarshall([]byte(`
campus:
    apiRoot: "https://sms.example.com/api/v1"
    cert:
        ca: BASE64_ENCODED_CERT
`))
	if err != nil {
		t.Fatalf("failed to unmarshal.: %+v", err)
	}
	p, ok := conf["campus"]
	if !ok {
		t.Fatal("config has not profile")
	}

	if expected := "https://sms.example.com/api/v1"; p.ApiRoot != expected {
		t.Errorf("ApiRoot unmatch. (actual, expected) = (%s, %s)", p.ApiRoot, expected)
	}
	if expected := "BASE64_ENCODED_CERT"; p.Cert.CA != expected {
		t.Errorf("Cert.CA unmatch. (actual, expected) = (%s, %s)", p.Cert.CA, expected)
	}
}

func TestVerify(t *testing.T) {
	theory := func(p *prof.SmsProfile, expected error) func(*testing.T) {
		return func(t *testing.T) {
			err := p.Verify()
			if expected == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, expected) {
				t.Errorf("unexpected error: (actual, expected) = (%v, %v)", err, expected)
			}
		}
	}

	t.Run("all value is valid, it is valid", theory(
		&prof.SmsProfile{
			ApiRoot: "https://sms.example.com/api/v1",
			Cert:    prof.Cert{CA: base64.StdEncoding.EncodeToString(cacertfile)},
		},
		nil,
	))
	t.Run("no CA is ok", theory(
		&prof.SmsProfile{ApiRoot: "http://localhost:8000/api/v1"},
		nil,
	))
	t.Run("when apiRoot is broken, it is not valid", theory(
		&prof.SmsProfile{ApiRoot: "not url"},
		prof.ErrProfileInvalid,
	))
	t.Run("when apiRoot is not http, it is not valid", theory(
		&prof.SmsProfile{ApiRoot: "ftp://sms.example.com"},
		prof.ErrProfileInvalid,
	))
	t.Run("when CA is not PEM, it is not valid", theory(
		&prof.SmsProfile{
			ApiRoot: "https://sms.example.com/api/v1",
			Cert:    prof.Cert{CA: base64.StdEncoding.EncodeToString([]byte("not a cert"))},
		},
		prof.ErrProfileInvalid,
	))
	t.Run("nil profile is not valid", theory(nil, prof.ErrProfileInvalid))
}

func TestProfileStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".smsctl", "profile")

	if _, err := prof.LoadProfileStore(path); !errors.Is(err, prof.ErrProfileStoreNotFound) {
		t.Fatalf("unexpected error for missing store: %v", err)
	}

	store := prof.ProfileStore{
		"campus": {ApiRoot: "https://sms.example.com/api/v1"},
		"local":  {ApiRoot: "http://localhost:8000/api/v1"},
	}
	if err := store.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded := try.To(prof.LoadProfileStore(path)).OrFatal(t)
	if len(loaded) != 2 {
		t.Fatalf("unexpected profiles: %+v", loaded)
	}
	for name, p := range store {
		if l, ok := loaded[name]; !ok || l.ApiRoot != p.ApiRoot {
			t.Errorf("profile %s is not restored: %+v", name, l)
		}
	}

	delete(loaded, "campus")
	if err := loaded.Save(path); err != nil {
		t.Fatal(err)
	}
	if reloaded := try.To(prof.LoadProfileStore(path)).OrFatal(t); len(reloaded) != 1 {
		t.Errorf("removed profile is left: %+v", reloaded)
	}
}
