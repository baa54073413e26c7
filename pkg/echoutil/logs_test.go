package echoutil_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/opst/smsctl/pkg/echoutil"
)

func TestSetLevel(t *testing.T) {
	for given, expected := range map[string]log.Lvl{
		"debug":   log.DEBUG,
		"INFO":    log.INFO,
		"warn":    log.WARN,
		"":        log.WARN,
		"error":   log.ERROR,
		"off":     log.OFF,
		"verbose": log.WARN,
	} {
		t.Run("level "+given, func(t *testing.T) {
			e := echo.New()
			e.Logger.SetOutput(new(bytes.Buffer))
			echoutil.SetLevel(e, given)
			if actual := e.Logger.Level(); actual != expected {
				t.Errorf("level: actual = %v, expected = %v", actual, expected)
			}
		})
	}
}

func TestLogHandlerFunc(t *testing.T) {
	setup := func() (*echo.Echo, *bytes.Buffer) {
		buf := new(bytes.Buffer)
		e := echo.New()
		e.Logger.SetOutput(buf)
		echoutil.SetLevel(e, "info")
		e.Use(echoutil.LogHandlerFunc)
		e.GET("/ping/", func(c echo.Context) error {
			return c.String(http.StatusTeapot, "pong")
		})
		return e, buf
	}

	t.Run("request id given by client is logged and sent back", func(t *testing.T) {
		e, buf := setup()
		req := httptest.NewRequest(http.MethodGet, "/ping/", nil)
		req.Header.Set(echoutil.HeaderRequestId, "req-1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusTeapot {
			t.Errorf("status: actual = %d, expected = %d", rec.Code, http.StatusTeapot)
		}
		if got := rec.Header().Get(echoutil.HeaderRequestId); got != "req-1" {
			t.Errorf("request id in response: %q", got)
		}
		logs := buf.String()
		for _, want := range []string{"< [req-1] GET /ping/", "> [req-1] 418 for GET /ping/"} {
			if !strings.Contains(logs, want) {
				t.Errorf("log should contain %q, but:\n%s", want, logs)
			}
		}
	})

	t.Run("request without id is given a new one", func(t *testing.T) {
		e, buf := setup()
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/", nil))

		reqid := rec.Header().Get(echoutil.HeaderRequestId)
		if reqid == "" {
			t.Fatal("request id is not set")
		}
		if logs := buf.String(); !strings.Contains(logs, "["+reqid+"]") {
			t.Errorf("log should contain the id %q, but:\n%s", reqid, logs)
		}
	})
}
