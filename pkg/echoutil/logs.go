package echoutil

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// HeaderRequestId is a header which clients put to correlate requests with logs.
const HeaderRequestId = "X-Request-Id"

// LogHandlerFunc logs each request and its response.
//
// A request without HeaderRequestId is given a new id.
// The id is sent back in the response header.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		reqid := req.Header.Get(HeaderRequestId)
		if reqid == "" {
			reqid = uuid.NewString()
		}
		c.Response().Header().Set(HeaderRequestId, reqid)

		begin := time.Now()
		c.Logger().Infof("< [%s] %s %s", reqid, req.Method, req.URL)

		err := next(c)

		c.Logger().Infof(
			"> [%s] %d for %s %s in %v (error = %v)",
			reqid, c.Response().Status, req.Method, req.URL, time.Since(begin), err,
		)
		return err
	}
}

// SetLevel sets log level of e.
//
// loglevel is one of debug, info, warn, error or off. Empty means warn.
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}

// LoggingErrorHandler responds err in the default manner of echo, then logs it.
func LoggingErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		e.DefaultHTTPErrorHandler(err, c)
		e.Logger.Error(err)
	}
}
