// Package mockapi is an in-memory server of the Student Management System API.
//
// It speaks the same paths, payloads and error shapes as the real server,
// and is used for local development and tests of clients.
package mockapi

import (
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/opst/smsctl/pkg/echoutil"
	"github.com/opst/smsctl/pkg/utils"
)

const DefaultRoot = "/api/v1"

type Option = func(*config) *config

type config struct {
	root     string
	loglevel string
}

// WithRoot sets a path prefix of API. Default is DefaultRoot.
func WithRoot(root string) Option {
	return func(c *config) *config {
		c.root = root
		return c
	}
}

// WithLogLevel sets log level of server (debug|info|warn|error|off).
func WithLogLevel(level string) Option {
	return func(c *config) *config {
		c.loglevel = level
		return c
	}
}

// New builds a server of API backed by st. Tokens are issued and verified by iss.
func New(st *Store, iss *Issuer, options ...Option) *echo.Echo {
	conf := utils.ApplyAll(&config{root: DefaultRoot, loglevel: "off"}, options...)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.AddTrailingSlash())

	echoutil.SetLevel(e, conf.loglevel)
	e.HTTPErrorHandler = echoutil.LoggingErrorHandler(e)
	e.Use(echoutil.LogHandlerFunc)

	root := "/" + strings.Trim(conf.root, "/")
	api := func(p string) string {
		return path.Join(root, p) + "/"
	}
	public := map[string]struct{}{
		api("auth/token"):         {},
		api("auth/token/refresh"): {},
	}
	g := e.Group("", Bearer(iss, func(c echo.Context) bool {
		if _, ok := public[c.Path()]; ok {
			return true
		}
		// registration is open, but listing users is not.
		return c.Path() == api("accounts/users") && c.Request().Method == "POST"
	}))

	g.POST(api("auth/token"), TokenObtainHandler(st, iss))
	g.POST(api("auth/token/refresh"), TokenRefreshHandler(st, iss))
	g.POST(api("accounts/users"), RegisterHandler(st))
	g.GET(api("accounts/users/me"), CurrentUserHandler(st))

	g.GET(api("students"), StudentListHandler(st))
	g.POST(api("students"), StudentCreateHandler(st))
	g.GET(api("students/:id"), StudentGetHandler(st))
	g.PATCH(api("students/:id"), StudentUpdateHandler(st))
	g.DELETE(api("students/:id"), StudentDeleteHandler(st))

	g.GET(api("courses"), CourseListHandler(st))
	g.POST(api("courses"), CourseCreateHandler(st))
	g.GET(api("courses/enrollments"), EnrollmentListHandler(st))
	g.POST(api("courses/enrollments"), EnrollmentCreateHandler(st))
	g.GET(api("courses/enrollments/:id"), EnrollmentGetHandler(st))
	g.PATCH(api("courses/enrollments/:id"), EnrollmentUpdateHandler(st))
	g.DELETE(api("courses/enrollments/:id"), EnrollmentDeleteHandler(st))
	g.GET(api("courses/:id"), CourseGetHandler(st))
	g.PATCH(api("courses/:id"), CourseUpdateHandler(st))
	g.DELETE(api("courses/:id"), CourseDeleteHandler(st))
	g.GET(api("courses/:id/students"), CourseStudentsHandler(st))

	g.GET(api("grades"), GradeListHandler(st))
	g.POST(api("grades"), GradeCreateHandler(st))
	g.GET(api("grades/by_student"), GradesByStudentHandler(st))
	g.GET(api("grades/by_course"), GradesByCourseHandler(st))
	g.GET(api("grades/statistics"), GradeStatisticsHandler(st))
	g.GET(api("grades/:id"), GradeGetHandler(st))
	g.PATCH(api("grades/:id"), GradeUpdateHandler(st))
	g.DELETE(api("grades/:id"), GradeDeleteHandler(st))

	g.GET(api("analytics/dashboard"), DashboardHandler(st))
	g.GET(api("analytics/grades/distribution"), GradeDistributionHandler(st))
	g.GET(api("analytics/courses"), CourseAnalyticsHandler(st))
	g.GET(api("analytics/students/performance"), StudentPerformanceHandler(st))

	return e
}
