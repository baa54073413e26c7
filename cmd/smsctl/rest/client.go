package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	prof "github.com/opst/smsctl/cmd/smsctl/config/profiles"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	"github.com/opst/smsctl/pkg/api/types/analytics"
	"github.com/opst/smsctl/pkg/api/types/courses"
	"github.com/opst/smsctl/pkg/api/types/enrollments"
	"github.com/opst/smsctl/pkg/api/types/grades"
	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/api/types/students"
	"github.com/opst/smsctl/pkg/schema"
)

// HeaderRequestId is a header to correlate a request with server logs.
const HeaderRequestId = "X-Request-Id"

// SmsClient is typed access to the Student Management System API.
//
// Each method is a translation of an operation into a HTTP call and its response.
// Validation, scoring and consistency are left to the server.
type SmsClient interface {
	// ObtainToken exchanges username and password to a token pair.
	//
	// It is sent without bearer token.
	ObtainToken(ctx context.Context, cred accounts.Credentials) (accounts.TokenPair, error)

	// GetCurrentUser returns the authenticated user.
	//
	// When the token is absent or invalid, it returns *ApiError matching ErrUnauthorized.
	GetCurrentUser(ctx context.Context) (accounts.User, error)

	// Register creates a new user account. It is sent without bearer token.
	Register(ctx context.Context, reg accounts.Registration) (accounts.User, error)

	ListStudents(ctx context.Context, filter students.Filter) (paginated.Page[students.Summary], error)
	GetStudent(ctx context.Context, id int) (students.Detail, error)
	CreateStudent(ctx context.Context, spec students.Spec) (students.Detail, error)

	// UpdateStudent changes only given fields of the student.
	UpdateStudent(ctx context.Context, id int, change students.Change) (students.Detail, error)
	DeleteStudent(ctx context.Context, id int) error

	ListCourses(ctx context.Context, filter courses.Filter) (paginated.Page[courses.Summary], error)
	GetCourse(ctx context.Context, id int) (courses.Detail, error)
	CreateCourse(ctx context.Context, spec courses.Spec) (courses.Detail, error)
	UpdateCourse(ctx context.Context, id int, change courses.Change) (courses.Detail, error)
	DeleteCourse(ctx context.Context, id int) error

	// GetCourseStudents returns active enrollments of the course.
	GetCourseStudents(ctx context.Context, id int) ([]enrollments.Detail, error)

	ListEnrollments(ctx context.Context, filter enrollments.Filter) (paginated.Page[enrollments.Detail], error)
	GetEnrollment(ctx context.Context, id int) (enrollments.Detail, error)
	CreateEnrollment(ctx context.Context, spec enrollments.Spec) (enrollments.Detail, error)

	// UpdateEnrollmentStatus proposes a new status. Transitions are judged by the server.
	UpdateEnrollmentStatus(ctx context.Context, id int, status enrollments.Status) (enrollments.Detail, error)
	DeleteEnrollment(ctx context.Context, id int) error

	ListGrades(ctx context.Context, filter grades.Filter) (paginated.Page[grades.Summary], error)
	GetGrade(ctx context.Context, id int) (grades.Detail, error)
	CreateGrade(ctx context.Context, spec grades.Spec) (grades.Detail, error)
	UpdateGrade(ctx context.Context, id int, change grades.Change) (grades.Detail, error)
	DeleteGrade(ctx context.Context, id int) error
	GetGradesByStudent(ctx context.Context, studentId int) ([]grades.Summary, error)
	GetGradesByCourse(ctx context.Context, courseId int) ([]grades.Summary, error)
	GetGradeStatistics(ctx context.Context, filter grades.StatisticsFilter) (grades.Statistics, error)

	GetDashboard(ctx context.Context) (analytics.Dashboard, error)
	GetGradeDistribution(ctx context.Context, filter analytics.DistributionFilter) (analytics.Distribution, error)
	ListCourseAnalytics(ctx context.Context) ([]analytics.CourseAnalytics, error)
	ListStudentPerformances(ctx context.Context) ([]analytics.PerformanceSummary, error)
	GetStudentPerformance(ctx context.Context, studentId int) (analytics.PerformanceReport, error)
}

// TokenSource provides the bearer token for each request.
//
// Empty token means "not signed in", and no Authorization header is sent.
type TokenSource interface {
	AccessToken() (string, error)
}

type TokenSourceFunc func() (string, error)

func (f TokenSourceFunc) AccessToken() (string, error) {
	return f()
}

// Anonymous is a TokenSource which never provides token.
var Anonymous TokenSource = TokenSourceFunc(func() (string, error) { return "", nil })

type client struct {
	httpclient *http.Client
	api        string
	tokens     TokenSource
}

// create new client for SmsProfile
//
// # Args
//
// - *prof.SmsProfile
//
// - TokenSource: source of bearer token. If nil, requests are sent without token.
//
// # Return
//
// - SmsClient: created client
//
// - error: If given profile is invalid, ErrProfileInvalid is returned.
func NewClient(p *prof.SmsProfile, tokens TokenSource) (SmsClient, error) {
	if err := p.Verify(); err != nil {
		return nil, err
	}
	httpclient := new(http.Client)

	if p.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{p.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc
	}

	if tokens == nil {
		tokens = Anonymous
	}

	return &client{
		httpclient: httpclient,
		api:        strings.TrimSuffix(p.ApiRoot, "/"),
		tokens:     tokens,
	}, nil
}

// build URL with path. The URL always ends with "/".
func (c *client) apipath(path ...string) string {
	elems := make([]string, 0, len(path)+1)
	elems = append(elems, c.api)
	for _, p := range path {
		elems = append(elems, strings.Trim(p, "/"))
	}
	return strings.Join(elems, "/") + "/"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

type requestOption struct {
	anonymous bool
	unchecked bool
	query     url.Values
	body      any
}

type reqOption func(*requestOption) *requestOption

func withoutToken() reqOption {
	return func(ro *requestOption) *requestOption {
		ro.anonymous = true
		return ro
	}
}

// withoutSchemaCheck decodes the response without checking its schema.
//
// The caller is responsible for checking.
func withoutSchemaCheck() reqOption {
	return func(ro *requestOption) *requestOption {
		ro.unchecked = true
		return ro
	}
}

func withQuery(q url.Values) reqOption {
	return func(ro *requestOption) *requestOption {
		ro.query = q
		return ro
	}
}

// withBody sets JSON body. The body is checked with its schema before sending.
func withBody(body any) reqOption {
	return func(ro *requestOption) *requestOption {
		ro.body = body
		return ro
	}
}

func buildOption(options ...reqOption) *requestOption {
	ro := &requestOption{}
	for _, o := range options {
		ro = o(ro)
	}
	return ro
}

// send a request.
//
// It fails with *ApiError of status 0 when the request body is invalid
// or no response is received.
func (c *client) send(ctx context.Context, method string, path []string, ro *requestOption) (*http.Response, error) {
	u := c.apipath(path...)
	if len(ro.query) != 0 {
		u = u + "?" + ro.query.Encode()
	}
	requestId := uuid.NewString()

	var body io.Reader
	if ro.body != nil {
		if err := schema.Check(ro.body); err != nil {
			p, ok := schema.Fields(err)
			if !ok {
				return nil, err
			}
			return nil, &ApiError{
				Method:    method,
				URL:       u,
				RequestId: requestId,
				Payload:   p,
				Cause:     fmt.Errorf("%w: %w", ErrInvalidRequest, err),
			}
		}
		b, err := json.Marshal(ro.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestId, requestId)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !ro.anonymous {
		token, err := c.tokens.AccessToken()
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, &ApiError{
			Method:    method,
			URL:       u,
			RequestId: requestId,
			Cause:     fmt.Errorf("%w: %w", ErrTransport, err),
		}
	}
	return resp, nil
}

// call sends a request and decodes its JSON response into T.
func call[T any](
	ctx context.Context, c *client, method string, path []string, messageFor MessageFor, options ...reqOption,
) (T, error) {
	var zero T
	ro := buildOption(options...)
	resp, err := c.send(ctx, method, path, ro)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if ro.anonymous {
		messageFor = messageFor.anonymous()
	}
	unmarshal := unmarshalJsonResponse[T]
	if ro.unchecked {
		unmarshal = decodeJsonResponse[T]
	}
	ret := new(T)
	if err := unmarshal(resp, ret, messageFor); err != nil {
		return zero, err
	}
	return *ret, nil
}

// callDiscarding sends a request and checks only its status.
func callDiscarding(
	ctx context.Context, c *client, method string, path []string, messageFor MessageFor, options ...reqOption,
) error {
	ro := buildOption(options...)
	resp, err := c.send(ctx, method, path, ro)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if ro.anonymous {
		messageFor = messageFor.anonymous()
	}
	return unmarshalResponseDiscardingPayload(resp, messageFor)
}

// params builds query parameters. Zero values are not set.
type params url.Values

func newParams() params {
	return params(url.Values{})
}

func (q params) str(key string, value string) params {
	if value != "" {
		url.Values(q).Set(key, value)
	}
	return q
}

func (q params) num(key string, value int) params {
	if value != 0 {
		url.Values(q).Set(key, strconv.Itoa(value))
	}
	return q
}

func (q params) values() url.Values {
	return url.Values(q)
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
