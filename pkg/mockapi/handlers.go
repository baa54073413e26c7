package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
	"github.com/opst/smsctl/pkg/api/types/paginated"
	"github.com/opst/smsctl/pkg/schema"
)

// PageSize is the number of items in a page of list responses.
const PageSize = 20

func notFound() error {
	return echo.NewHTTPError(http.StatusNotFound, apierr.ForDetail("Not found."))
}

func badRequest(p apierr.Payload) error {
	return echo.NewHTTPError(http.StatusBadRequest, p)
}

// respond errors of Store as HTTP error.
func storeError(err error) error {
	if errors.Is(err, ErrMissing) {
		return notFound()
	}
	var inv *InvalidError
	if errors.As(err, &inv) {
		return badRequest(inv.Payload)
	}
	return err
}

// bind decodes JSON body and checks it against schema of T.
func bind[T any](c echo.Context) (T, error) {
	var v T
	req := c.Request()
	if ct := req.Header.Get(echo.HeaderContentType); !strings.HasPrefix(strings.ToLower(ct), echo.MIMEApplicationJSON) {
		return v, echo.NewHTTPError(
			http.StatusUnsupportedMediaType,
			apierr.ForDetail(fmt.Sprintf(`Unsupported media type "%s" in request.`, ct)),
		)
	}
	if err := json.NewDecoder(req.Body).Decode(&v); err != nil {
		return v, badRequest(apierr.ForDetail("JSON parse error - " + err.Error()))
	}
	if err := schema.Check(v); err != nil {
		if p, ok := schema.Fields(err); ok {
			return v, badRequest(p)
		}
		return v, err
	}
	return v, nil
}

func pathId(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, notFound()
	}
	return id, nil
}

// queryInt reads an optional integer query. Missing value is 0.
func queryInt(c echo.Context, key string) (int, error) {
	v := c.QueryParam(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest(apierr.ForFields(key, "Enter a whole number."))
	}
	return n, nil
}

// requiredInt reads a mandatory integer query.
func requiredInt(c echo.Context, key string) (int, error) {
	v := c.QueryParam(key)
	if v == "" {
		return 0, badRequest(apierr.ForFields("error", key+" is required"))
	}
	return queryInt(c, key)
}

// paginate cuts a page out of items by "page" query.
//
// Links to other pages keep the rest of query.
func paginate[T any](c echo.Context, items []T) (paginated.Page[T], error) {
	page := 1
	if p := c.QueryParam("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return paginated.Page[T]{}, echo.NewHTTPError(http.StatusNotFound, apierr.ForDetail("Invalid page."))
		}
		page = n
	}

	begin := (page - 1) * PageSize
	if len(items) <= begin && page != 1 {
		return paginated.Page[T]{}, echo.NewHTTPError(http.StatusNotFound, apierr.ForDetail("Invalid page."))
	}
	end := min(begin+PageSize, len(items))

	ret := paginated.Page[T]{Count: len(items), Results: []T{}}
	if begin < end {
		ret.Results = append(ret.Results, items[begin:end]...)
	}
	if end < len(items) {
		next := linkTo(c, page+1)
		ret.Next = &next
	}
	if 1 < page {
		prev := linkTo(c, page-1)
		ret.Previous = &prev
	}
	return ret, nil
}

// linkTo builds an absolute URL of the page. Link to the first page has no "page" query.
func linkTo(c echo.Context, page int) string {
	req := c.Request()
	q := url.Values{}
	for k, v := range req.URL.Query() {
		q[k] = v
	}
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{
		Scheme:   c.Scheme(),
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}
