// Package http builds echo.Context for tests of handlers and middlewares.
package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
)

type RequestOption func(req *http.Request) *http.Request

func WithHeader(key string, value string, values ...string) RequestOption {
	return func(req *http.Request) *http.Request {
		req.Header.Add(key, value)
		for _, v := range values {
			req.Header.Add(key, v)
		}
		return req
	}
}

// = WithHeader("Authorization", "Bearer " + token)
func WithBearer(token string) RequestOption {
	return WithHeader(echo.HeaderAuthorization, "Bearer "+token)
}

func newContext(e *echo.Echo, method string, target string, body io.Reader, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	for _, opt := range reqopts {
		req = opt(req)
	}
	resp := httptest.NewRecorder()

	ctx := e.NewContext(req, resp)
	return ctx, resp
}

func Get(e *echo.Echo, target string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(e, http.MethodGet, target, nil, reqopts...)
}

// Post builds a request with JSON of data as its body.
func Post(e *echo.Echo, target string, data any, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, nil, err
	}
	reqopts = append([]RequestOption{WithHeader(echo.HeaderContentType, echo.MIMEApplicationJSON)}, reqopts...)
	ctx, resp := newContext(e, http.MethodPost, target, bytes.NewReader(body), reqopts...)
	return ctx, resp, nil
}

func Delete(e *echo.Echo, target string, reqopts ...RequestOption) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(e, http.MethodDelete, target, nil, reqopts...)
}
