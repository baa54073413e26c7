package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apierr "github.com/opst/smsctl/pkg/api/types/errors"
	"github.com/opst/smsctl/pkg/schema"
)

// unmarshal http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which response should be.
//   - messageFor: summary of error message for HTTP status code range.
//
// return:
//
//	error if...
//	- status code is not 2xx: *ApiError
//	- response body is not shaped of v, or violates its schema: ErrMalformedResponse
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	if err := decodeJsonResponse(resp, v, messageFor); err != nil {
		return err
	}
	return checkSchema(v, requestLine(resp))
}

// decodeJsonResponse is unmarshalJsonResponse without schema check.
func decodeJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	if err := errorOf(resp, messageFor); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf(
			"%w: %s (status code = %d): %w",
			ErrMalformedResponse, requestLine(resp), resp.StatusCode, err,
		)
	}
	return nil
}

func checkSchema(v any, where string) error {
	if err := schema.Check(v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, where, err)
	}
	return nil
}

func requestLine(resp *http.Response) string {
	if resp.Request == nil {
		return "(unknown request)"
	}
	return resp.Request.Method + " " + resp.Request.URL.String()
}

// check response status. Body is discarded on success.
func unmarshalResponseDiscardingPayload(resp *http.Response, messageFor MessageFor) error {
	if err := errorOf(resp, messageFor); err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func errorOf(resp *http.Response, messageFor MessageFor) error {
	if StatusCodeRangeOf(resp.StatusCode) == Status2xx {
		return nil
	}

	e := &ApiError{
		Status:  resp.StatusCode,
		Summary: messageFor.of(resp.StatusCode),
		Payload: apierr.Parse(resp.Body),
	}
	if req := resp.Request; req != nil {
		e.Method = req.Method
		e.URL = req.URL.String()
		e.RequestId = req.Header.Get(HeaderRequestId)
	}
	return e
}
