package rest

import (
	"fmt"
	"net/http"
)

type StatusCodeRange int

func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "informational response"
	case Status2xx:
		return "success"
	case Status3xx:
		return "redirect"
	case Status4xx:
		return "client error"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown (%d)", sc)
	}
}

// StatusCodeRangeOf classifies status code. 0 (no response) is StatusUnknown.
func StatusCodeRangeOf(code int) StatusCodeRange {
	switch {
	case code <= 0:
		return StatusUnknown
	case code < 200:
		return Status1xx
	case code < 300:
		return Status2xx
	case code < 400:
		return Status3xx
	case code < 500:
		return Status4xx
	case code < 600:
		return Status5xx
	}
	return StatusUnknown
}

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

// MessageFor is summaries of errors for each range of status code.
type MessageFor map[StatusCodeRange]string

// statusAnonymous marks MessageFor of requests sent without token.
const statusAnonymous StatusCodeRange = -1

func (mf MessageFor) anonymous() MessageFor {
	ret := MessageFor{statusAnonymous: ""}
	for k, v := range mf {
		ret[k] = v
	}
	return ret
}

// summary for the status.
//
// 401 and 403 of authenticated requests have fixed summaries.
func (mf MessageFor) of(status int) string {
	if _, anon := mf[statusAnonymous]; !anon {
		switch status {
		case http.StatusUnauthorized:
			return "not authenticated. Run `smsctl login` and try again"
		case http.StatusForbidden:
			return "permission denied"
		}
	}
	if m, ok := mf[StatusCodeRangeOf(status)]; ok {
		return m
	}
	return ""
}
