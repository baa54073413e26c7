package paginated

import (
	"net/url"
	"strconv"
)

// Page is the envelope wrapping every list response.
type Page[T any] struct {
	Count    int     `json:"count" validate:"gte=0"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results" validate:"dive"`
}

// NextPage returns the page number which Next link points.
//
// When there are no next page, or the link has no "page" query, it returns false.
func (p Page[T]) NextPage() (int, bool) {
	return pageOf(p.Next)
}

// PreviousPage returns the page number which Previous link points.
//
// DRF omits "page" from the link to the first page, so it is reported as 1.
func (p Page[T]) PreviousPage() (int, bool) {
	if p.Previous == nil {
		return 0, false
	}
	if n, ok := pageOf(p.Previous); ok {
		return n, true
	}
	return 1, true
}

func pageOf(link *string) (int, bool) {
	if link == nil || *link == "" {
		return 0, false
	}
	u, err := url.Parse(*link)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
