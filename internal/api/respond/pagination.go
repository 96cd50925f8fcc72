package respond

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is the list envelope: {count, next, previous, results}.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// ParsePagination reads ?page=&limit=. A malformed or non-positive page is
// ErrNotFound; a bad limit falls back to the default.
func ParsePagination(c *gin.Context) (page, limit int, err error) {
	page = DefaultPage
	if raw := c.Query("page"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			return 0, 0, ErrNotFound
		}
		page = n
	}
	return page, parseLimit(c.Query("limit")), nil
}

func parseLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// LastPage returns the number of the last page, 1 for an empty list.
func LastPage(count int64, limit int) int {
	if count == 0 {
		return 1
	}
	return int((count + int64(limit) - 1) / int64(limit))
}

// NewPage builds the envelope with absolute next/previous links that keep the
// request's other query parameters.
func NewPage(c *gin.Context, count int64, page, limit int, results interface{}) Page {
	p := Page{Count: count, Results: results}
	if page < LastPage(count, limit) {
		s := pageURL(c, page+1, limit)
		p.Next = &s
	}
	if page > 1 {
		s := pageURL(c, page-1, limit)
		p.Previous = &s
	}
	return p
}

func pageURL(c *gin.Context, page, limit int) string {
	q := url.Values{}
	for k, v := range c.Request.URL.Query() {
		q[k] = v
	}
	q.Set("limit", strconv.Itoa(limit))
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := AbsoluteURL(c, c.Request.URL.Path)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// AbsoluteURL prefixes path with the scheme and host the client used.
func AbsoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	// proxies may append their own hop: "https, http"
	fwd, _, _ := strings.Cut(c.GetHeader("X-Forwarded-Proto"), ",")
	switch fwd = strings.ToLower(strings.TrimSpace(fwd)); fwd {
	case "http", "https":
		scheme = fwd
	}
	return scheme + "://" + c.Request.Host + path
}
