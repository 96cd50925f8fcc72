package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dauletnazarr/donation-project/internal/domain/access"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestErrorMapping(t *testing.T) {
	verr := donations.NewValidationError()
	verr.Add("amount", "bad")

	tests := []struct {
		err  error
		want int
	}{
		{verr, http.StatusBadRequest},
		{access.ErrUnauthenticated, http.StatusUnauthorized},
		{access.ErrPermissionDenied, http.StatusForbidden},
		{fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{ErrNotFound, http.StatusNotFound},
		{donations.ErrAlreadyLiked, http.StatusConflict},
		{gorm.ErrDuplicatedKey, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		c, w := testContext("/x")
		Error(c, tt.err)
		if w.Code != tt.want {
			t.Errorf("%v: status %d, want %d", tt.err, w.Code, tt.want)
		}
	}
}

func TestValidationBodyIsFieldMap(t *testing.T) {
	verr := donations.NewValidationError()
	verr.Add("goal_amount", "must not be negative")

	c, w := testContext("/x")
	Error(c, verr)

	var body map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body["goal_amount"]) != 1 {
		t.Fatalf("body = %v", body)
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		target    string
		page      int
		limit     int
		wantError bool
	}{
		{"/c", 1, 10, false},
		{"/c?page=3&limit=5", 3, 5, false},
		{"/c?limit=1000", 1, MaxLimit, false},
		{"/c?limit=abc", 1, DefaultLimit, false},
		{"/c?page=0", 0, 0, true},
		{"/c?page=x", 0, 0, true},
	}
	for _, tt := range tests {
		c, _ := testContext(tt.target)
		page, limit, err := ParsePagination(c)
		if tt.wantError {
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("%s: got %v, want ErrNotFound", tt.target, err)
			}
			continue
		}
		if err != nil || page != tt.page || limit != tt.limit {
			t.Errorf("%s: got (%d, %d, %v), want (%d, %d)", tt.target, page, limit, err, tt.page, tt.limit)
		}
	}
}

func TestNewPageLinks(t *testing.T) {
	c, _ := testContext("/api/v1/collects/?page=2&limit=10")
	c.Request.Host = "example.com"

	p := NewPage(c, 25, 2, 10, []int{})
	if p.Next == nil || *p.Next != "http://example.com/api/v1/collects/?limit=10&page=3" {
		t.Fatalf("next = %v", p.Next)
	}
	if p.Previous == nil || *p.Previous != "http://example.com/api/v1/collects/?limit=10" {
		t.Fatalf("previous = %v", p.Previous)
	}

	last := NewPage(c, 25, 3, 10, []int{})
	if last.Next != nil {
		t.Fatalf("last page must not have next, got %s", *last.Next)
	}
	if LastPage(0, 10) != 1 || LastPage(20, 10) != 2 || LastPage(21, 10) != 3 {
		t.Fatal("LastPage arithmetic")
	}
}

func TestAbsoluteURLForwardedProto(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "http://example.com/r/abc/"},
		{"https", "https://example.com/r/abc/"},
		{"HTTPS", "https://example.com/r/abc/"},
		{"https, http", "https://example.com/r/abc/"},
		{"javascript", "http://example.com/r/abc/"},
		{"https://evil.test/x?", "http://example.com/r/abc/"},
	}
	for _, tt := range tests {
		c, _ := testContext("/")
		if tt.header != "" {
			c.Request.Header.Set("X-Forwarded-Proto", tt.header)
		}
		if got := AbsoluteURL(c, "/r/abc/"); got != tt.want {
			t.Errorf("X-Forwarded-Proto %q: got %s, want %s", tt.header, got, tt.want)
		}
	}
}
