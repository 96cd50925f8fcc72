package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/internal/infra/tokens"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

func TestHostAllowed(t *testing.T) {
	tests := []struct {
		host  string
		hosts []string
		want  bool
	}{
		{"example.com", []string{"*"}, true},
		{"example.com:8080", []string{"example.com"}, true},
		{"api.example.com", []string{".example.com"}, true},
		{"example.com", []string{".example.com"}, true},
		{"evil.com", []string{"example.com", ".example.com"}, false},
		{"EXAMPLE.com", []string{"example.COM"}, true},
		{"example.com", nil, false},
	}
	for _, tt := range tests {
		if got := hostAllowed(tt.host, tt.hosts); got != tt.want {
			t.Errorf("hostAllowed(%q, %v) = %v, want %v", tt.host, tt.hosts, got, tt.want)
		}
	}
}

func TestSanitizeStripsMarkupAndKeepsNumbers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var seen string
	r.POST("/", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		seen = string(b)
		c.Status(http.StatusNoContent)
	})

	body := `{"title":"<script>alert(1)</script>Gift","amount":12345678901234567890.25}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(seen, "script") || !strings.Contains(seen, "Gift") {
		t.Fatalf("markup not stripped: %s", seen)
	}
	if !strings.Contains(seen, "12345678901234567890.25") {
		t.Fatalf("number altered: %s", seen)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{oops")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d", w.Code)
	}
}

func TestSanitizeKeepsPlainTextIntact(t *testing.T) {
	policy := bluemonday.StrictPolicy()
	tests := []struct {
		in, want string
	}{
		{"Tom & Jerry", "Tom & Jerry"},
		{`Say "hi" to O'Neil`, `Say "hi" to O'Neil`},
		{"5 < 6 > 4", "5 < 6 > 4"},
		{"<b>Gift</b> & cake", "Gift & cake"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;Gift", "Gift"},
	}
	for _, tt := range tests {
		if got := cleanText(policy, tt.in); got != tt.want {
			t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := config.JWT_SECRET
	config.JWT_SECRET = "secret"
	t.Cleanup(func() { config.JWT_SECRET = prev })

	r := gin.New()
	r.GET("/", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentIdentity(c).UserID})
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := call(""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"user":0`) {
		t.Fatalf("anonymous: %d %s", w.Code, w.Body.String())
	}
	if w := call("Bearer garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d", w.Code)
	}
	if w := call("Token abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong scheme status = %d", w.Code)
	}

	tok, err := tokens.Issue(7, "gina", tokens.Access)
	if err != nil {
		t.Fatal(err)
	}
	if w := call("Bearer " + tok); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"user":7`) {
		t.Fatalf("valid token: %d %s", w.Code, w.Body.String())
	}
}
