package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	routes "github.com/Dauletnazarr/donation-project/internal/app/http"
	"github.com/Dauletnazarr/donation-project/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type api struct {
	t  *testing.T
	r  *gin.Engine
	mr *miniredis.Miniredis
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := testutil.Setup(t)
	return &api{t: t, r: routes.NewRouter(zerolog.Nop()), mr: mr}
}

func (a *api) do(method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := testutil.Authorize(httptest.NewRequest(method, path, &buf), bearer)
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body %s", w.Code, want, w.Body.String())
	}
}

func collectBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":        title,
		"occasion":     "birthday",
		"description":  "Gift for a friend",
		"goal_amount":  "1000.00",
		"end_datetime": time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
	}
}

type collectJSON struct {
	ID              uint          `json:"id"`
	Title           string        `json:"title"`
	GoalAmount      *string       `json:"goal_amount"`
	CoverImage      *string       `json:"cover_image"`
	CollectedAmount string        `json:"collected_amount"`
	DonorsCount     uint          `json:"donors_count"`
	ShortLink       *string       `json:"short_link"`
	Payments        []paymentJSON `json:"payments"`
	Author          struct {
		ID uint `json:"id"`
	} `json:"author"`
}

type paymentJSON struct {
	ID         uint   `json:"id"`
	Amount     string `json:"amount"`
	LikesCount int    `json:"likes_count"`
	Donor      *struct {
		ID uint `json:"id"`
	} `json:"donor"`
	Comments []struct {
		Text string `json:"text"`
	} `json:"comments"`
}

type pageJSON struct {
	Count    int64             `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}
