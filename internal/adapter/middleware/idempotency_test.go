package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(IdempotencyMiddleware(rdb, ttl))
	e.POST("/loans", handler)
	e.GET("/loans", handler) // non-mutating bypass
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func validHeaders() map[string]string {
	return map[string]string{
		"X-Request-Id": strings.Repeat("a", 32),
		"X-Request-At": time.Now().UTC().Format(time.RFC3339),
		"X-Member-Id":  strings.Repeat("b", 32),
	}
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/loans", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	cases := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing X-Request-Id", func(h map[string]string) { delete(h, "X-Request-Id") }},
		{"invalid X-Request-Id", func(h map[string]string) { h["X-Request-Id"] = "NOT-VALID" }},
		{"invalid X-Request-At", func(h map[string]string) { h["X-Request-At"] = "not-a-time" }},
		{"skewed X-Request-At", func(h map[string]string) {
			h["X-Request-At"] = time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339)
		}},
		{"missing X-Member-Id", func(h map[string]string) { delete(h, "X-Member-Id") }},
		{"invalid X-Member-Id", func(h map[string]string) { h["X-Member-Id"] = "not32hex" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := validHeaders()
			tc.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"x": 1}), h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	h := validHeaders()
	body := map[string]any{"amount": 1000000}

	rec1 := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, body), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	// same headers and body: replay the stored response, no second execution
	rec2 := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, body), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	h := validHeaders()
	body := []byte(`{"x":1}`)

	key := buildKey(http.MethodPost, "/loans", h["X-Member-Id"], h["X-Request-Id"])
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash(body),
		RequestID:   h["X-Request-Id"],
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader(body), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameReqID_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	h := validHeaders()
	key := buildKey(http.MethodPost, "/loans", h["X-Member-Id"], h["X-Request-Id"])
	final := idempEntry{
		InProgress:  false,
		Code:        http.StatusCreated,
		Body:        []byte(`{"ok":true}`),
		BodySHA256:  bodyHash([]byte(`{"x":1}`)),
		RequestID:   h["X-Request-Id"],
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := saveFinal(context.Background(), rdb, key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{"x":2}`)), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same reqID => want 409, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}) // nothing listening
	e := setupEcho(rdb, time.Minute, okCreatedHandler)

	rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"x": 1}), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
}
