package httpapi

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tinoosan/finmentor/internal/errs"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type readyFunc func(ctx context.Context) error

func (f readyFunc) Ready(ctx context.Context) error { return f(ctx) }

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body=%s", err, rr.Body.String())
	}
	return env
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNotFoundCatchAll(t *testing.T) {
	s := New(Options{}, testLogger())
	rr := serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/nope?x=1", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	env := decode(t, rr)
	if env.Success || env.Error != "La ruta /nope?x=1 no existe" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := New(Options{}, testLogger())
	rr := serve(s.Handler(), httptest.NewRequest(http.MethodDelete, "/healthz", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestRecoverer(t *testing.T) {
	s := New(Options{}, testLogger())
	s.rt.Get("/domain", func(http.ResponseWriter, *http.Request) { panic(errs.Conflictf("taken")) })
	s.rt.Get("/error", func(http.ResponseWriter, *http.Request) { panic(errors.New("db exploded")) })
	s.rt.Get("/value", func(http.ResponseWriter, *http.Request) { panic(42) })

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/domain", http.StatusConflict, "taken"},
		{"/error", http.StatusInternalServerError, "Internal Server Error"},
		{"/value", http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		rr := serve(s.Handler(), httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, rr.Code)
		}
		if env := decode(t, rr); env.Error != tc.msg {
			t.Fatalf("%s: expected %q, got %q", tc.path, tc.msg, env.Error)
		}
	}
}

func TestWriteError_HidesInternals(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, httptest.NewRequest(http.MethodGet, "/", nil), testLogger(), "test", errors.New("secret detail"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if env := decode(t, rr); env.Error != InternalErrorMsg {
		t.Fatalf("expected generic message, got %q", env.Error)
	}
	if StatusFor(errs.NotFoundf("x")) != http.StatusNotFound || StatusFor(errs.ErrInvalid) != http.StatusBadRequest {
		t.Fatal("unexpected status mapping")
	}
}

func TestRateLimit(t *testing.T) {
	s := New(Options{RateLimitMax: 2, RateLimitWindow: time.Minute}, testLogger())
	h := s.Handler()
	for i := 0; i < 2; i++ {
		if rr := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil)); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if ra := rr.Header().Get("Retry-After"); ra == "" || ra == "0" {
		t.Fatalf("expected Retry-After, got %q", ra)
	}
	if got := rr.Header().Get("RateLimit-Limit"); got != "2" {
		t.Fatalf("expected RateLimit-Limit 2, got %q", got)
	}
	if env := decode(t, rr); env.Error != RateLimitMsg {
		t.Fatalf("unexpected message %q", env.Error)
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	if rr := serve(h, req); rr.Code != http.StatusOK {
		t.Fatalf("other client: expected 200, got %d", rr.Code)
	}
}

func TestRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	s := New(Options{RateLimitMax: 2, RateLimitWindow: time.Minute}, testLogger())
	h := s.Handler()
	ok := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("1.2.3.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("5.6.7.%d", i))
		if rr := serve(h, req); rr.Code == http.StatusOK {
			ok++
		}
	}
	if ok != 2 {
		t.Fatalf("expected 2 requests through from one peer, got %d", ok)
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }
	rl.visitorFor("a", base)
	rl.visitorFor("b", base.Add(90*time.Second))
	rl.now = func() time.Time { return base.Add(2 * time.Minute) }
	rl.Sweep()
	if rl.size() != 1 {
		t.Fatalf("expected one visitor left, got %d", rl.size())
	}
}

func TestCORSPreflight(t *testing.T) {
	s := New(Options{}, testLogger())
	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := serve(s.Handler(), req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := New(Options{}, testLogger())
	rr := serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	for _, h := range securityHeaders {
		if got := rr.Header().Get(h[0]); got != h[1] {
			t.Fatalf("%s: expected %q, got %q", h[0], h[1], got)
		}
	}
}

func TestReadyz(t *testing.T) {
	ok := New(Options{}, testLogger(), readyFunc(func(context.Context) error { return nil }))
	if rr := serve(ok.Handler(), httptest.NewRequest(http.MethodGet, "/readyz", nil)); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	down := New(Options{}, testLogger(), readyFunc(func(context.Context) error { return errors.New("down") }))
	if rr := serve(down.Handler(), httptest.NewRequest(http.MethodGet, "/readyz", nil)); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(Options{}, testLogger())
	serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	rr := serve(s.Handler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "finmentor_http_requests_total") {
		t.Fatal("expected request counter in exposition")
	}
}

func TestCompressedResponseLogsPlainBody(t *testing.T) {
	var logs bytes.Buffer
	s := New(Options{}, slog.New(slog.NewJSONHandler(&logs, nil)))
	s.rt.Get("/json", func(w http.ResponseWriter, r *http.Request) {
		WriteOK(w, http.StatusOK, map[string]string{"term": "staking"}, "ok")
	})
	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := serve(s.Handler(), req)
	if got := rr.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", got)
	}
	zr, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	var env Envelope
	if err := json.NewDecoder(zr).Decode(&env); err != nil {
		t.Fatalf("decode gunzipped body: %v", err)
	}
	if !env.Success || env.Message != "ok" {
		t.Fatalf("unexpected envelope %+v", env)
	}

	var logged string
	sc := bufio.NewScanner(&logs)
	for sc.Scan() {
		var rec map[string]any
		if json.Unmarshal(sc.Bytes(), &rec) == nil && rec["msg"] == "request" {
			logged, _ = rec["response_body"].(string)
		}
	}
	if !strings.Contains(logged, `"term":"staking"`) {
		t.Fatalf("request log should hold the uncompressed body, got %q", logged)
	}
}
