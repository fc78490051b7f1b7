package reqlog

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLevel(t *testing.T) {
	cases := map[int]slog.Level{
		200: slog.LevelInfo,
		304: slog.LevelInfo,
		404: slog.LevelWarn,
		429: slog.LevelWarn,
		500: slog.LevelError,
	}
	for status, want := range cases {
		if got := Level(status); got != want {
			t.Fatalf("Level(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestMiddleware_CapturesBodiesAndRedacts(t *testing.T) {
	var logs, report bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&logs, nil))
	var seen string
	h := Middleware(l, Options{Pretty: &report})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/finmentor/profiles?x=1", strings.NewReader(`{"userId":"u-1"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != `{"userId":"u-1"}` {
		t.Fatalf("handler saw %q", seen)
	}
	if rr.Body.String() != `{"success":true}` {
		t.Fatalf("client got %q", rr.Body.String())
	}

	var rec map[string]any
	if err := json.Unmarshal(logs.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v; %s", err, logs.String())
	}
	if rec["status"].(float64) != 201 || rec["body"] != `{"userId":"u-1"}` || rec["response_body"] != `{"success":true}` {
		t.Fatalf("unexpected log record %v", rec)
	}
	if rec["url"] != "http://example.com/api/v1/finmentor/profiles?x=1" {
		t.Fatalf("unexpected url %v", rec["url"])
	}
	if strings.Contains(logs.String(), "secret") || strings.Contains(report.String(), "secret") {
		t.Fatal("authorization header leaked")
	}
	if !strings.Contains(report.String(), "RESPONSE INFORMATION") {
		t.Fatal("expected pretty report")
	}
}

func TestMiddleware_TruncatesLargeBody(t *testing.T) {
	var logs bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&logs, nil))
	var n int
	h := Middleware(l, Options{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		n = len(b)
	}))
	big := strings.Repeat("a", MaxBody+10)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big)))
	if n != len(big) {
		t.Fatalf("handler read %d bytes, want %d", n, len(big))
	}
	if !strings.Contains(logs.String(), `"truncated":true`) {
		t.Fatalf("expected truncated flag: %s", logs.String())
	}
}

func TestRender_Plain(t *testing.T) {
	var b bytes.Buffer
	Render(&b, Event{
		Timestamp:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Method:       http.MethodGet,
		URL:          "http://localhost/healthz",
		Headers:      http.Header{"Accept": {"*/*"}},
		Status:       404,
		Duration:     1500 * time.Microsecond,
		ResponseBody: []byte(`{"success":false,"error":"x"}`),
	}, false)
	out := b.String()
	for _, want := range []string{"REQUEST INFORMATION", "RESPONSE INFORMATION", "Accept: */*", "No body", "1.500 ms", `"success": false`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("plain render must not contain ANSI escapes")
	}
}
