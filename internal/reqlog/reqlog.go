// Package reqlog records one structured event per HTTP exchange, including
// capped request and response bodies.
package reqlog

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MaxBody caps how much of each body is kept on an Event.
const MaxBody = 64 << 10

var redacted = map[string]bool{"Authorization": true, "Cookie": true, "Set-Cookie": true}

// Event is the logged view of a single request/response pair.
type Event struct {
	Timestamp    time.Time
	RequestID    string
	Method       string
	URL          string
	Headers      http.Header
	Body         []byte
	Status       int
	Duration     time.Duration
	ResponseBody []byte
	Truncated    bool
}

// Level picks the log level for a status: ERROR for 5xx, WARN for 4xx.
func Level(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Options configures Middleware. When Pretty is set every event is also
// rendered as a box report to it.
type Options struct {
	Pretty io.Writer
	Color  bool
}

// Middleware logs each exchange once the handler returns.
func Middleware(l *slog.Logger, opts Options) func(next http.Handler) http.Handler {
	var mu sync.Mutex
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqBody, truncated := captureBody(r)
			var resp capped
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&resp)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev := Event{
				Timestamp:    start.UTC(),
				RequestID:    chimw.GetReqID(r.Context()),
				Method:       r.Method,
				URL:          fullURL(r),
				Headers:      redact(r.Header),
				Body:         reqBody,
				Status:       status,
				Duration:     time.Since(start),
				ResponseBody: resp.Bytes(),
				Truncated:    truncated || resp.truncated,
			}
			Log(r.Context(), l, ev)
			if opts.Pretty != nil {
				mu.Lock()
				Render(opts.Pretty, ev, opts.Color)
				mu.Unlock()
			}
		})
	}
}

// Log emits ev on l at the level its status calls for.
func Log(ctx context.Context, l *slog.Logger, ev Event) {
	l.LogAttrs(ctx, Level(ev.Status), "request",
		slog.String("req_id", ev.RequestID),
		slog.String("method", ev.Method),
		slog.String("url", ev.URL),
		slog.Int("status", ev.Status),
		slog.Float64("duration_ms", float64(ev.Duration.Microseconds())/1000),
		slog.Any("headers", ev.Headers),
		slog.String("body", string(ev.Body)),
		slog.String("response_body", string(ev.ResponseBody)),
		slog.Bool("truncated", ev.Truncated),
	)
}

// captureBody reads up to MaxBody bytes and puts them back in front of the
// remaining stream so the handler still sees the whole body.
func captureBody(r *http.Request) ([]byte, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false
	}
	buf, err := io.ReadAll(io.LimitReader(r.Body, MaxBody+1))
	r.Body = readCloser{io.MultiReader(bytes.NewReader(buf), r.Body), r.Body}
	if err != nil {
		return nil, false
	}
	if len(buf) > MaxBody {
		return buf[:MaxBody], true
	}
	return buf, false
}

type readCloser struct {
	io.Reader
	io.Closer
}

// capped is an io.Writer that keeps the first MaxBody bytes and drops the rest.
type capped struct {
	bytes.Buffer
	truncated bool
}

func (c *capped) Write(p []byte) (int, error) {
	if room := MaxBody - c.Len(); room < len(p) {
		c.truncated = true
		if room > 0 {
			c.Buffer.Write(p[:room])
		}
		return len(p), nil
	}
	return c.Buffer.Write(p)
}

func redact(h http.Header) http.Header {
	out := h.Clone()
	for k := range out {
		if redacted[http.CanonicalHeaderKey(k)] {
			out[k] = []string{"[REDACTED]"}
		}
	}
	return out
}

func fullURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = strings.ToLower(p)
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
