// Package httpapi is the root HTTP surface: global middleware, the response
// envelope, error translation and the unversioned operational endpoints.
// Versioned APIs are mounted onto it.
package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/finmentor/internal/reqlog"
)

// DefaultBodyLimit caps request bodies at 50 MB.
const DefaultBodyLimit int64 = 50 << 20

// Options configures the global middleware stack.
type Options struct {
	CORSOrigins     []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimit       int64
	// PrettyLog, when set, receives the box-drawing request report.
	PrettyLog io.Writer
	Color     bool
}

// Server wires global middleware and the operational endpoints using Chi.
type Server struct {
	rt      *chi.Mux
	log     *slog.Logger
	limiter *RateLimiter
	ready   []ReadyChecker
}

// New constructs the root router. Middleware order is fixed; see routes.
func New(opts Options, logger *slog.Logger, ready ...ReadyChecker) *Server {
	if opts.RateLimitMax <= 0 {
		opts.RateLimitMax = 299
	}
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = 5 * time.Minute
	}
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = DefaultBodyLimit
	}
	s := &Server{
		rt:      chi.NewRouter(),
		log:     logger,
		limiter: NewRateLimiter(opts.RateLimitMax, opts.RateLimitWindow),
		ready:   ready,
	}
	s.middleware(opts)
	s.routes()
	return s
}

func (s *Server) middleware(opts Options) {
	r := s.rt
	r.Use(chimw.RequestID)
	// The limiter keys on the socket peer, so it must see RemoteAddr before RealIP rewrites it.
	r.Use(s.limiter.Handler)
	r.Use(chimw.RealIP)
	r.Use(corsHandler(opts.CORSOrigins))
	r.Use(chimw.Compress(5))
	useSecurityHeaders(r)
	r.Use(chimw.RequestSize(opts.BodyLimit))
	r.Use(reqlog.Middleware(s.log, reqlog.Options{Pretty: opts.PrettyLog, Color: opts.Color}))
	r.Use(metricsMiddleware)
	r.Use(recoverer(s.log))
}

func (s *Server) routes() {
	s.rt.NotFound(s.notFound)
	s.rt.MethodNotAllowed(s.methodNotAllowed)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}

// Mount attaches a versioned API under prefix, e.g. "/api/v1".
func (s *Server) Mount(prefix string, h http.Handler) { s.rt.Mount(prefix, h) }

// Limiter exposes the rate limiter so its janitor can be run alongside the server.
func (s *Server) Limiter() *RateLimiter { return s.limiter }

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }
