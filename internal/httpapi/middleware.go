package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tinoosan/finmentor/internal/errs"
)

// securityHeaders mirrors a helmet setup with most protections switched off.
var securityHeaders = [][2]string{
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Origin-Agent-Cluster", "?1"},
	{"Referrer-Policy", "no-referrer"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
}

func useSecurityHeaders(r chi.Router) {
	for _, h := range securityHeaders {
		r.Use(chimw.SetHeader(h[0], h[1]))
	}
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"RateLimit-Limit", "RateLimit-Remaining", "Retry-After", "X-Request-Id"},
		MaxAge:         300,
	})
}

// recoverer is the last line of defence: handlers translate their own errors,
// this only turns panics into an envelope.
func recoverer(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				panicsTotal.Inc()
				status, msg := translatePanic(l, chimw.GetReqID(r.Context()), rec)
				WriteFail(w, status, msg)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func translatePanic(l *slog.Logger, reqID string, rec any) (int, string) {
	err, ok := rec.(error)
	if !ok {
		l.Error("panic", "req_id", reqID, "err", "unknown error type", "value", fmt.Sprintf("%v", rec), "stack", string(debug.Stack()))
		return http.StatusInternalServerError, "Internal Server Error"
	}
	var de *errs.Error
	if errors.As(err, &de) {
		l.Warn("panic with domain error", "req_id", reqID, "status", de.Status(), "err", de.Msg)
		return de.Status(), de.Msg
	}
	l.Error("panic", "req_id", reqID, "err", err.Error(), "stack", string(debug.Stack()))
	return http.StatusInternalServerError, "Internal Server Error"
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	WriteFail(w, http.StatusNotFound, fmt.Sprintf("La ruta %s no existe", r.URL.RequestURI()))
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteFail(w, http.StatusMethodNotAllowed, fmt.Sprintf("Método %s no permitido en %s", r.Method, r.URL.Path))
}
