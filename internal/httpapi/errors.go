package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/finmentor/internal/errs"
)

// InternalErrorMsg is the client-facing message for every unexpected failure.
const InternalErrorMsg = "Error interno del servidor"

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	var de *errs.Error
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &de):
		return de.Status()
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError translates err into a failure envelope. Unexpected errors are
// logged and answered with a generic 500 so internals never reach the client.
func WriteError(w http.ResponseWriter, r *http.Request, l *slog.Logger, op string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		l.Error("request failed", "req_id", chimw.GetReqID(r.Context()), "op", op, "err", err)
		WriteFail(w, status, InternalErrorMsg)
		return
	}
	WriteFail(w, status, err.Error())
}

func BadRequest(w http.ResponseWriter, msg string) { WriteFail(w, http.StatusBadRequest, msg) }
