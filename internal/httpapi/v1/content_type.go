package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	base "github.com/tinoosan/finmentor/internal/httpapi"
)

// requireJSON rejects bodies explicitly sent as something other than JSON.
// A missing Content-Type is tolerated. Writes 415 and returns false on mismatch.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return true
	}
	mime := strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	if mime != "application/json" {
		base.WriteFail(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	return true
}

// decodeJSON decodes the request body into dst, writing the error response itself.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !requireJSON(w, r) {
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			base.WriteFail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		base.BadRequest(w, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
