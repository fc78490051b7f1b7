package httpapi

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response body of every FinMentor endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the slice of a list returned when ?page or ?size is set.
type Pagination struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// toJSON writes a JSON response with status code.
func toJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes a success envelope.
func WriteOK(w http.ResponseWriter, status int, data any, msg string) {
	toJSON(w, status, Envelope{Success: true, Data: data, Message: msg})
}

// WritePage writes a success envelope carrying pagination info.
func WritePage(w http.ResponseWriter, data any, p Pagination) {
	toJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p})
}

// WriteFail writes a failure envelope with the given status and message.
func WriteFail(w http.ResponseWriter, status int, msg string) {
	toJSON(w, status, Envelope{Success: false, Error: msg})
}
