package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondStatus writes the error envelope with the default message for status
func RespondStatus(w http.ResponseWriter, status int) {
	RespondError(w, status, MessageFor(status))
}

// RespondBadRequest writes a 400 response
func RespondBadRequest(w http.ResponseWriter) {
	RespondStatus(w, http.StatusBadRequest)
}

// RespondNotFound writes a 404 response
func RespondNotFound(w http.ResponseWriter) {
	RespondStatus(w, http.StatusNotFound)
}

// RespondMethodNotAllowed writes a 405 response
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondStatus(w, http.StatusMethodNotAllowed)
}

// RespondUnprocessable writes a 422 response
func RespondUnprocessable(w http.ResponseWriter) {
	RespondStatus(w, http.StatusUnprocessableEntity)
}

// RespondInternalError writes a 500 response
func RespondInternalError(w http.ResponseWriter) {
	RespondStatus(w, http.StatusInternalServerError)
}

// RespondServiceUnavailable writes a 503 response
func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondStatus(w, http.StatusServiceUnavailable)
}
