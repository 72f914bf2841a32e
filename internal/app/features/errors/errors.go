// internal/app/features/errors/errors.go
//
// Package errors writes JSON error responses and logs the underlying cause.
// Handlers report failures through an ErrorLogger so the wire message stays
// user-safe while the log line carries the real error.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the JSON body for every error response.
type envelope struct {
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {"message": ...} body with the given status.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, envelope{Message: msg})
}

// ErrorLogger pairs a response writer helper with structured logging, so the
// log message and the user-facing message can differ.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger with the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the error at Error level and writes a 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	WriteMessage(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at Warn level and writes a 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	WriteMessage(w, http.StatusBadRequest, userMsg)
}

// LogNotFound logs at Info level and writes a 404.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string) {
	e.log.Info(logMsg, zap.String("path", r.URL.Path))
	WriteMessage(w, http.StatusNotFound, userMsg)
}

// LogConflict logs at Info level and writes a 409.
func (e *ErrorLogger) LogConflict(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string) {
	e.log.Info(logMsg, zap.String("path", r.URL.Path))
	WriteMessage(w, http.StatusConflict, userMsg)
}

// LogForbidden logs at Info level and writes a 403.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string) {
	e.log.Info(logMsg, zap.String("path", r.URL.Path))
	WriteMessage(w, http.StatusForbidden, userMsg)
}

// LogUnauthorized logs at Info level and writes a 401.
func (e *ErrorLogger) LogUnauthorized(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string) {
	e.log.Info(logMsg, zap.String("path", r.URL.Path))
	WriteMessage(w, http.StatusUnauthorized, userMsg)
}
