package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the error envelope of every endpoint. Policy rejections
// carry one entry per violation; other failures carry a single message.
type ErrorResponse struct {
	Errors []string `json:"errors"`
}

// WriteJSON writes data with status. Nothing reaches the client until
// encoding has succeeded; an encoding failure is answered with a 500.
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "status", status, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"errors":["Internal server error"]}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}

// WriteError writes a single-message error envelope
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteErrors(w, status, []string{message}, logger)
}

// WriteErrors writes the error envelope with every entry of errs
func WriteErrors(w http.ResponseWriter, status int, errs []string, logger *slog.Logger) {
	if errs == nil {
		errs = []string{}
	}
	WriteJSON(w, status, ErrorResponse{Errors: errs}, logger)
}
