package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/withoutfanfare/developer-test/internal/platform/logger"
	"github.com/withoutfanfare/developer-test/internal/redact"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}

// RespondWithJSON writes data as JSON with status.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error reply carrying the trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondWithErrorBody(w, r, status, ErrorResponse{Error: message})
}

// RespondWithFieldErrors writes a validation failure listing the offending
// fields.
func RespondWithFieldErrors(w http.ResponseWriter, r *http.Request, status int, message string, fields map[string]string) {
	respondWithErrorBody(w, r, status, ErrorResponse{Error: message, Fields: fields})
}

func respondWithErrorBody(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	body.TraceID = GetTraceID(r.Context())
	logger.FromContext(r.Context()).Debug("sending error response",
		"status_code", status,
		"message", body.Error,
		"path", r.URL.Path,
		"method", r.Method)
	RespondWithJSON(w, r, status, body)
}

// RespondWithErrorAndLog replies with userMessage and logs err in redacted
// form. 5xx replies log at ERROR, 429 at WARN and other 4xx at DEBUG.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	attrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), levelFor(status), "API error response", attrs...)
	RespondWithJSON(w, r, status, ErrorResponse{Error: userMessage, TraceID: GetTraceID(r.Context())})
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusTooManyRequests:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}
