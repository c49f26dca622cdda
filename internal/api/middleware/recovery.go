package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/candyledger/internal/api/apierr"
	"github.com/mcoot/candyledger/internal/metrics"
	"github.com/mcoot/candyledger/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

// RequestID tags every API request with a correlation ID
func RequestID(next http.Handler) http.Handler {
	return middleware.RequestID(next)
}

// Logging logs every API request and, when m is set, counts it
func Logging(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	var observe middleware.RequestObserver
	if m != nil {
		observe = m.ObserveHTTP
	}
	return middleware.Logging(logger, HeaderActorID, observe)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
