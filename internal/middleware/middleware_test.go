package middleware_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/candyledger/internal/middleware"
	"github.com/mcoot/candyledger/internal/testutil"
)

type observed struct {
	route  string
	status int
}

func newRouter(logger *slog.Logger, seen *[]observed) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	r.Use(middleware.Logging(logger, "X-Actor-ID", func(route string, status int, _ time.Duration) {
		*seen = append(*seen, observed{route, status})
	}))

	r.HandleFunc("/players/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})
	return r
}

func TestLoggingRecordsRouteTemplate(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	var seen []observed
	router := newRouter(logger, &seen)

	req := httptest.NewRequest(http.MethodGet, "/players/42", nil)
	req.Header.Set("X-Actor-ID", "42")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
	require.Len(t, seen, 1)
	assert.Equal(t, observed{"/players/{id}", http.StatusTeapot}, seen[0])

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "42", entry["actor"])
	assert.Equal(t, rr.Header().Get(middleware.HeaderRequestID), entry["request_id"])
}

func TestRequestIDIsPropagated(t *testing.T) {
	var seen []observed
	router := newRouter(testutil.NopLogger(), &seen)

	req := httptest.NewRequest(http.MethodGet, "/players/1", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "req-123", rr.Header().Get(middleware.HeaderRequestID))
}

func TestRecoveryWritesPanicResponse(t *testing.T) {
	logger, buf := testutil.CaptureLogger()
	var seen []observed
	router := newRouter(logger, &seen)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "kaboom")
}
