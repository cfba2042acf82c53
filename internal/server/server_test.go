package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shubhamjangid510/coffe-cup/internal/config"
)

func newTestServer(t *testing.T, log *zap.Logger) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "0"},
		Storage: config.StorageConfig{
			UploadDir:     t.TempDir(),
			MaxUploadSize: 1 << 20,
		},
		Vision: config.VisionConfig{
			Provider:     "openai",
			OpenAIAPIKey: "test-key",
			OpenAIModel:  "gpt-4o",
		},
	}

	srv, err := New(cfg, log)
	require.NoError(t, err)
	return srv
}

func TestRequestID_SetOnResponse(t *testing.T) {
	srv := newTestServer(t, zap.NewNop())

	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestID_HonorsCallerProvided(t *testing.T) {
	srv := newTestServer(t, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "caller-id-42")

	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "caller-id-42", w.Header().Get(requestIDHeader))
}

func TestRequestID_CorrelatesRequestLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	srv := newTestServer(t, zap.New(core))

	form := url.Values{}
	form.Set("reading_id", "../etc")
	form.Set("language", "en")

	req := httptest.NewRequest(http.MethodPost, "/analyze_coffee_cup/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(requestIDHeader, "corr-7")

	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	entries := logs.FilterMessage("Request rejected").All()
	require.NotEmpty(t, entries)
	require.Equal(t, "corr-7", entries[0].ContextMap()["request_id"])
}
