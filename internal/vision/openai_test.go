package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

func newCompletionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.WriteHeader(status)
		if status == http.StatusOK {
			resp := map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": content}},
				},
			}
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		}
	}))
}

func TestOpenAIClient_Detect(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK,
		`[{"symbol":"horse","location":"top-left","strength":6,"meaning":"journey"}]`)
	defer srv.Close()

	client, err := NewOpenAIClient(srv.URL, "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	observations, err := client.Detect(context.Background(), []byte("png"), "image_left.png")
	require.NoError(t, err)
	require.Len(t, observations, 1)
	require.Equal(t, "horse", observations[0].Symbol)
	require.Equal(t, "image_left.png", observations[0].Image)
}

func TestOpenAIClient_DetectUpstreamFailure(t *testing.T) {
	srv := newCompletionServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	client, err := NewOpenAIClient(srv.URL, "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	_, err = client.Detect(context.Background(), []byte("png"), "image_left.png")
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestOpenAIClient_DetectParseFailure(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, "I am unable to view this image.")
	defer srv.Close()

	client, err := NewOpenAIClient(srv.URL, "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	_, err = client.Detect(context.Background(), []byte("png"), "image_left.png")
	require.ErrorIs(t, err, domain.ErrParse)
}

func TestOpenAIClient_Synthesize(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, "You stand at the start of a long journey.")
	defer srv.Close()

	client, err := NewOpenAIClient(srv.URL, "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	readings := []domain.Observation{{Symbol: "horse", Location: "top-left", Strength: 6, Meaning: "journey", Image: "image_left.png"}}
	refined, narrative, err := client.Synthesize(context.Background(), "en", readings)
	require.NoError(t, err)
	require.Equal(t, readings, refined)
	require.Equal(t, "You stand at the start of a long journey.", narrative)
}

func TestNewOpenAIClient_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", "gpt-4o", zap.NewNop())
	require.Error(t, err)
}
