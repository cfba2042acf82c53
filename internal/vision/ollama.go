package vision

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

// OllamaClient runs both model calls against a self-hosted Ollama server,
// for deployments that keep image data off third-party APIs.
type OllamaClient struct {
	client *api.Client
	model  string
	log    *zap.Logger
}

func NewOllamaClient(ollamaURL, model string, log *zap.Logger) (*OllamaClient, error) {
	parsed, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}

	base := &url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
	}

	return &OllamaClient{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
		log:    log,
	}, nil
}

func (c *OllamaClient) Detect(ctx context.Context, imagePNG []byte, source string) ([]domain.Observation, error) {
	text, err := c.chat(ctx, detectionPrompt(), imagePNG)
	if err != nil {
		return nil, err
	}

	observations, err := parseObservations(text)
	if err != nil {
		c.log.Warn("Failed to parse detection response",
			zap.String("source", source),
			zap.Error(err))
		return nil, err
	}

	for i := range observations {
		observations[i].Image = source
	}

	c.log.Info("Symbols detected",
		zap.String("source", source),
		zap.Int("count", len(observations)))

	return observations, nil
}

func (c *OllamaClient) Synthesize(ctx context.Context, language string, readings []domain.Observation) ([]domain.Observation, string, error) {
	text, err := c.chat(ctx, synthesisPrompt(language, readings), nil)
	if err != nil {
		return nil, "", err
	}

	narrative := strings.TrimSpace(text)
	if narrative == "" {
		return nil, "", fmt.Errorf("%w: empty narrative from model", domain.ErrParse)
	}

	return readings, narrative, nil
}

func (c *OllamaClient) chat(ctx context.Context, prompt string, imagePNG []byte) (string, error) {
	msg := api.Message{
		Role:    "user",
		Content: prompt,
	}
	if imagePNG != nil {
		msg.Images = []api.ImageData{api.ImageData(imagePNG)}
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: []api.Message{msg},
		Stream:   &streamFalse,
	}

	var content string
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: ollama chat error: %v", domain.ErrUpstream, err)
	}

	return content, nil
}

var (
	_ SymbolDetector     = (*OllamaClient)(nil)
	_ ReadingSynthesizer = (*OllamaClient)(nil)
)
