package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

// OpenAIClient talks the OpenAI chat-completions protocol. It implements
// both capability interfaces since detection and synthesis hit the same
// endpoint with different message payloads.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Stream    bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAIClient(baseURL, apiKey, model string, log *zap.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	return &OpenAIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
		log: log,
	}, nil
}

// Detect sends one trimmed cup image and parses the returned observations.
func (c *OpenAIClient) Detect(ctx context.Context, imagePNG []byte, source string) ([]domain.Observation, error) {
	imgB64 := base64.StdEncoding.EncodeToString(imagePNG)

	req := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: detectionPrompt()},
					{Type: "image_url", ImageURL: &imageURL{
						URL: "data:image/png;base64," + imgB64,
					}},
				},
			},
		},
		Stream: false,
	}

	text, err := c.complete(ctx, req)
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

// Synthesize generates the final narrative over the aggregated observations.
func (c *OpenAIClient) Synthesize(ctx context.Context, language string, readings []domain.Observation) ([]domain.Observation, string, error) {
	req := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: synthesisPrompt(language, readings)},
		},
		MaxTokens: 2000,
		Stream:    false,
	}

	text, err := c.complete(ctx, req)
	if err != nil {
		return nil, "", err
	}

	narrative := strings.TrimSpace(text)
	if narrative == "" {
		return nil, "", fmt.Errorf("%w: empty narrative from model", domain.ErrParse)
	}

	return readings, narrative, nil
}

func (c *OpenAIClient) complete(ctx context.Context, payload chatCompletionRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: server returned status %d: %s", domain.ErrUpstream, resp.StatusCode, string(respBody))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", domain.ErrParse)
	}

	return parsed.Choices[0].Message.Content, nil
}

var (
	_ SymbolDetector     = (*OpenAIClient)(nil)
	_ ReadingSynthesizer = (*OpenAIClient)(nil)
)
