package judgment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"itinerary-remediation-service/internal/platform/httpx"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/platform/obs"
	"itinerary-remediation-service/internal/ports"
)

type OpenAIConfig struct {
	// Name identifies the provider in logs, e.g. "openai" or "local".
	Name    string
	BaseURL string
	APIKey  string
	Model   string
	// KeyRequired makes an empty APIKey mean unavailable. Local
	// OpenAI-compatible servers usually accept anonymous requests.
	KeyRequired bool
	Temperature float64
	Timeout     time.Duration
}

// OpenAIClient is a chat-completions client for OpenAI and compatible servers
// (vLLM, llama.cpp, Ollama). It is safe for concurrent use.
type OpenAIClient struct {
	cfg      OpenAIConfig
	upstream httpx.Retrier
	log      *logger.Logger
}

var _ ports.JudgmentProvider = (*OpenAIClient)(nil)

func NewOpenAIClient(cfg OpenAIConfig, log *logger.Logger) *OpenAIClient {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("provider", cfg.Name, "model", cfg.Model)
	return &OpenAIClient{
		cfg: cfg,
		upstream: httpx.Retrier{
			Client:      &http.Client{Timeout: cfg.Timeout},
			Service:     cfg.Name,
			MaxAttempts: 3,
			Backoff:     250 * time.Millisecond,
			Log:         log,
		},
		log: log,
	}
}

func (c *OpenAIClient) Name() string { return c.cfg.Name }

// IsAvailable is a configuration check; it never touches the network.
func (c *OpenAIClient) IsAvailable(context.Context) bool {
	if c.cfg.BaseURL == "" || c.cfg.Model == "" {
		return false
	}
	return c.cfg.APIKey != "" || !c.cfg.KeyRequired
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text,omitempty"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req ports.CompletionRequest) (_ string, err error) {
	defer obs.Time(ctx, c.log, "judgment."+c.cfg.Name+".Complete")(&err)

	if !c.IsAvailable(ctx) {
		return "", fmt.Errorf("complete: provider %s is not configured", c.cfg.Name)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errors.New("complete: empty prompt")
	}

	body := chatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if s := strings.TrimSpace(req.System); s != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: s})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.Prompt})
	if req.JSON {
		body.ResponseFormat = map[string]any{"type": "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("complete: marshal request: %w", err)
	}

	raw, err := c.upstream.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.newRequest(ctx, payload)
	})
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("complete: decode response: %w", err)
	}
	for _, ch := range resp.Choices {
		if text := strings.TrimSpace(ch.Message.Content); text != "" {
			return text, nil
		}
		if text := strings.TrimSpace(ch.Text); text != "" {
			return text, nil
		}
	}
	return "", errors.New("complete: empty upstream completion")
}

func (c *OpenAIClient) newRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	req, err := httpx.NewJSONRequest(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", payload)
	if err != nil {
		return nil, err
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	return req, nil
}
