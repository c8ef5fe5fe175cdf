package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dispute-resolution-backend/internal/models"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	requestTimeout = 60 * time.Second

	// Low variance so the same dispute gets the same read, bounded output
	// so a rambling reply cannot blow past the response budget.
	samplingTemperature = 0.1
	maxCompletionTokens = 1000
)

// Analyzer produces a fraud assessment for a disputed transaction. It never
// fails outward: a broken reasoning service must not block a customer from
// filing a dispute, so failures degrade the assessment content instead.
type Analyzer interface {
	Analyze(ctx context.Context, tx models.Transaction, req models.DisputeRequest) models.Assessment
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(apiKey, model, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Analyze runs a single attempt against the reasoning service. Three output
// shapes are possible: the parsed structured assessment, a parse fallback
// carrying the raw reply, or a call-failure fallback.
func (c *Client) Analyze(ctx context.Context, tx models.Transaction, req models.DisputeRequest) models.Assessment {
	raw, err := c.complete(ctx, buildDisputePrompt(tx, req))
	if err != nil {
		c.logger.Error("Reasoning service call failed",
			zap.String("transaction_id", tx.TransactionID),
			zap.Error(err),
		)
		return callFailureAssessment()
	}

	var assessment models.Assessment
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &assessment); err != nil {
		// A well-formed but non-JSON reply is an expected edge case, not a
		// system fault.
		c.logger.Warn("Reasoning service reply was not valid JSON, keeping it as free text",
			zap.String("transaction_id", tx.TransactionID),
		)
		return parseFallbackAssessment(raw)
	}
	if assessment.FraudLikelihood == "" {
		assessment.FraudLikelihood = models.FraudLikelihoodUnknown
	}
	return assessment
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("reasoning service credential is not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: samplingTemperature,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

func parseFallbackAssessment(raw string) models.Assessment {
	return models.Assessment{
		Analysis:           raw,
		FraudLikelihood:    models.FraudLikelihoodUnknown,
		RecommendedActions: []string{"Manual review required"},
	}
}

func callFailureAssessment() models.Assessment {
	return models.Assessment{
		Analysis:           "Error analyzing dispute",
		FraudLikelihood:    models.FraudLikelihoodError,
		RecommendedActions: []string{"System error, please try again or contact support"},
	}
}

// stripCodeFence unwraps replies the model packaged as a markdown code
// block, which chat models do routinely even when told to emit bare JSON.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
