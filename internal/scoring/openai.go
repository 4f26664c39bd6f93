package scoring

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
)

// OpenAIProvider scores answers through the OpenAI chat completion API.
type OpenAIProvider struct {
	api     *openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAI creates the OpenAI scoring provider.
func NewOpenAI(cfg model.ProviderConfig, timeout time.Duration) *OpenAIProvider {
	p := &OpenAIProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: timeout,
	}
	if cfg.APIKey != "" {
		p.api = openai.NewClient(cfg.APIKey)
	}
	return p
}

func (p *OpenAIProvider) Name() string { return "openai" }

// ScoreAnswer builds the grading prompt, invokes the chat completion
// endpoint and normalizes the response.
func (p *OpenAIProvider) ScoreAnswer(ctx context.Context, candidate string, q *model.Question, maxMarks float64) (RawScore, error) {
	if p.apiKey == "" {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "configuration", Err: ErrNoCredential}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ref := referenceAnswer(solutionOf(q))
	resp, err := p.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(maxMarks)},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(questionPrompt(q), ref, maxMarks, candidate)},
		},
		Temperature: 0.3,
		MaxTokens:   800,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "empty response"}
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("openai scoring response", "raw", raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(SanitizeJSON(raw)), &parsed); err != nil {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "parse response", Err: err}
	}
	return normalizeResponse(parsed), nil
}

func solutionOf(q *model.Question) map[string]any {
	if q == nil {
		return nil
	}
	return q.Solution
}
