package scoring

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
)

// GeminiProvider scores answers through the Google generative language API.
// It is the fallback when the primary provider fails.
type GeminiProvider struct {
	apiKey  string
	model   string
	timeout time.Duration
}

var _ Provider = (*GeminiProvider)(nil)

// NewGemini creates the Gemini scoring provider.
func NewGemini(cfg model.ProviderConfig, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   strings.TrimSpace(cfg.Model),
		timeout: timeout,
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

// ScoreAnswer sends one combined grading prompt and normalizes the JSON
// the model returns.
func (p *GeminiProvider) ScoreAnswer(ctx context.Context, candidate string, q *model.Question, maxMarks float64) (RawScore, error) {
	if p.apiKey == "" {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "configuration", Err: ErrNoCredential}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "create client", Err: err}
	}
	defer cl.Close()

	m := cl.GenerativeModel(p.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.3),
		MaxOutputTokens:  ptrInt32(800),
		ResponseMIMEType: "application/json",
	}

	ref := referenceAnswer(solutionOf(q))
	prompt := buildSinglePrompt(questionPrompt(q), ref, maxMarks, candidate)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "generate content", Err: err}
	}

	txt := firstText(resp)
	if txt == "" {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "empty response"}
	}
	slog.Debug("gemini scoring response", "raw", txt)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(SanitizeJSON(txt)), &parsed); err != nil {
		return RawScore{}, &Error{Provider: p.Name(), Reason: "parse response", Err: err}
	}
	return normalizeResponse(parsed), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if sb.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(sb.String())
}

func ptrFloat32(f float32) *float32 { return &f }
func ptrInt32(i int32) *int32       { return &i }
