package model

import "time"

// Question is a stored question record. Spec and Solution are JSON trees
// whose shape depends on TypeKey; the engine only reads them.
type Question struct {
	ID       int64          `json:"id"`
	TypeKey  string         `json:"type"`
	Spec     map[string]any `json:"spec"`
	Solution map[string]any `json:"solution,omitempty"`
	Marks    float64        `json:"marks"`
}

// Verdict is the tri-state outcome of grading a single answer.
type Verdict int

const (
	// VerdictIncorrect means the answer was graded and failed.
	VerdictIncorrect Verdict = iota
	// VerdictCorrect means the answer was graded and passed.
	VerdictCorrect
	// VerdictNeedsReview means automated scoring failed and a teacher
	// must grade the answer manually. Never conflated with incorrect.
	VerdictNeedsReview
)

// Bool returns the wire representation: true, false, or nil for review.
func (v Verdict) Bool() *bool {
	switch v {
	case VerdictCorrect:
		b := true
		return &b
	case VerdictIncorrect:
		b := false
		return &b
	default:
		return nil
	}
}

// ValidationResult is what a single validator returns.
type ValidationResult struct {
	Verdict        Verdict
	AwardedMarks   float64
	ScoringDetails map[string]any
}

// ValidationRequest is the inbound request body for POST /validate.
type ValidationRequest struct {
	Input ValidationInput `json:"input"`
}

// ValidationInput carries the question reference and the user's answer.
type ValidationInput struct {
	QuestionID int64          `json:"questionId"`
	Answer     map[string]any `json:"answer"`
}

// ValidationResponse is the outward-facing result of validating an answer.
// IsCorrect is nil when the answer was submitted for teacher review.
type ValidationResponse struct {
	IsCorrect    *bool          `json:"isCorrect"`
	AwardedMarks float64        `json:"awardedMarks"`
	TotalMarks   float64        `json:"totalMarks"`
	Solution     map[string]any `json:"solution"`
	Feedback     string         `json:"feedback"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// InfoResponse is the GET /info body.
type InfoResponse struct {
	ActiveProfile string `json:"activeProfile"`
	CurrentTime   string `json:"currentTime"`
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// User is a registered portal user.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProviderConfig holds credentials for one LLM scoring provider.
type ProviderConfig struct {
	APIKey string
	Model  string
}

// Config is the static service configuration, read once at startup.
type Config struct {
	Addr         string
	DBPath       string
	Profile      string
	OpenAI       ProviderConfig
	Gemini       ProviderConfig
	LLMTimeout   time.Duration
	PassingScore float64
}
