package entity

import "fmt"

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// CompletionPurpose names the pipeline step a completion call belongs to
type CompletionPurpose string

const (
	PurposeFreeform      CompletionPurpose = "freeform"
	PurposeRequirements  CompletionPurpose = "requirements"
	PurposeRanking       CompletionPurpose = "ranking"
	PurposeComposition   CompletionPurpose = "composition"
	PurposeReviewSummary CompletionPurpose = "review_summary"
)

// CompletionRequest is built per call and never persisted
type CompletionRequest struct {
	Prompt       string
	OutputFormat OutputFormat
	// ModelName overrides the configured model when set
	ModelName string
	Purpose   CompletionPurpose
}

// CompletionResult is the outcome of a single completion call.
// Exactly one of RawText or ErrorDetail is set.
type CompletionResult struct {
	Succeeded   bool
	RawText     string
	ErrorDetail string
}

func CompletionSucceeded(text string) *CompletionResult {
	return &CompletionResult{Succeeded: true, RawText: text}
}

func CompletionFailed(err error) *CompletionResult {
	detail := "unknown completion error"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return &CompletionResult{ErrorDetail: detail}
}

// Err returns nil for a successful result and an ErrCompletionFailed wrap otherwise
func (r *CompletionResult) Err() error {
	if r == nil {
		return fmt.Errorf("%w: no result", ErrCompletionFailed)
	}
	if r.Succeeded {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCompletionFailed, r.ErrorDetail)
}

// OllamaGenerateRequest is the body of POST /api/generate
type OllamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type OllamaGenerateResponse struct {
	Model      string `json:"model"`
	CreatedAt  string `json:"created_at"`
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason,omitempty"`
	// Durations are reported by Ollama in nanoseconds
	TotalDuration   int64 `json:"total_duration,omitempty"`
	EvalCount       int   `json:"eval_count,omitempty"`
	PromptEvalCount int   `json:"prompt_eval_count,omitempty"`
}
