package entity

// ExtractedRequirements is parsed best-effort from model output; every field is optional
type ExtractedRequirements struct {
	Brand     *string  `json:"brand"`
	MinPrice  *float64 `json:"minPrice"`
	MaxPrice  *float64 `json:"maxPrice"`
	Features  []string `json:"features"`
	Category  *string  `json:"category"`
	MinRating *float64 `json:"minRating"`
	Keywords  []string `json:"keywords"`
}

type ReviewSummary struct {
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	SentimentScore float64  `json:"sentiment_score"`
}

// ReviewAnalysis is the outcome of the review summarizer for one product
type ReviewAnalysis struct {
	ProductName string
	ReviewCount int
	Summary     *ReviewSummary
}

// ProductSuggestion is the outcome of the chat pipeline
type ProductSuggestion struct {
	Response     string
	Products     []CandidateProduct
	TotalMatches int
}

// HTTP DTOs

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

type ProductSuggestionRequest struct {
	Message string `json:"message"`
}

type ProductSuggestionResponse struct {
	Success      bool               `json:"success"`
	Response     string             `json:"response"`
	Products     []CandidateProduct `json:"products"`
	TotalMatches int                `json:"totalMatches"`
}

type ReviewAnalysisResponse struct {
	Success     bool           `json:"success"`
	Product     string         `json:"product"`
	ReviewCount int            `json:"reviewCount"`
	Summary     *ReviewSummary `json:"summary"`
}

// ReportFormat is the file format of a downloadable review report
type ReportFormat string

const (
	ReportMarkdown ReportFormat = "markdown"
	ReportDOCX     ReportFormat = "docx"
	ReportPDF      ReportFormat = "pdf"
)

func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportMarkdown, ReportDOCX, ReportPDF:
		return true
	default:
		return false
	}
}
