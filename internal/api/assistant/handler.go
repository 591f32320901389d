package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/pkg/formatter"
	"github.com/futig/storefront-ai/internal/pkg/logger"
	"github.com/futig/storefront-ai/internal/pkg/response"
	"github.com/futig/storefront-ai/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	msgPromptRequired    = "Prompt is required"
	msgGenerateFailed    = "Failed to generate response"
	msgInvalidBody       = "Invalid request body"
	msgNoReviews         = "No reviews found for this product"
	msgReviewFailed      = "Review analysis failed"
	msgMessageRequired   = "Message is required"
	msgSuggestionFailed  = "Failed to process your request"
	msgSuggestionRecover = "Please try rephrasing your question or try again later"
	msgReportFormat      = "Unsupported report format"
	msgReportFailed      = "Failed to render review report"
)

type Handler struct {
	usecase    AssistantUsecase
	validator  *validator.Validator
	formatters *formatter.Factory
}

func NewHandler(usecase AssistantUsecase, validator *validator.Validator, formatters *formatter.Factory) *Handler {
	return &Handler{
		usecase:    usecase,
		validator:  validator,
		formatters: formatters,
	}
}

// Generate handles GET /api/ollama - free-form completion.
// The prompt is read from the JSON body, with ?prompt= as a fallback for body-less clients.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Generate")

	var req entity.GenerateRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.Prompt == "" {
		req.Prompt = r.URL.Query().Get("prompt")
	}

	if err := h.validator.ValidateGenerate(&req); err != nil {
		ctxzap.Warn(ctx, "invalid generate request", zap.Error(err))
		if errors.Is(err, entity.ErrMissingField) {
			response.Error(w, http.StatusBadRequest, msgPromptRequired)
		} else {
			response.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	text, err := h.usecase.Generate(ctx, req.Prompt)
	if err != nil {
		ctxzap.Error(ctx, "completion failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}

	ctxzap.Debug(ctx, "completion generated", zap.Int("response_length", len(text)))
	response.Success(w, entity.GenerateResponse{Response: text})
}

// AnalyzeReviews handles GET /api/ollama/genaireview/{id} - review summary for a product
func (h *Handler) AnalyzeReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("product_id", productID),
		zap.String("action", "AnalyzeReviews"),
	)

	if err := h.validator.ValidateProductID(productID); err != nil {
		ctxzap.Warn(ctx, "invalid product id", zap.Error(err))
		response.Failure(w, http.StatusNotFound, msgNoReviews, "", "")
		return
	}

	analysis, err := h.usecase.SummarizeReviews(ctx, productID)
	if err != nil {
		if errors.Is(err, entity.ErrNoReviews) {
			ctxzap.Info(ctx, "product has no reviews")
			response.Failure(w, http.StatusNotFound, msgNoReviews, "", "")
			return
		}
		ctxzap.Error(ctx, "review analysis failed", zap.Error(err))
		response.Failure(w, http.StatusInternalServerError, msgReviewFailed, err.Error(), "")
		return
	}

	ctxzap.Info(ctx, "reviews analyzed", zap.Int("review_count", analysis.ReviewCount))
	response.Success(w, toReviewAnalysisResponse(analysis))
}

// ReviewReport handles GET /api/ollama/genaireview/{id}/report?format= - review summary as a file
func (h *Handler) ReviewReport(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("product_id", productID),
		zap.String("action", "ReviewReport"),
	)

	format, err := h.validator.ValidateReportFormat(r.URL.Query().Get("format"))
	if err != nil {
		ctxzap.Warn(ctx, "invalid report format", zap.Error(err))
		response.Failure(w, http.StatusBadRequest, msgReportFormat, err.Error(), "")
		return
	}

	f, err := h.formatters.Create(format)
	if err != nil {
		response.Failure(w, http.StatusBadRequest, msgReportFormat, err.Error(), "")
		return
	}

	analysis, err := h.usecase.SummarizeReviews(ctx, productID)
	if err != nil {
		if errors.Is(err, entity.ErrNoReviews) {
			response.Failure(w, http.StatusNotFound, msgNoReviews, "", "")
			return
		}
		ctxzap.Error(ctx, "review analysis failed", zap.Error(err))
		response.Failure(w, http.StatusInternalServerError, msgReviewFailed, err.Error(), "")
		return
	}

	data, err := f.Format(analysis)
	if err != nil {
		ctxzap.Error(ctx, "failed to render report", zap.Error(err), zap.String("format", string(format)))
		response.Failure(w, http.StatusInternalServerError, msgReportFailed, err.Error(), "")
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reviews-%s%s"`, productID, f.FileExtension()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		ctxzap.Warn(ctx, "failed to write report", zap.Error(err))
	}
}

// SuggestProducts handles POST /api/ollama/productsuggestion - chat product suggestions
func (h *Handler) SuggestProducts(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SuggestProducts")

	var req entity.ProductSuggestionRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Failure(w, http.StatusBadRequest, msgInvalidBody, err.Error(), "")
		return
	}

	if err := h.validator.ValidateProductSuggestion(&req); err != nil {
		ctxzap.Warn(ctx, "invalid suggestion request", zap.Error(err))
		if errors.Is(err, entity.ErrMissingField) {
			response.Failure(w, http.StatusBadRequest, msgMessageRequired, "", "")
		} else {
			response.Failure(w, http.StatusBadRequest, err.Error(), "", "")
		}
		return
	}

	suggestion, err := h.usecase.SuggestProducts(ctx, req.Message)
	if err != nil {
		ctxzap.Error(ctx, "product suggestion failed", zap.Error(err))
		response.Failure(w, http.StatusInternalServerError, msgSuggestionFailed, err.Error(), msgSuggestionRecover)
		return
	}

	ctxzap.Info(ctx, "products suggested",
		zap.Int("total_matches", suggestion.TotalMatches),
		zap.Int("presented", len(suggestion.Products)),
	)
	response.Success(w, toSuggestionResponse(suggestion))
}

// decodeOptionalBody treats an absent body as an empty request
func decodeOptionalBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
