package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const defaultResultLimit = 20

// AssistantUsecase implements the completion-backed storefront flows
type AssistantUsecase struct {
	completion  CompletionConnector
	catalog     CatalogRepository
	extractor   *RequirementExtractor
	builder     *QueryBuilder
	ranker      *RelevanceRanker
	composer    *ResponseComposer
	summarizer  *ReviewSummarizer
	resultLimit int
	logger      *zap.Logger
}

// NewUsecase creates a new assistant use case
func NewUsecase(
	completion CompletionConnector,
	catalog CatalogRepository,
	categories CategoryLookup,
	resultLimit int,
	logger *zap.Logger,
) *AssistantUsecase {
	if resultLimit <= 0 {
		resultLimit = defaultResultLimit
	}

	return &AssistantUsecase{
		completion:  completion,
		catalog:     catalog,
		extractor:   NewRequirementExtractor(completion),
		builder:     NewQueryBuilder(categories),
		ranker:      NewRelevanceRanker(completion),
		composer:    NewResponseComposer(completion),
		summarizer:  NewReviewSummarizer(catalog, completion),
		resultLimit: resultLimit,
		logger:      logger,
	}
}

// Generate forwards a free-form prompt to the completion backend
func (uc *AssistantUsecase) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt", entity.ErrMissingField)
	}

	ctxzap.Info(ctx, "received prompt", zap.Int("prompt_length", len(prompt)))

	result := uc.completion.Complete(ctx, &entity.CompletionRequest{
		Prompt:       prompt,
		OutputFormat: entity.OutputFormatText,
		Purpose:      entity.PurposeFreeform,
	})
	if err := result.Err(); err != nil {
		return "", err
	}

	return result.RawText, nil
}

// SummarizeReviews runs the review summarizer for one product
func (uc *AssistantUsecase) SummarizeReviews(ctx context.Context, productID string) (*entity.ReviewAnalysis, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("%w: product id", entity.ErrMissingField)
	}

	return uc.summarizer.Summarize(ctx, productID)
}

type suggestionState struct {
	message      string
	requirements *entity.ExtractedRequirements
	filter       entity.CatalogFilter
	candidates   []entity.CandidateProduct
	response     string
}

// SuggestProducts answers a shopping query: extract, query, rank, compose.
// Extraction and catalog failures abort; ranking and composition degrade to fallbacks.
func (uc *AssistantUsecase) SuggestProducts(ctx context.Context, message string) (*entity.ProductSuggestion, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message", entity.ErrMissingField)
	}

	state := &suggestionState{message: message}
	err := runStages(ctx, state,
		stage[suggestionState]{name: "extract", policy: abortOnError, run: uc.extractStage},
		stage[suggestionState]{name: "query", policy: abortOnError, run: uc.queryStage},
		stage[suggestionState]{name: "rank", policy: degradeOnError, run: uc.rankStage},
		stage[suggestionState]{name: "compose", policy: degradeOnError, run: uc.composeStage},
	)
	if err != nil {
		return nil, err
	}

	top := state.candidates
	if top == nil {
		top = []entity.CandidateProduct{}
	}
	if len(top) > maxPresentedProducts {
		top = top[:maxPresentedProducts]
	}

	return &entity.ProductSuggestion{
		Response:     state.response,
		Products:     top,
		TotalMatches: len(state.candidates),
	}, nil
}

func (uc *AssistantUsecase) extractStage(ctx context.Context, st *suggestionState) error {
	req, err := uc.extractor.Extract(ctx, st.message)
	if err != nil {
		return err
	}
	st.requirements = req
	return nil
}

func (uc *AssistantUsecase) queryStage(ctx context.Context, st *suggestionState) error {
	st.filter = uc.builder.Build(ctx, st.requirements)

	candidates, err := uc.catalog.FindCandidates(ctx, st.filter, uc.resultLimit)
	if err != nil {
		return fmt.Errorf("find candidates: %w", err)
	}
	st.candidates = withDefaultRelevance(candidates)

	ctxzap.Info(ctx, "catalog candidates found", zap.Int("count", len(candidates)))
	return nil
}

func (uc *AssistantUsecase) rankStage(ctx context.Context, st *suggestionState) error {
	ranked, err := uc.ranker.Rank(ctx, st.candidates, st.requirements.Features)
	st.candidates = ranked
	return err
}

func (uc *AssistantUsecase) composeStage(ctx context.Context, st *suggestionState) error {
	response, err := uc.composer.Compose(ctx, st.message, st.candidates, len(st.candidates))
	st.response = response
	return err
}
