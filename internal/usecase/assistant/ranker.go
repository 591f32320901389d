package assistant

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	defaultRelevance      = 0.5
	defaultMatchReason    = "Matches general criteria"
	rankingDescriptionLen = 200
)

// RelevanceRanker asks the model to score candidates against the desired features
type RelevanceRanker struct {
	completion CompletionConnector
}

func NewRelevanceRanker(completion CompletionConnector) *RelevanceRanker {
	return &RelevanceRanker{completion: completion}
}

// Rank returns the candidates sorted by relevance, then rating (desc), then price (asc).
// When ranking is not applicable or the model output is unusable the input order is kept
// and the error explains why.
func (r *RelevanceRanker) Rank(ctx context.Context, candidates []entity.CandidateProduct, features []string) ([]entity.CandidateProduct, error) {
	out := withDefaultRelevance(candidates)
	if len(features) == 0 || len(candidates) < 2 {
		return out, nil
	}

	var lines strings.Builder
	for _, p := range candidates {
		fmt.Fprintf(&lines, rankingProductLine,
			p.ID, p.Name, p.Brand, p.Price, p.Rating, p.NumReviews,
			truncate(p.Description, rankingDescriptionLen),
		)
	}

	result := r.completion.Complete(ctx, &entity.CompletionRequest{
		Prompt:       fmt.Sprintf(rankingPrompt, strings.Join(features, ", "), lines.String()),
		OutputFormat: entity.OutputFormatJSON,
		Purpose:      entity.PurposeRanking,
	})
	if err := result.Err(); err != nil {
		return out, err
	}

	scores, err := parseRankings(result.RawText)
	if err != nil {
		ctxzap.Warn(ctx, "ranking output unusable, keeping catalog order",
			zap.String("raw", result.RawText),
			zap.Error(err),
		)
		return out, err
	}

	matched := 0
	for i := range out {
		// ids the model made up match nothing and leave candidates at the default
		if score, ok := scores[out[i].ID]; ok {
			out[i].Relevance = score.relevance
			out[i].MatchReason = score.reason
			matched++
		}
	}

	sortCandidates(out)

	ctxzap.Info(ctx, "candidates ranked",
		zap.Int("candidates", len(out)),
		zap.Int("scored", matched),
	)

	return out, nil
}

func sortCandidates(products []entity.CandidateProduct) {
	slices.SortStableFunc(products, func(a, b entity.CandidateProduct) int {
		if c := cmp.Compare(b.Relevance, a.Relevance); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.Price, b.Price)
	})
}

func withDefaultRelevance(candidates []entity.CandidateProduct) []entity.CandidateProduct {
	out := slices.Clone(candidates)
	for i := range out {
		out[i].Relevance = defaultRelevance
		out[i].MatchReason = defaultMatchReason
	}
	return out
}

type rankingScore struct {
	relevance float64
	reason    string
}

// parseRankings accepts a bare JSON array or an object wrapping one
func parseRankings(raw string) (map[string]rankingScore, error) {
	var doc any
	if err := decodeModelJSON(raw, &doc); err != nil {
		return nil, err
	}

	items, ok := rankingItems(doc)
	if !ok {
		return nil, fmt.Errorf("%w: no ranking array", entity.ErrMalformedOutput)
	}

	scores := make(map[string]rankingScore, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		id, ok := asString(firstPresent(fields, "id", "_id", "productId"))
		if !ok {
			continue
		}

		score := rankingScore{relevance: defaultRelevance, reason: defaultMatchReason}
		if f, ok := asNumber(firstPresent(fields, "relevance", "score")); ok {
			score.relevance = min(max(f, 0), 1)
		}
		if s, ok := asString(firstPresent(fields, "reason", "matchReason")); ok {
			score.reason = s
		}
		scores[id] = score
	}

	return scores, nil
}

func rankingItems(doc any) ([]any, bool) {
	switch t := doc.(type) {
	case []any:
		return t, true
	case map[string]any:
		for _, key := range []string{"rankings", "products", "results"} {
			if items, ok := t[key].([]any); ok {
				return items, true
			}
		}
		for _, v := range t {
			if items, ok := v.([]any); ok {
				return items, true
			}
		}
	}
	return nil, false
}

func firstPresent(fields map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			return v
		}
	}
	return nil
}
