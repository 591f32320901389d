package assistant

import "github.com/futig/storefront-ai/internal/entity"

func toSuggestionResponse(s *entity.ProductSuggestion) entity.ProductSuggestionResponse {
	products := s.Products
	if products == nil {
		products = []entity.CandidateProduct{}
	}

	return entity.ProductSuggestionResponse{
		Success:      true,
		Response:     s.Response,
		Products:     products,
		TotalMatches: s.TotalMatches,
	}
}

func toReviewAnalysisResponse(a *entity.ReviewAnalysis) entity.ReviewAnalysisResponse {
	return entity.ReviewAnalysisResponse{
		Success:     true,
		Product:     a.ProductName,
		ReviewCount: a.ReviewCount,
		Summary:     a.Summary,
	}
}
