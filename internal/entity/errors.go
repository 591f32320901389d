package entity

import "errors"

// Domain errors
var (
	// Catalog errors
	ErrProductNotFound  = errors.New("product not found")
	ErrNoReviews        = errors.New("no reviews found for this product")
	ErrCategoryNotFound = errors.New("category not found")

	// Completion errors
	ErrCompletionFailed  = errors.New("completion failed")
	ErrMalformedOutput   = errors.New("malformed model output")
	ErrRequirementsParse = errors.New("failed to parse requirements")
	ErrSummaryParse      = errors.New("failed to parse analysis results")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidFormat    = errors.New("invalid format")
)
