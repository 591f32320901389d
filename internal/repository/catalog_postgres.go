package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/storefront-ai/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository is the read-only view of the storefront catalog
type CatalogRepository interface {
	FindCandidates(ctx context.Context, filter entity.CatalogFilter, limit int) ([]entity.CandidateProduct, error)
	FindCategoryIDByName(ctx context.Context, name string) (string, error)
	GetProductReviews(ctx context.Context, productID string) (*entity.ProductReviews, error)
}

var _ CatalogRepository = &CatalogPostgres{}

// CatalogPostgres implements CatalogRepository using PostgreSQL
type CatalogPostgres struct {
	db *pgxpool.Pool
}

func NewCatalogPostgres(db *pgxpool.Pool) *CatalogPostgres {
	return &CatalogPostgres{db: db}
}

func (r *CatalogPostgres) FindCandidates(ctx context.Context, filter entity.CatalogFilter, limit int) ([]entity.CandidateProduct, error) {
	query, args := buildCandidateQuery(filter, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}

	products, err := pgx.CollectRows(rows, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("scan candidates: %w", err)
	}

	return products, nil
}

// FindCategoryIDByName returns entity.ErrCategoryNotFound when no category has that name
func (r *CatalogPostgres) FindCategoryIDByName(ctx context.Context, name string) (string, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, selectCategoryByName, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", entity.ErrCategoryNotFound
		}
		return "", fmt.Errorf("get category by name: %w", err)
	}

	return id.String(), nil
}

func (r *CatalogPostgres) GetProductReviews(ctx context.Context, productID string) (*entity.ProductReviews, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		// ids that cannot exist in the catalog are simply not found
		return nil, fmt.Errorf("%w: %s", entity.ErrProductNotFound, productID)
	}

	result := &entity.ProductReviews{ProductID: id.String()}
	err = r.db.QueryRow(ctx, selectProductName, id).Scan(&result.ProductName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	rows, err := r.db.Query(ctx, selectProductReviews, id)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}

	result.Reviews, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Review, error) {
		var review entity.Review
		err := row.Scan(&review.Name, &review.Rating, &review.Comment)
		return review, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan reviews: %w", err)
	}

	return result, nil
}

func scanCandidate(row pgx.CollectableRow) (entity.CandidateProduct, error) {
	var (
		p  entity.CandidateProduct
		id uuid.UUID
	)
	err := row.Scan(&id, &p.Name, &p.Brand, &p.Price, &p.Description, &p.Image, &p.Rating, &p.NumReviews, &p.Category)
	p.ID = id.String()
	return p, err
}
