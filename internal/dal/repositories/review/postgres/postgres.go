package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tiffinbox/marketplace/internal/dal/postgres"
	"github.com/tiffinbox/marketplace/internal/service/models/review"
)

// ReviewRepository implements the review repository for PostgreSQL.
type ReviewRepository struct {
	client *postgres.Client
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(client *postgres.Client) *ReviewRepository {
	return &ReviewRepository{
		client: client,
	}
}

// Insert stores a new review and returns it with its id.
func (r *ReviewRepository) Insert(ctx context.Context, rv review.Review) (review.Review, error) {
	query, args, err := sq.Insert("reviews").
		Columns("customer_id", "vendor_id", "rating", "content").
		Values(rv.CustomerID, rv.VendorID, rv.Rating, rv.Content).
		Suffix("RETURNING review_id, created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.CreatedAt); err != nil {
		return review.Review{}, fmt.Errorf("failed to insert review: %w", err)
	}

	return rv, nil
}

// ListByVendor returns a vendor's reviews with reviewer names attached.
func (r *ReviewRepository) ListByVendor(ctx context.Context, vendorID int64) ([]review.Review, error) {
	query, args, err := sq.Select(
		"r.review_id",
		"r.customer_id",
		"r.vendor_id",
		"r.rating",
		"r.content",
		"c.name",
		"r.created_at",
	).
		From("reviews r").
		Join("customers c ON c.customer_id = r.customer_id").
		Where(sq.Eq{"r.vendor_id": vendorID}).
		OrderBy("r.review_id DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var result []review.Review
	for rows.Next() {
		var rv review.Review
		err := rows.Scan(&rv.ID, &rv.CustomerID, &rv.VendorID, &rv.Rating, &rv.Content, &rv.CustomerName, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		result = append(result, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// CountByVendor returns how many reviews a vendor has.
func (r *ReviewRepository) CountByVendor(ctx context.Context, vendorID int64) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("reviews").
		Where(sq.Eq{"vendor_id": vendorID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return count, nil
}
