package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tiffinbox/marketplace/internal/dal/postgres"
	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
)

// ApartmentRepository implements the apartment repository for PostgreSQL.
type ApartmentRepository struct {
	client *postgres.Client
}

// NewApartmentRepository creates a new apartment repository.
func NewApartmentRepository(client *postgres.Client) *ApartmentRepository {
	return &ApartmentRepository{
		client: client,
	}
}

// Insert stores a new apartment and returns it with its id.
func (r *ApartmentRepository) Insert(ctx context.Context, a apartment.Apartment) (apartment.Apartment, error) {
	query, args, err := sq.Insert("apartments").
		Columns("name", "address", "latitude", "longitude", "pincode").
		Values(a.Name, a.Address, a.Latitude, a.Longitude, a.Pincode).
		Suffix("RETURNING apartment_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return apartment.Apartment{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&a.ID); err != nil {
		return apartment.Apartment{}, fmt.Errorf("failed to insert apartment: %w", err)
	}

	return a, nil
}

// GetByID fetches one apartment.
func (r *ApartmentRepository) GetByID(ctx context.Context, id int64) (*apartment.Apartment, error) {
	query, args, err := sq.Select("apartment_id", "name", "address", "latitude", "longitude", "pincode").
		From("apartments").
		Where(sq.Eq{"apartment_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var a apartment.Apartment
	err = r.client.Pool().QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.Name, &a.Address, &a.Latitude, &a.Longitude, &a.Pincode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apartment.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get apartment: %w", err)
	}

	return &a, nil
}

// ListAll returns every apartment.
func (r *ApartmentRepository) ListAll(ctx context.Context) ([]apartment.Apartment, error) {
	return r.list(ctx, nil, 0)
}

// Search returns apartments whose name contains the fragment, case-insensitive.
func (r *ApartmentRepository) Search(ctx context.Context, fragment string, limit int) ([]apartment.Apartment, error) {
	return r.list(ctx, sq.ILike{"name": "%" + fragment + "%"}, limit)
}

func (r *ApartmentRepository) list(ctx context.Context, cond sq.Sqlizer, limit int) ([]apartment.Apartment, error) {
	builder := sq.Select("apartment_id", "name", "address", "latitude", "longitude", "pincode").
		From("apartments").
		OrderBy("apartment_id ASC").
		PlaceholderFormat(sq.Dollar)
	if cond != nil {
		builder = builder.Where(cond)
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query apartments: %w", err)
	}
	defer rows.Close()

	var result []apartment.Apartment
	for rows.Next() {
		var a apartment.Apartment
		if err := rows.Scan(&a.ID, &a.Name, &a.Address, &a.Latitude, &a.Longitude, &a.Pincode); err != nil {
			return nil, fmt.Errorf("failed to scan apartment: %w", err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
