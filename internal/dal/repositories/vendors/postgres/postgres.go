package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tiffinbox/marketplace/internal/dal/postgres"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
)

var vendorColumns = []string{
	"vendor_id",
	"name",
	"phone_number",
	"apartment_id",
	"fssai",
	"email",
	"note",
	"rating",
}

// VendorRepository implements the vendor repository for PostgreSQL.
type VendorRepository struct {
	client *postgres.Client
}

// NewVendorRepository creates a new vendor repository.
func NewVendorRepository(client *postgres.Client) *VendorRepository {
	return &VendorRepository{
		client: client,
	}
}

// Insert stores a new vendor and returns its id.
func (r *VendorRepository) Insert(ctx context.Context, v vendor.Vendor) (int64, error) {
	query, args, err := sq.Insert("vendors").
		Columns("name", "phone_number", "apartment_id", "fssai").
		Values(v.Name, v.PhoneNumber, v.ApartmentID, v.FSSAI).
		Suffix("RETURNING vendor_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	var id int64
	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert vendor: %w", err)
	}

	return id, nil
}

// GetByID fetches one vendor.
func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*vendor.Vendor, error) {
	v, err := r.get(ctx, sq.Eq{"vendor_id": id})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, vendor.ErrNotFound
	}

	return v, nil
}

// GetByPhone fetches a vendor by phone number; nil when absent.
func (r *VendorRepository) GetByPhone(ctx context.Context, phoneNumber string) (*vendor.Vendor, error) {
	return r.get(ctx, sq.Eq{"phone_number": phoneNumber})
}

func (r *VendorRepository) get(ctx context.Context, cond sq.Sqlizer) (*vendor.Vendor, error) {
	query, args, err := sq.Select(vendorColumns...).
		From("vendors").
		Where(cond).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var v vendor.Vendor
	err = r.client.Pool().QueryRow(ctx, query, args...).
		Scan(&v.ID, &v.Name, &v.PhoneNumber, &v.ApartmentID, &v.FSSAI, &v.Email, &v.Note, &v.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return &v, nil
}

// ListByApartment returns vendors registered to an apartment.
func (r *VendorRepository) ListByApartment(ctx context.Context, apartmentID int64) ([]vendor.Vendor, error) {
	query, args, err := sq.Select(vendorColumns...).
		From("vendors").
		Where(sq.Eq{"apartment_id": apartmentID}).
		OrderBy("vendor_id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var result []vendor.Vendor
	for rows.Next() {
		var v vendor.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.PhoneNumber, &v.ApartmentID, &v.FSSAI, &v.Email, &v.Note, &v.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		result = append(result, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateRating overwrites a vendor's running average rating.
func (r *VendorRepository) UpdateRating(ctx context.Context, id int64, rating float64) error {
	return r.update(ctx, id, sq.Update("vendors").Set("rating", rating))
}

// UpdateProfile overwrites a vendor's contact details.
func (r *VendorRepository) UpdateProfile(ctx context.Context, id int64, email, note string) error {
	return r.update(ctx, id, sq.Update("vendors").Set("email", email).Set("note", note))
}

func (r *VendorRepository) update(ctx context.Context, id int64, builder sq.UpdateBuilder) error {
	query, args, err := builder.
		Where(sq.Eq{"vendor_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.client.Pool().Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vendor.ErrNotFound
	}

	return nil
}
