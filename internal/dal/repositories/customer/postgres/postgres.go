package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tiffinbox/marketplace/internal/dal/postgres"
	"github.com/tiffinbox/marketplace/internal/service/models/customer"
)

// CustomerRepository implements the customer repository for PostgreSQL.
type CustomerRepository struct {
	client *postgres.Client
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(client *postgres.Client) *CustomerRepository {
	return &CustomerRepository{
		client: client,
	}
}

// Insert stores a new customer and returns its id.
func (r *CustomerRepository) Insert(ctx context.Context, c customer.Customer) (int64, error) {
	query, args, err := sq.Insert("customers").
		Columns("name", "phone_number", "apartment_id").
		Values(c.Name, c.PhoneNumber, c.ApartmentID).
		Suffix("RETURNING customer_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	var id int64
	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert customer: %w", err)
	}

	return id, nil
}

// GetByID fetches one customer.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	c, err := r.get(ctx, sq.Eq{"customer_id": id})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, customer.ErrNotFound
	}

	return c, nil
}

// GetByPhone fetches a customer by phone number; nil when absent.
func (r *CustomerRepository) GetByPhone(ctx context.Context, phoneNumber string) (*customer.Customer, error) {
	return r.get(ctx, sq.Eq{"phone_number": phoneNumber})
}

func (r *CustomerRepository) get(ctx context.Context, cond sq.Sqlizer) (*customer.Customer, error) {
	query, args, err := sq.Select("customer_id", "name", "phone_number", "apartment_id").
		From("customers").
		Where(cond).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var c customer.Customer
	err = r.client.Pool().QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.ApartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &c, nil
}

// ListByIDs fetches a batch of customers.
func (r *CustomerRepository) ListByIDs(ctx context.Context, ids []int64) ([]customer.Customer, error) {
	if len(ids) == 0 {
		return []customer.Customer{}, nil
	}

	query, args, err := sq.Select("customer_id", "name", "phone_number", "apartment_id").
		From("customers").
		Where(sq.Eq{"customer_id": ids}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var result []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.ApartmentID); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// InsertQuery stores a customer support query.
func (r *CustomerRepository) InsertQuery(ctx context.Context, customerID int64, query string) error {
	sqlQuery, args, err := sq.Insert("customer_queries").
		Columns("customer_id", "query").
		Values(customerID, query).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("failed to insert customer query: %w", err)
	}

	return nil
}
