package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tiffinbox/marketplace/internal/dal/postgres"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
)

var foodItemColumns = []string{
	"food_item_id",
	"vendor_id",
	"apartment_id",
	"name",
	"description",
	"type",
	"category",
	"serves",
	"tags",
	"price_cents",
	"discount_price_cents",
	"max_orders",
	"is_delivery",
	"delivery_description",
	"delivery_price_cents",
	"expiry",
	"is_visible",
	"created_at",
}

// FoodItemRepository implements the catalog repository for PostgreSQL.
type FoodItemRepository struct {
	client *postgres.Client
}

// NewFoodItemRepository creates a new food item repository.
func NewFoodItemRepository(client *postgres.Client) *FoodItemRepository {
	return &FoodItemRepository{
		client: client,
	}
}

// Insert stores a new food item and returns its id.
func (r *FoodItemRepository) Insert(ctx context.Context, item fooditem.FoodItem) (int64, error) {
	query, args, err := sq.Insert("food_items").
		Columns(
			"vendor_id",
			"apartment_id",
			"name",
			"description",
			"type",
			"category",
			"serves",
			"tags",
			"price_cents",
			"discount_price_cents",
			"max_orders",
			"is_delivery",
			"delivery_description",
			"delivery_price_cents",
			"expiry",
			"is_visible",
			"created_at",
		).
		Values(
			item.VendorID,
			item.ApartmentID,
			item.Name,
			item.Description,
			item.Type,
			item.Category,
			item.Serves,
			item.Tags,
			item.PriceCents,
			item.DiscountPriceCents,
			item.MaxOrders,
			item.IsDelivery,
			item.DeliveryDescription,
			item.DeliveryPriceCents,
			item.Expiry,
			item.IsVisible,
			item.CreatedAt,
		).
		Suffix("RETURNING food_item_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	var id int64
	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert food item: %w", err)
	}

	return id, nil
}

// Update rewrites a food item's descriptive fields and re-shows it.
func (r *FoodItemRepository) Update(ctx context.Context, item fooditem.FoodItem) error {
	query, args, err := sq.Update("food_items").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("type", item.Type).
		Set("category", item.Category).
		Set("serves", item.Serves).
		Set("tags", item.Tags).
		Set("price_cents", item.PriceCents).
		Set("discount_price_cents", item.DiscountPriceCents).
		Set("max_orders", item.MaxOrders).
		Set("expiry", item.Expiry).
		Set("is_visible", true).
		Where(sq.Eq{"food_item_id": item.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.client.Pool().Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update food item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fooditem.ErrNotFound
	}

	return nil
}

// GetByID fetches one item regardless of visibility.
func (r *FoodItemRepository) GetByID(ctx context.Context, id int64) (*fooditem.FoodItem, error) {
	query, args, err := sq.Select(foodItemColumns...).
		From("food_items").
		Where(sq.Eq{"food_item_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	item, err := scanFoodItem(r.client.Pool().QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fooditem.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get food item: %w", err)
	}

	return item, nil
}

// ListByIDs fetches a batch of items regardless of visibility.
func (r *FoodItemRepository) ListByIDs(ctx context.Context, ids []int64) ([]fooditem.FoodItem, error) {
	if len(ids) == 0 {
		return []fooditem.FoodItem{}, nil
	}

	return r.list(ctx, sq.Eq{"food_item_id": ids})
}

// ListVisibleByVendor returns a vendor's visible items.
func (r *FoodItemRepository) ListVisibleByVendor(ctx context.Context, vendorID int64) ([]fooditem.FoodItem, error) {
	return r.list(ctx, sq.Eq{"vendor_id": vendorID, "is_visible": true})
}

// ListByVendor returns all of a vendor's items, hidden ones included.
func (r *FoodItemRepository) ListByVendor(ctx context.Context, vendorID int64) ([]fooditem.FoodItem, error) {
	return r.list(ctx, sq.Eq{"vendor_id": vendorID})
}

// ListVisibleByApartment returns visible items scoped to an apartment,
// optionally narrowed to specific ids.
func (r *FoodItemRepository) ListVisibleByApartment(ctx context.Context, apartmentID int64, ids []int64) ([]fooditem.FoodItem, error) {
	cond := sq.And{sq.Eq{"apartment_id": apartmentID, "is_visible": true}}
	if len(ids) > 0 {
		cond = append(cond, sq.Eq{"food_item_id": ids})
	}

	return r.list(ctx, cond)
}

func (r *FoodItemRepository) list(ctx context.Context, cond sq.Sqlizer) ([]fooditem.FoodItem, error) {
	query, args, err := sq.Select(foodItemColumns...).
		From("food_items").
		Where(cond).
		OrderBy("food_item_id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query food items: %w", err)
	}
	defer rows.Close()

	var result []fooditem.FoodItem
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		result = append(result, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// ListExpiredIDs returns ids of items whose expiry is at or before now.
func (r *FoodItemRepository) ListExpiredIDs(ctx context.Context, now time.Time) ([]int64, error) {
	query, args, err := sq.Select("food_item_id").
		From("food_items").
		Where(sq.LtOrEq{"expiry": now}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired food items: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan food item id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}

// SetVisibility flips the soft-delete flag.
func (r *FoodItemRepository) SetVisibility(ctx context.Context, id int64, visible bool) error {
	query, args, err := sq.Update("food_items").
		Set("is_visible", visible).
		Where(sq.Eq{"food_item_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set food item visibility: %w", err)
	}

	return nil
}

// Delete hard-deletes an item from the catalog.
func (r *FoodItemRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("food_items").
		Where(sq.Eq{"food_item_id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}

	return nil
}

func scanFoodItem(row pgx.Row) (*fooditem.FoodItem, error) {
	var item fooditem.FoodItem
	err := row.Scan(
		&item.ID,
		&item.VendorID,
		&item.ApartmentID,
		&item.Name,
		&item.Description,
		&item.Type,
		&item.Category,
		&item.Serves,
		&item.Tags,
		&item.PriceCents,
		&item.DiscountPriceCents,
		&item.MaxOrders,
		&item.IsDelivery,
		&item.DeliveryDescription,
		&item.DeliveryPriceCents,
		&item.Expiry,
		&item.IsVisible,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}
