package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verto-labs/verto-inventory/pkg/db/models"
)

// Repository wraps product persistence. Identifier values are assigned here
// rather than by database defaults so the same code path serves Postgres and
// the in-memory sqlite used in tests.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a single product row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName loads a product by case-insensitive name match.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ExistingNames returns which of the provided names already exist, matched
// case-insensitively. The returned values are the stored names.
func (r *Repository) ExistingNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	lowered := make([]string, 0, len(names))
	for _, name := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(name)))
	}

	var existing []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(name) IN ?", lowered).
		Pluck("name", &existing).
		Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// List returns one window of products ordered newest first.
func (r *Repository) List(ctx context.Context, skip, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// Count returns the total number of products.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

// ListLowStock returns one window of products at or below their threshold.
func (r *Repository) ListLowStock(ctx context.Context, skip, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("stock_quantity <= low_stock_threshold").
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// CountLowStock returns how many products sit at or below their threshold.
func (r *Repository) CountLowStock(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("stock_quantity <= low_stock_threshold").
		Count(&total).
		Error
	return total, err
}

// Insert persists a new product row, assigning its identifier.
func (r *Repository) Insert(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// InsertMany persists a batch of product rows in one statement.
func (r *Repository) InsertMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	for i := range products {
		if products[i].ID == uuid.Nil {
			products[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

// Update saves every field of an existing product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// UpdateStock writes the new stock quantity for a product in a single
// statement, which is the serialization point for concurrent adjustments.
// Returns false when no row matched the id.
func (r *Repository) UpdateStock(ctx context.Context, id uuid.UUID, newStock int, updatedBy string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock_quantity": newStock,
			"updated_by":     updatedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByID removes one product row and reports how many rows matched.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}

// DeleteManyByIDs removes every product in the id set.
func (r *Repository) DeleteManyByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}

// ExistingIDs returns which of the provided ids are present.
func (r *Repository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var existing []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).
		Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}
