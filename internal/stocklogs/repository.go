package stocklog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verto-labs/verto-inventory/pkg/db/models"
)

// Repository persists and reads the stock mutation audit trail.
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

// Record persists one audit row, assigning its identifier.
func (r *Repository) Record(ctx context.Context, log *models.StockLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByProduct returns one window of audit rows for a product, newest first,
// along with the total row count for pagination metadata.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID, skip, limit int) ([]models.StockLog, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.StockLog{}).
		Where("product_id = ?", productID).
		Count(&total).
		Error
	if err != nil {
		return nil, 0, err
	}

	var rows []models.StockLog
	err = r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
