package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the canonical inventory record. Name uniqueness is enforced
// case-insensitively by the storage layer on top of the index declared here.
type Product struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name              string          `gorm:"column:name;not null;uniqueIndex"`
	Description       string          `gorm:"column:description;not null;default:''"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	StockQuantity     int             `gorm:"column:stock_quantity;not null;default:0"`
	LowStockThreshold int             `gorm:"column:low_stock_threshold;not null;default:10"`
	CreatedBy         string          `gorm:"column:created_by;not null"`
	UpdatedBy         string          `gorm:"column:updated_by;not null"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
