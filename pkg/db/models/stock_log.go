package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/verto-labs/verto-inventory/pkg/enums"
)

// StockLog is the audit row written after every successful stock mutation.
type StockLog struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	ProductID     uuid.UUID         `gorm:"column:product_id;type:uuid;not null;index:idx_stock_logs_product_created,priority:1"`
	ActionType    enums.StockAction `gorm:"column:action_type;not null"`
	Quantity      int               `gorm:"column:quantity;not null"`
	PreviousStock int               `gorm:"column:previous_stock;not null"`
	NewStock      int               `gorm:"column:new_stock;not null"`
	Reason        *string           `gorm:"column:reason"`
	PerformedBy   string            `gorm:"column:performed_by;not null"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime;index:idx_stock_logs_product_created,priority:2,sort:desc"`
}
