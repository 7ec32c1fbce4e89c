package stocklog

import (
	"time"

	"github.com/verto-labs/verto-inventory/pkg/db/models"
	"github.com/verto-labs/verto-inventory/pkg/pagination"
)

// StockLogDTO is the API projection of one audit row.
type StockLogDTO struct {
	StockLogID    string    `json:"stockLogId"`
	ProductID     string    `json:"productId"`
	ActionType    string    `json:"actionType"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	Reason        *string   `json:"reason,omitempty"`
	PerformedBy   string    `json:"performedBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListResult pairs one page of audit rows with pagination metadata.
type ListResult struct {
	StockLogs  []StockLogDTO     `json:"stockLogs"`
	Pagination pagination.Result `json:"pagination"`
}

// ToDTO projects a storage row into its API shape.
func ToDTO(log models.StockLog) StockLogDTO {
	return StockLogDTO{
		StockLogID:    log.ID.String(),
		ProductID:     log.ProductID.String(),
		ActionType:    log.ActionType.String(),
		Quantity:      log.Quantity,
		PreviousStock: log.PreviousStock,
		NewStock:      log.NewStock,
		Reason:        log.Reason,
		PerformedBy:   log.PerformedBy,
		CreatedAt:     log.CreatedAt,
	}
}

// ToDTOs projects a slice of storage rows.
func ToDTOs(rows []models.StockLog) []StockLogDTO {
	dtos := make([]StockLogDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ToDTO(row))
	}
	return dtos
}
