package product

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/verto-labs/verto-inventory/internal/validation"
	"github.com/verto-labs/verto-inventory/pkg/db/models"
	"github.com/verto-labs/verto-inventory/pkg/enums"
	pkgerrors "github.com/verto-labs/verto-inventory/pkg/errors"
)

// IncreaseStock raises a product's stock by the requested magnitude.
func (s *service) IncreaseStock(ctx context.Context, actor string, req StockOperationRequest) (*StockResult, error) {
	return s.adjustStock(ctx, actor, req, enums.StockActionAdd)
}

// DecreaseStock lowers a product's stock by the requested magnitude. A
// magnitude above the current stock is rejected, never clamped.
func (s *service) DecreaseStock(ctx context.Context, actor string, req StockOperationRequest) (*StockResult, error) {
	return s.adjustStock(ctx, actor, req, enums.StockActionRemove)
}

// adjustStock is the stock mutation engine. It reads the product once, checks
// the direction-specific precondition against that snapshot, writes the new
// quantity in a single statement, records the audit row, and invalidates the
// caches before returning. The low-stock annotation in the response uses the
// threshold from the pre-update read; the storage update statement is the
// serialization point for concurrent adjustments.
func (s *service) adjustStock(ctx context.Context, actor string, req StockOperationRequest, action enums.StockAction) (*StockResult, error) {
	reasons := validation.ProductID(req.ProductID)
	reasons = append(reasons, validation.StockOperation(req.StockQuantity, req.Reason)...)
	if len(reasons) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock operation validation failed").WithReasons(reasons...)
	}

	id, err := s.parseProductID(req.ProductID)
	if err != nil {
		return nil, err
	}
	magnitude := *req.StockQuantity

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	previousStock := row.StockQuantity
	threshold := row.LowStockThreshold

	var newStock int
	switch action {
	case enums.StockActionAdd:
		newStock = previousStock + magnitude
	case enums.StockActionRemove:
		if magnitude > previousStock {
			return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock,
				fmt.Sprintf("Insufficient stock: requested %d, available %d", magnitude, previousStock)).
				WithReasons(fmt.Sprintf("Requested %d but only %d available", magnitude, previousStock))
		}
		newStock = previousStock - magnitude
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unknown stock action %q", action))
	}

	updated, err := s.repo.UpdateStock(ctx, id, newStock, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating stock")
	}
	if !updated {
		// The row was present at the pre-read, so a zero-row update means
		// the write itself went wrong, not that the product is unknown.
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "updating stock: no rows affected")
	}

	// Audit trail is best-effort: a failed log write never fails the
	// operation. Zero-magnitude adjustments change nothing worth auditing.
	if magnitude > 0 {
		logRow := models.StockLog{
			ProductID:     id,
			ActionType:    action,
			Quantity:      magnitude,
			PreviousStock: previousStock,
			NewStock:      newStock,
			Reason:        req.Reason,
			PerformedBy:   actor,
		}
		if err := s.logs.Record(ctx, &logRow); err != nil {
			logCtx := s.logg.WithProductID(ctx, id.String())
			s.logg.Warn(logCtx, fmt.Sprintf("stock log write failed: %v", err))
		}
	}

	s.invalidateProductCaches(id)

	return &StockResult{
		ProductID:         id.String(),
		ProductName:       row.Name,
		PreviousStock:     previousStock,
		NewStock:          newStock,
		UpdatedBy:         actor,
		LowStockThreshold: threshold,
		IsLowStock:        IsLowStock(newStock, threshold),
		StockDeficit:      StockDeficit(newStock, threshold),
	}, nil
}
