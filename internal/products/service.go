package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verto-labs/verto-inventory/internal/cache"
	stocklog "github.com/verto-labs/verto-inventory/internal/stocklogs"
	"github.com/verto-labs/verto-inventory/internal/validation"
	"github.com/verto-labs/verto-inventory/pkg/db"
	"github.com/verto-labs/verto-inventory/pkg/db/models"
	pkgerrors "github.com/verto-labs/verto-inventory/pkg/errors"
	"github.com/verto-labs/verto-inventory/pkg/logger"
	"github.com/verto-labs/verto-inventory/pkg/pagination"
)

// Service exposes the product catalogue and stock operations.
type Service interface {
	Create(ctx context.Context, actor string, req CreateProductRequest) (*ProductDTO, error)
	CreateBatch(ctx context.Context, actor string, reqs []CreateProductRequest) ([]ProductDTO, error)
	Get(ctx context.Context, productID string) (*ProductDTO, error)
	Update(ctx context.Context, actor, productID string, req UpdateProductRequest) (*ProductDTO, error)
	Delete(ctx context.Context, productID string) error
	BulkDelete(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResult, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
	ListLowStock(ctx context.Context, params pagination.Params) (*ListResult, error)
	IncreaseStock(ctx context.Context, actor string, req StockOperationRequest) (*StockResult, error)
	DecreaseStock(ctx context.Context, actor string, req StockOperationRequest) (*StockResult, error)
	StockLogs(ctx context.Context, productID string, params pagination.Params) (*stocklog.ListResult, error)
}

type service struct {
	repo     *Repository
	logs     *stocklog.Repository
	dbClient *db.Client
	store    *cache.Cache
	logg     *logger.Logger
}

// NewService constructs the product service.
func NewService(repo *Repository, logs *stocklog.Repository, dbClient *db.Client, store *cache.Cache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if logs == nil {
		return nil, fmt.Errorf("stock log repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		logs:     logs,
		dbClient: dbClient,
		store:    store,
		logg:     logg,
	}, nil
}

// Create validates, normalizes and persists one product, then invalidates the
// listing caches.
func (s *service) Create(ctx context.Context, actor string, req CreateProductRequest) (*ProductDTO, error) {
	if reasons := validation.CreateProduct(req.validationInput()); len(reasons) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product validation failed").WithReasons(reasons...)
	}

	row := normalizeCreate(req, actor)

	if _, err := s.repo.FindByName(ctx, row.Name); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Product with this productName already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking product name")
	}

	if err := s.repo.Insert(ctx, &row); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Product with this productName already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting product")
	}

	s.invalidateProductCaches(row.ID)

	dto := toDTO(row)
	return &dto, nil
}

// CreateBatch validates every element, rejects duplicate or taken names, and
// inserts all rows in one transaction.
func (s *service) CreateBatch(ctx context.Context, actor string, reqs []CreateProductRequest) ([]ProductDTO, error) {
	inputs := make([]validation.ProductInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, req.validationInput())
	}
	if reasons := validation.ProductsArray(inputs); len(reasons) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product validation failed").WithReasons(reasons...)
	}

	rows := make([]models.Product, 0, len(reqs))
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		row := normalizeCreate(req, actor)
		rows = append(rows, row)
		names = append(names, row.Name)
	}

	taken, err := s.repo.ExistingNames(ctx, names)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking product names")
	}
	if len(taken) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("Products with these names already exist: %s", strings.Join(taken, ", ")))
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).InsertMany(ctx, rows)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Product with this productName already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting products")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	s.invalidateProductCaches(ids...)

	return toDTOs(rows), nil
}

// Get returns one product through the single-entity cache.
func (s *service) Get(ctx context.Context, productID string) (*ProductDTO, error) {
	id, err := s.parseProductID(productID)
	if err != nil {
		return nil, err
	}

	key := cache.ProductKey(id.String())
	if cached, ok := s.store.Get(key); ok {
		if dto, valid := cached.(ProductDTO); valid {
			return &dto, nil
		}
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	dto := toDTO(*row)
	s.store.SetTTL(key, dto, cache.DefaultTTL)
	return &dto, nil
}

// Update applies a partial update after validation, rejecting name conflicts.
func (s *service) Update(ctx context.Context, actor, productID string, req UpdateProductRequest) (*ProductDTO, error) {
	id, err := s.parseProductID(productID)
	if err != nil {
		return nil, err
	}
	if reasons := validation.UpdateProduct(req.validationInput()); len(reasons) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product validation failed").WithReasons(reasons...)
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	if req.ProductName != nil {
		trimmed := strings.TrimSpace(*req.ProductName)
		if !strings.EqualFold(trimmed, row.Name) {
			if _, err := s.repo.FindByName(ctx, trimmed); err == nil {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "Product with this productName already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking product name")
			}
		}
	}

	applyUpdate(row, req, actor)

	if err := s.repo.Update(ctx, row); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Product with this productName already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}

	s.invalidateProductCaches(row.ID)

	dto := toDTO(*row)
	return &dto, nil
}

// Delete removes one product after an existence check.
func (s *service) Delete(ctx context.Context, productID string) error {
	id, err := s.parseProductID(productID)
	if err != nil {
		return err
	}

	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}

	s.invalidateProductCaches(id)
	return nil
}

// BulkDelete removes a bounded id set all-or-nothing: every id must exist or
// nothing is deleted.
func (s *service) BulkDelete(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResult, error) {
	if reasons := validation.BulkDelete(req.ProductIDs); len(reasons) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product validation failed").WithReasons(reasons...)
	}

	ids := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product validation failed").WithReasons("Invalid product ID")
		}
		ids = append(ids, id)
	}

	existing, err := s.repo.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking product ids")
	}
	if len(existing) != len(ids) {
		present := make(map[uuid.UUID]bool, len(existing))
		for _, id := range existing {
			present[id] = true
		}
		var missing []string
		for _, id := range ids {
			if !present[id] {
				missing = append(missing, id.String())
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("Products not found: %s", strings.Join(missing, ", ")))
	}

	var deleted int64
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		count, err := s.repo.WithTx(tx).DeleteManyByIDs(ctx, ids)
		if err != nil {
			return err
		}
		deleted = count
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting products")
	}

	s.invalidateProductCaches(ids...)
	return &BulkDeleteResult{DeletedCount: deleted}, nil
}

// List returns one listing page through the cache, annotating each row with
// its low-stock state.
func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	key := cache.ProductListKey(params.Page, params.Limit, "")
	if cached, ok := s.store.Get(key); ok {
		if result, valid := cached.(ListResult); valid {
			return &result, nil
		}
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting products")
	}
	rows, err := s.repo.List(ctx, params.Skip, params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}

	result := ListResult{
		Products:   toDTOs(rows),
		Pagination: pagination.NewResult(params.Page, params.Limit, int(total)),
	}
	s.store.SetTTL(key, result, cache.ListingTTL)
	return &result, nil
}

// ListLowStock returns one low-stock page through its shorter-lived cache.
func (s *service) ListLowStock(ctx context.Context, params pagination.Params) (*ListResult, error) {
	key := cache.LowStockListKey(params.Page, params.Limit)
	if cached, ok := s.store.Get(key); ok {
		if result, valid := cached.(ListResult); valid {
			return &result, nil
		}
	}

	total, err := s.repo.CountLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting low stock products")
	}
	rows, err := s.repo.ListLowStock(ctx, params.Skip, params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing low stock products")
	}

	result := ListResult{
		Products:   toDTOs(rows),
		Pagination: pagination.NewResult(params.Page, params.Limit, int(total)),
	}
	s.store.SetTTL(key, result, cache.LowStockTTL)
	return &result, nil
}

// StockLogs returns the audit trail for one product, newest first.
func (s *service) StockLogs(ctx context.Context, productID string, params pagination.Params) (*stocklog.ListResult, error) {
	id, err := s.parseProductID(productID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	rows, total, err := s.logs.ListByProduct(ctx, id, params.Skip, params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stock logs")
	}

	return &stocklog.ListResult{
		StockLogs:  stocklog.ToDTOs(rows),
		Pagination: pagination.NewResult(params.Page, params.Limit, int(total)),
	}, nil
}

func (s *service) parseProductID(productID string) (uuid.UUID, error) {
	if reasons := validation.ProductID(productID); len(reasons) > 0 {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "product validation failed").WithReasons(reasons...)
	}
	return uuid.Parse(productID)
}

// invalidateProductCaches clears every listing-shaped entry, general and
// low-stock alike, then drops the single-entity keys for the affected ids.
// Runs after the write and before the response returns.
func (s *service) invalidateProductCaches(ids ...uuid.UUID) {
	s.store.ClearByPattern(cache.ProductNamespace)
	for _, id := range ids {
		s.store.Delete(cache.ProductKey(id.String()))
	}
}
