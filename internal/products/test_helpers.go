package product

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/verto-labs/verto-inventory/internal/cache"
	stocklog "github.com/verto-labs/verto-inventory/internal/stocklogs"
	"github.com/verto-labs/verto-inventory/pkg/config"
	"github.com/verto-labs/verto-inventory/pkg/db"
	"github.com/verto-labs/verto-inventory/pkg/db/models"
	"github.com/verto-labs/verto-inventory/pkg/logger"
)

// newTestClient opens a private in-memory sqlite database named after the
// test, migrated to the current schema.
func newTestClient(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, true, nil)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(&models.Product{}, &models.User{}, &models.StockLog{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return client
}

type testEnv struct {
	svc    Service
	store  *cache.Cache
	client *db.Client
	logs   *stocklog.Repository
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	client := newTestClient(t)
	store := cache.New(config.CacheConfig{
		DefaultTTL:    5 * time.Minute,
		SweepInterval: time.Minute,
		MaxKeys:       1000,
	}, nil)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	logs := stocklog.NewRepository(client.DB())
	svc, err := NewService(NewRepository(client.DB()), logs, client, store, logg)
	if err != nil {
		t.Fatalf("creating product service: %v", err)
	}

	return testEnv{svc: svc, store: store, client: client, logs: logs}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func createReq(name string, price float64) CreateProductRequest {
	return CreateProductRequest{
		ProductName: strPtr(name),
		Price:       floatPtr(price),
	}
}

// mustCreateProduct persists a product through the service with the given
// stock and threshold.
func mustCreateProduct(t *testing.T, svc Service, name string, stock, threshold int) *ProductDTO {
	t.Helper()

	req := createReq(name, 9.99)
	req.StockQuantity = intPtr(stock)
	req.LowStockThreshold = intPtr(threshold)

	dto, err := svc.Create(context.Background(), "tester", req)
	if err != nil {
		t.Fatalf("creating product %q: %v", name, err)
	}
	return dto
}
