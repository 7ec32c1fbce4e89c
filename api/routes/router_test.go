package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/verto-labs/verto-inventory/internal/cache"
	products "github.com/verto-labs/verto-inventory/internal/products"
	stocklogs "github.com/verto-labs/verto-inventory/internal/stocklogs"
	users "github.com/verto-labs/verto-inventory/internal/users"
	"github.com/verto-labs/verto-inventory/pkg/config"
	"github.com/verto-labs/verto-inventory/pkg/db"
	"github.com/verto-labs/verto-inventory/pkg/db/models"
	"github.com/verto-labs/verto-inventory/pkg/logger"
	"github.com/verto-labs/verto-inventory/pkg/types"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8000"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "verto-inventory",
			ExpirationMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		},
		Cache: config.CacheConfig{
			DefaultTTL:    5 * time.Minute,
			SweepInterval: time.Minute,
			MaxKeys:       1000,
		},
		RateLimit: config.RateLimitConfig{
			GlobalWindow: 15 * time.Minute,
			GlobalLimit:  10000,
			AuthWindow:   5 * time.Minute,
			AuthLimit:    10000,
		},
	}
}

// newTestServer wires the full router against an in-memory database.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, true, nil)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.DB().AutoMigrate(&models.Product{}, &models.User{}, &models.StockLog{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	store := cache.New(cfg.Cache, nil)

	productService, err := products.NewService(
		products.NewRepository(client.DB()),
		stocklogs.NewRepository(client.DB()),
		client,
		store,
		logg,
	)
	if err != nil {
		t.Fatalf("creating product service: %v", err)
	}
	userService, err := users.NewService(users.NewRepository(client.DB()), store, cfg.JWT, cfg.Password, logg)
	if err != nil {
		t.Fatalf("creating user service: %v", err)
	}

	return NewRouter(Dependencies{
		Config:         cfg,
		Logger:         logg,
		DBPinger:       client,
		ProductService: productService,
		UserService:    userService,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func registerAndGetToken(t *testing.T, handler http.Handler, username, role string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":"Str0ngP@ss","role":%q}`, username, role)
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/users/register", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding register response: %v", err)
	}
	if envelope.Data.Token == "" {
		t.Fatalf("expected a token in the register response")
	}
	return envelope.Data.Token
}

func TestHealthEndpoints(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/health/live", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("live returned %d", rec.Code)
	}
	if rec.Header().Get("X-Verto-Env") != "test" {
		t.Fatalf("expected env header, got %q", rec.Header().Get("X-Verto-Env"))
	}

	rec = doJSON(t, handler, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready returned %d", rec.Code)
	}
}

func TestProductsRequireAuthentication(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/products", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestProductWritesRequireAdmin(t *testing.T) {
	handler := newTestServer(t)
	userToken := registerAndGetToken(t, handler, "regular", "user")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/products", userToken, `{"productName":"Widget","price":9.99}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin create, got %d", rec.Code)
	}

	// reads stay open to every authenticated role
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/products", userToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for authenticated list, got %d", rec.Code)
	}
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	handler := newTestServer(t)
	adminToken := registerAndGetToken(t, handler, "boss", "admin")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/products", adminToken,
		`{"productName":"Widget","price":9.99,"stockQuantity":5,"lowStockThreshold":10}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data struct {
			Product struct {
				ProductID    string `json:"productId"`
				IsLowStock   bool   `json:"isLowStock"`
				StockDeficit int    `json:"stockDeficit"`
			} `json:"product"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	productID := created.Data.Product.ProductID
	if productID == "" {
		t.Fatalf("expected a product id")
	}
	if !created.Data.Product.IsLowStock || created.Data.Product.StockDeficit != 5 {
		t.Fatalf("expected low-stock annotation with deficit 5, got %+v", created.Data.Product)
	}

	// the new product shows up on the low-stock listing
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/products/low-stock", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("low-stock returned %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), productID) {
		t.Fatalf("expected product on the low-stock page")
	}

	// add stock over the threshold and confirm it leaves the listing
	rec = doJSON(t, handler, http.MethodPut, "/api/v1/products/add-stock", adminToken,
		fmt.Sprintf(`{"productId":%q,"stockQuantity":10}`, productID))
	if rec.Code != http.StatusOK {
		t.Fatalf("add-stock returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/products/low-stock", adminToken, "")
	if strings.Contains(rec.Body.String(), productID) {
		t.Fatalf("product with stock above threshold must not be listed as low")
	}

	// removing more than available is rejected
	rec = doJSON(t, handler, http.MethodPut, "/api/v1/products/remove-stock", adminToken,
		fmt.Sprintf(`{"productId":%q,"stockQuantity":100}`, productID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for insufficient stock, got %d", rec.Code)
	}
	var failure types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&failure); err != nil {
		t.Fatalf("decoding failure envelope: %v", err)
	}
	if failure.Message != "Insufficient stock: requested 100, available 15" {
		t.Fatalf("unexpected message %q", failure.Message)
	}

	// audit trail recorded the successful adjustment
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/products/"+productID+"/stock-logs", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stock-logs returned %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"add"`) {
		t.Fatalf("expected an add entry in the audit trail: %s", rec.Body.String())
	}

	// delete and confirm the 404 afterwards
	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/products/"+productID, adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete returned %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/products/"+productID, adminToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestLoginOverHTTP(t *testing.T) {
	handler := newTestServer(t)
	registerAndGetToken(t, handler, "alice", "user")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/users/login", "", `{"username":"alice","password":"Str0ngP@ss"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/users/login", "", `{"username":"alice","password":"Wr0ngP@ssw"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad password, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/users/logout", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout returned %d", rec.Code)
	}
}
