package user

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/verto-labs/verto-inventory/internal/cache"
	"github.com/verto-labs/verto-inventory/pkg/auth"
	"github.com/verto-labs/verto-inventory/pkg/config"
	"github.com/verto-labs/verto-inventory/pkg/db"
	"github.com/verto-labs/verto-inventory/pkg/db/models"
	pkgerrors "github.com/verto-labs/verto-inventory/pkg/errors"
	"github.com/verto-labs/verto-inventory/pkg/logger"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "verto-inventory",
	ExpirationMinutes: 60,
}

// testPasswordConfig uses the smallest Argon2id parameters the hasher accepts
// to keep the suite fast.
var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

type testEnv struct {
	svc   Service
	store *cache.Cache
	repo  *Repository
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, true, nil)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	store := cache.New(config.CacheConfig{
		DefaultTTL:    5 * time.Minute,
		SweepInterval: time.Minute,
		MaxKeys:       100,
	}, nil)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	repo := NewRepository(client.DB())
	svc, err := NewService(repo, store, testJWTConfig, testPasswordConfig, logg)
	if err != nil {
		t.Fatalf("creating user service: %v", err)
	}

	return testEnv{svc: svc, store: store, repo: repo}
}

func strPtr(s string) *string { return &s }

func mustCode(t *testing.T, err error, want pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, typed.Code(), err)
	}
	return typed
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.Register(context.Background(), RegisterRequest{
		Username: "Alice",
		Password: "Str0ngP@ss",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if result.User.Username != "alice" {
		t.Fatalf("usernames are stored lower-cased, got %q", result.User.Username)
	}
	if result.User.Role != "user" {
		t.Fatalf("expected default role user, got %q", result.User.Role)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := auth.ParseAccessToken(testJWTConfig, result.Token)
	if err != nil {
		t.Fatalf("parsing minted token: %v", err)
	}
	if claims.Username != "alice" || claims.Role.String() != "user" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if !env.store.Has(cache.UserKey(result.User.UserID)) {
		t.Fatalf("expected user projection to be cached")
	}
}

func TestRegisterAdminRole(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.Register(context.Background(), RegisterRequest{
		Username: "root",
		Password: "Str0ngP@ss",
		Role:     strPtr("Admin"),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Role != "admin" {
		t.Fatalf("expected admin role, got %q", result.User.Role)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "Str0ngP@ss"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := env.svc.Register(context.Background(), RegisterRequest{Username: "ALICE", Password: "0therP@ssw"})
	typed := mustCode(t, err, pkgerrors.CodeConflict)
	if typed.Message() != "Username already taken" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Register(context.Background(), RegisterRequest{Username: "ab", Password: "weak"})
	typed := mustCode(t, err, pkgerrors.CodeValidation)
	if len(typed.Reasons()) != 2 {
		t.Fatalf("expected username and password reasons, got %v", typed.Reasons())
	}
}

func TestRegisterDoesNotExposeHash(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "Str0ngP@ss"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, err := env.repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("loading stored user: %v", err)
	}
	if stored.PasswordHash == "Str0ngP@ss" {
		t.Fatalf("password must not be stored in clear")
	}
	if !strings.HasPrefix(stored.PasswordHash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", stored.PasswordHash)
	}
	if result.User.UserID != stored.ID.String() {
		t.Fatalf("dto id mismatch")
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "Str0ngP@ss"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := env.svc.Login(context.Background(), LoginRequest{Username: "Alice", Password: "Str0ngP@ss"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.Username != "alice" || result.Token == "" {
		t.Fatalf("unexpected login result %+v", result)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "Str0ngP@ss"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := env.svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "Wr0ngP@ssw"})
	typed := mustCode(t, err, pkgerrors.CodeUnauthorized)
	if typed.Message() != "Invalid username or password" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestLoginUnknownUserMatchesWrongPasswordResponse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "Str0ngP@ss"})
	typed := mustCode(t, err, pkgerrors.CodeUnauthorized)
	if typed.Message() != "Invalid username or password" {
		t.Fatalf("unknown users must yield the same response as bad passwords, got %q", typed.Message())
	}
}
