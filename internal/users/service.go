package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/verto-labs/verto-inventory/internal/cache"
	"github.com/verto-labs/verto-inventory/internal/validation"
	"github.com/verto-labs/verto-inventory/pkg/auth"
	"github.com/verto-labs/verto-inventory/pkg/config"
	"github.com/verto-labs/verto-inventory/pkg/db"
	"github.com/verto-labs/verto-inventory/pkg/db/models"
	"github.com/verto-labs/verto-inventory/pkg/enums"
	pkgerrors "github.com/verto-labs/verto-inventory/pkg/errors"
	"github.com/verto-labs/verto-inventory/pkg/logger"
	"github.com/verto-labs/verto-inventory/pkg/security"
)

// Service exposes account registration and credential login.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
}

type service struct {
	repo        *Repository
	store       *cache.Cache
	jwtConfig   config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs the user service.
func NewService(repo *Repository, store *cache.Cache, jwtConfig config.JWTConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		store:       store,
		jwtConfig:   jwtConfig,
		passwordCfg: passwordCfg,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// Register creates an account with a hashed password and returns a token.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if reasons := validation.Register(req.Username, req.Password, req.Role); len(reasons) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user validation failed").WithReasons(reasons...)
	}

	role := enums.RoleUser
	if req.Role != nil {
		parsed, err := enums.ParseRole(strings.ToLower(strings.TrimSpace(*req.Role)))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "user validation failed")
		}
		role = parsed
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	account := models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repo.Insert(ctx, &account); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting user")
	}

	return s.authResult(ctx, account)
}

// Login verifies credentials and returns a token. Unknown usernames and bad
// passwords produce the same response.
func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if reasons := validation.Login(req.Username, req.Password); len(reasons) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user validation failed").WithReasons(reasons...)
	}

	account, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid username or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}

	match, err := security.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid username or password")
	}

	return s.authResult(ctx, *account)
}

func (s *service) authResult(ctx context.Context, account models.User) (*AuthResult, error) {
	token, err := auth.MintAccessToken(s.jwtConfig, s.now(), auth.AccessTokenPayload{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}

	dto := toDTO(account)
	s.store.SetTTL(cache.UserKey(dto.UserID), dto, cache.DefaultTTL)

	return &AuthResult{User: dto, Token: token}, nil
}
