package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/ministore/internal/auth"
	"github.com/example/ministore/internal/config"
	"github.com/example/ministore/internal/datamodels/user"
)

// UserService is the user directory: account creation, authentication and
// the bootstrap-admin guarantee.
type UserService struct {
	repo user.Repository
	jwt  *config.JWTConfig
}

func NewUserService(repo user.Repository, jwt *config.JWTConfig) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

// Create registers a new account. An empty role defaults to "user". The
// uniqueness check is the storage layer's unique index, so two concurrent
// creates with one username cannot both succeed.
func (s *UserService) Create(ctx context.Context, username, password, role string) (*user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if role == "" {
		role = user.RoleUser
	}
	if role != user.RoleUser && role != user.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &user.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, username)
		}
		return nil, storageErr(err)
	}
	GetMonitor().RecordUserCreated()
	return u, nil
}

// Authenticate returns the public identity iff the username exists, the
// password verifies and the role matches the login path. Every rejection
// is the same ErrInvalidCredentials, so callers cannot tell an unknown
// username from a wrong password or a wrong role.
func (s *UserService) Authenticate(ctx context.Context, username, password, requiredRole string) (*user.Identity, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, s.reject()
		}
		return nil, storageErr(err)
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, s.reject()
	}
	if u.Role != requiredRole {
		return nil, s.reject()
	}
	return u.Identity(), nil
}

func (s *UserService) reject() error {
	GetMonitor().RecordLoginRejected()
	return ErrInvalidCredentials
}

// Login authenticates and issues a JWT for the identity.
func (s *UserService) Login(ctx context.Context, username, password, requiredRole string) (string, *user.Identity, error) {
	id, err := s.Authenticate(ctx, username, password, requiredRole)
	if err != nil {
		return "", nil, err
	}
	token, err := auth.GenerateToken(s.jwt, id.ID.Hex(), id.Username, id.Role)
	if err != nil {
		return "", nil, err
	}
	return token, id, nil
}

// EnsureAdmin manufactures the bootstrap administrator exactly once. With
// no credential configured it does nothing. Losing the insert race to
// another process still counts as success: the admin exists either way.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return storageErr(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u := &user.User{
		Username:     username,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			return nil
		}
		return storageErr(err)
	}
	return nil
}

// List returns every account for the admin dashboard.
func (s *UserService) List(ctx context.Context) ([]*user.User, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}
