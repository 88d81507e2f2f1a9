package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/ministore/internal/config"
	"github.com/example/ministore/internal/datamodels/user"
)

// memUserRepo mimics the users collection, unique index included.
type memUserRepo struct {
	users map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*user.User)}
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.Username]; ok {
		return user.ErrDuplicateUsername
	}
	u.ID = primitive.NewObjectID()
	r.users[u.Username] = u
	return nil
}

func (r *memUserRepo) ListAll(_ context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

// failUserRepo simulates an unreachable store.
type failUserRepo struct{}

func (failUserRepo) GetByUsername(context.Context, string) (*user.User, error) {
	return nil, errors.New("connection refused")
}
func (failUserRepo) Create(context.Context, *user.User) error {
	return errors.New("connection refused")
}
func (failUserRepo) ListAll(context.Context) ([]*user.User, error) {
	return nil, errors.New("connection refused")
}

func newUserService(repo user.Repository) *UserService {
	return NewUserService(repo, &config.JWTConfig{Secret: "test-secret"})
}

func TestCreateAndAuthenticate(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	ctx := context.Background()

	u, err := svc.Create(ctx, "alice", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, u.Role)
	assert.NotEqual(t, "secret", u.PasswordHash, "password must be stored hashed")

	id, err := svc.Authenticate(ctx, "alice", "secret", user.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.ID)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, user.RoleUser, id.Role)
}

func TestAuthenticateRejections(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "secret", "")
	require.NoError(t, err)

	// Wrong password, unknown username and wrong role must all report
	// the exact same error, so account existence never leaks.
	_, err = svc.Authenticate(ctx, "alice", "wrong", user.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "secret", user.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "alice", "secret", user.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "bob", "pw1", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "bob", "pw2", "")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateInvalidInput(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "pw", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "carol", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "carol", "pw", "superuser")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newUserService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "dave", "secret", user.RoleAdmin)
	require.NoError(t, err)

	token, id, err := svc.Login(ctx, "dave", "secret", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.RoleAdmin, id.Role)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	repo := newMemUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "secret"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "secret"))

	admins := 0
	for _, u := range repo.users {
		if u.Role == user.RoleAdmin {
			admins++
		}
	}
	assert.Equal(t, 1, admins, "repeated ensure must not mint more admins")

	id, err := svc.Authenticate(ctx, "admin", "secret", user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, id.Role)
}

func TestEnsureAdminWithoutCredential(t *testing.T) {
	repo := newMemUserRepo()
	svc := newUserService(repo)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
	assert.Empty(t, repo.users)
}

func TestUserStorageUnavailable(t *testing.T) {
	svc := newUserService(failUserRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "secret", "")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = svc.Authenticate(ctx, "alice", "secret", user.RoleUser)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
