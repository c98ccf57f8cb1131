package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Picancianmartin/UniformesCoachSite/internal/auth"
	autherrors "github.com/Picancianmartin/UniformesCoachSite/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ==================== FAKE REPOSITORY ====================

type fakeAuthRepo struct {
	CreateFn     func(ctx context.Context, u auth.User) (auth.User, error)
	GetByEmailFn func(ctx context.Context, email string) (auth.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (auth.User, error)
}

func (f *fakeAuthRepo) Create(ctx context.Context, u auth.User) (auth.User, error) {
	return f.CreateFn(ctx, u)
}
func (f *fakeAuthRepo) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	return f.GetByEmailFn(ctx, email)
}
func (f *fakeAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return f.GetByIDFn(ctx, id)
}

func TestAuthService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success_hashes_password_and_normalizes_email", func(t *testing.T) {
		var created auth.User
		repo := &fakeAuthRepo{
			CreateFn: func(_ context.Context, u auth.User) (auth.User, error) {
				created = u
				u.ID = uuid.New()
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		access, refresh, res, err := svc.Register(context.Background(), auth.RegisterRequest{
			Name:     "Pietra Martin",
			Phone:    "15991762066",
			Email:    "  Pietra@Example.COM ",
			Password: "super-secret-1",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, "pietra@example.com", created.Email)
		assert.Equal(t, auth.RoleCustomer, created.Role)
		assert.Equal(t, "pietra@example.com", res.Email)

		// Stored hash must verify against the original password
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("super-secret-1")))
	})

	t.Run("duplicate_email_maps_to_conflict", func(t *testing.T) {
		repo := &fakeAuthRepo{
			CreateFn: func(_ context.Context, u auth.User) (auth.User, error) {
				return auth.User{}, auth.ErrDuplicateEmail
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Register(context.Background(), auth.RegisterRequest{
			Name:     "X",
			Phone:    "1",
			Email:    "dup@example.com",
			Password: "super-secret-1",
		})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := auth.User{
		ID:           uuid.New(),
		Name:         "Pietra",
		Email:        "pietra@example.com",
		PasswordHash: string(hash),
		Role:         auth.RoleAdmin,
	}

	repo := &fakeAuthRepo{
		GetByEmailFn: func(_ context.Context, email string) (auth.User, error) {
			if email == user.Email {
				return user, nil
			}
			return auth.User{}, sql.ErrNoRows
		},
	}
	svc := auth.NewService(repo)

	t.Run("success", func(t *testing.T) {
		access, _, res, err := svc.Login(context.Background(), "pietra@example.com", "correct-password")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.Equal(t, auth.RoleAdmin, res.Role)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "pietra@example.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown_email_returns_same_error", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}
