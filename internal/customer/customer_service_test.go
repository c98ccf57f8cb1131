package customer_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Picancianmartin/UniformesCoachSite/internal/customer"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeCustomerRepo struct {
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (customer.User, error)
	UpdateProfileFn  func(ctx context.Context, id uuid.UUID, name, phone string) (customer.User, error)
	UpdatePasswordFn func(ctx context.Context, id uuid.UUID, passwordHash string) error
}

func (f *fakeCustomerRepo) WithTx(tx *sql.Tx) customer.Repository { return f }

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (customer.User, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeCustomerRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (customer.User, error) {
	return f.UpdateProfileFn(ctx, id, name, phone)
}

func (f *fakeCustomerRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return f.UpdatePasswordFn(ctx, id, passwordHash)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func existingUser(t *testing.T, password string) customer.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return customer.User{
		ID:           uuid.New(),
		Name:         "Pietra Martins",
		Phone:        "+5515988887777",
		Email:        "pietra@example.com",
		PasswordHash: string(hash),
		Role:         "CUSTOMER",
	}
}

func TestUpdateProfileNameAndPhone(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	user := existingUser(t, "old-password")

	repo := &fakeCustomerRepo{
		GetByIDFn: func(_ context.Context, id uuid.UUID) (customer.User, error) {
			return user, nil
		},
		UpdateProfileFn: func(_ context.Context, id uuid.UUID, name, phone string) (customer.User, error) {
			assert.Equal(t, user.ID, id)
			u := user
			u.Name = name
			u.Phone = phone
			return u, nil
		},
		UpdatePasswordFn: func(context.Context, uuid.UUID, string) error {
			t.Fatal("password must not be touched")
			return nil
		},
	}

	svc := customer.NewService(db, repo)

	name := "Pietra M. Santos"
	phone := "+5515911112222"
	res, err := svc.UpdateProfile(context.Background(), user.ID.String(), customer.UpdateProfileRequest{
		Name:  &name,
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, name, res.Name)
	assert.Equal(t, phone, res.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfilePasswordRequiresCurrent(t *testing.T) {
	db, _ := newMockDB(t)
	user := existingUser(t, "old-password")

	repo := &fakeCustomerRepo{
		GetByIDFn: func(context.Context, uuid.UUID) (customer.User, error) {
			return user, nil
		},
	}
	svc := customer.NewService(db, repo)

	newPass := "new-password-123"
	_, err := svc.UpdateProfile(context.Background(), user.ID.String(), customer.UpdateProfileRequest{
		Password: &newPass,
	})
	assert.ErrorIs(t, err, customer.ErrCurrentPasswordRequired)

	wrong := "not-the-password"
	_, err = svc.UpdateProfile(context.Background(), user.ID.String(), customer.UpdateProfileRequest{
		Password:        &newPass,
		CurrentPassword: &wrong,
	})
	assert.ErrorIs(t, err, customer.ErrWrongCurrentPassword)
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	user := existingUser(t, "old-password")

	var storedHash string
	repo := &fakeCustomerRepo{
		GetByIDFn: func(context.Context, uuid.UUID) (customer.User, error) {
			return user, nil
		},
		UpdateProfileFn: func(_ context.Context, _ uuid.UUID, name, phone string) (customer.User, error) {
			return user, nil
		},
		UpdatePasswordFn: func(_ context.Context, id uuid.UUID, hash string) error {
			storedHash = hash
			return nil
		},
	}
	svc := customer.NewService(db, repo)

	newPass := "new-password-123"
	current := "old-password"
	_, err := svc.UpdateProfile(context.Background(), user.ID.String(), customer.UpdateProfileRequest{
		Password:        &newPass,
		CurrentPassword: &current,
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(newPass)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUnknownUser(t *testing.T) {
	db, _ := newMockDB(t)
	repo := &fakeCustomerRepo{
		GetByIDFn: func(context.Context, uuid.UUID) (customer.User, error) {
			return customer.User{}, sql.ErrNoRows
		},
	}
	svc := customer.NewService(db, repo)

	_, err := svc.Profile(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)

	_, err = svc.Profile(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}
