package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Picancianmartin/UniformesCoachSite/internal/pkg/apperror"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=customer_service.go -destination=../mock/customer/customer_service_mock.go -package=mock
type Service interface {
	Profile(ctx context.Context, customerID string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, customerID string, req UpdateProfileRequest) (ProfileResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Profile(ctx context.Context, customerID string) (ProfileResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return ProfileResponse{}, ErrCustomerNotFound
	}

	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ProfileResponse{}, ErrCustomerNotFound
	}
	if err != nil {
		return ProfileResponse{}, apperror.Wrap(ErrProfileFailed, err)
	}
	return toProfileResponse(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, customerID string, req UpdateProfileRequest) (ProfileResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return ProfileResponse{}, ErrCustomerNotFound
	}

	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ProfileResponse{}, ErrCustomerNotFound
	}
	if err != nil {
		return ProfileResponse{}, apperror.Wrap(ErrProfileFailed, err)
	}

	// Changing the password always requires proving the current one.
	var newHash string
	if req.Password != nil && *req.Password != "" {
		if req.CurrentPassword == nil || *req.CurrentPassword == "" {
			return ProfileResponse{}, ErrCurrentPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*req.CurrentPassword)); err != nil {
			return ProfileResponse{}, ErrWrongCurrentPassword
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return ProfileResponse{}, apperror.Wrap(ErrProfileFailed, err)
		}
		newHash = string(hash)
	}

	name := user.Name
	if req.Name != nil {
		name = *req.Name
	}
	phone := user.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, apperror.Wrap(ErrProfileFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	repoTx := s.repo.WithTx(tx)

	updated, err := repoTx.UpdateProfile(ctx, id, name, phone)
	if err != nil {
		return ProfileResponse{}, apperror.Wrap(ErrProfileFailed, err)
	}

	if newHash != "" {
		if err := repoTx.UpdatePassword(ctx, id, newHash); err != nil {
			return ProfileResponse{}, apperror.Wrap(ErrProfileFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, apperror.Wrap(ErrProfileFailed, err)
	}
	committed = true

	return toProfileResponse(updated), nil
}

func toProfileResponse(u User) ProfileResponse {
	return ProfileResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Phone: u.Phone,
		Email: u.Email,
		Role:  u.Role,
	}
}
