package customer

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	Email        string
	PasswordHash string
	Role         string
}

//go:generate mockgen -source=customer_repo.go -destination=../mock/customer/customer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type repository struct {
	db dbtx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: tx}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `SELECT id, name, phone, email, password_hash, role
	          FROM users WHERE id = $1`

	var u User
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (User, error) {
	query := `UPDATE users
	          SET name = $2, phone = $3, updated_at = now()
	          WHERE id = $1
	          RETURNING id, name, phone, email, password_hash, role`

	var u User
	err := r.db.QueryRowContext(ctx, query, id, name, phone).
		Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
