package seed

import (
	"context"
	"database/sql"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// SeedUsers inserts the store owner account. The password comes from
// ADMIN_PASSWORD so no credential ever lands in the repo.
func SeedUsers(db *sql.DB) error {
	ctx := context.Background()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@coachstore.com.br"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (name, phone, email, password_hash, role)
	          VALUES ($1, $2, $3, $4, 'ADMIN')
	          ON CONFLICT (email) DO NOTHING`

	res, err := db.ExecContext(ctx, query, "Coach Store", "+5515999999999", email, string(hash))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("admin user seeded: %s", email)
	}
	return nil
}
