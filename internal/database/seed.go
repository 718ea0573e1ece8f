package database

import (
	"context"
	"database/sql"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin seeds a bootstrap admin account when the users table is empty.
// Without it a fresh deployment has no way to log in, since accounts are
// only ever created by an admin.  It is a no-op when either credential is
// empty or any user already exists.
func EnsureAdmin(ctx context.Context, db *sql.DB, email, password string, bcryptCost int) error {
	if email == "" || password == "" {
		return nil
	}
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password_hash, role) VALUES (?,?,?,?,?)",
		"Admin", "Principal", strings.ToLower(strings.TrimSpace(email)), string(hash), "admin")
	return err
}
