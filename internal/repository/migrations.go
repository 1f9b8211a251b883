package repository

import "fmt"

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const booksSchema = `
CREATE TABLE IF NOT EXISTS books (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	rating DOUBLE PRECISION,
	notes TEXT NOT NULL DEFAULT '',
	read_status TEXT NOT NULL,
	isbn TEXT NOT NULL,
	cover_image TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	wishlist BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_id, isbn)
)`

// Migrate creates the users and books tables if they do not exist.
// The unique constraints here are the real enforcement behind the
// application-level existence checks.
func (r *Repository) Migrate() error {
	for _, schema := range []string{usersSchema, booksSchema} {
		if _, err := r.db.Exec(schema); err != nil {
			return fmt.Errorf("failed to sync schema: %w", err)
		}
	}
	return nil
}
