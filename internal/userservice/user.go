package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// uniqueViolation reports whether err is a unique constraint violation on the
// named constraint.
func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}

	return false
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Email,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case uniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		case uniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, email, password, activated, blog_ids, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash, &u.Activated, pq.Array(&u.BlogIDs), &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) getUserByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, email, activated, blog_ids, version
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Activated, pq.Array(&u.BlogIDs), &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) activateUserAccount(tx *sql.Tx, ctx context.Context, id int, version int) error {
	query := `
		UPDATE users
		SET activated = true, updated_at = now(), version = version + 1
		WHERE id = $1 AND version = $2`

	res, err := tx.ExecContext(ctx, query, id, version)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrNotFound
		default:
			return errors.New("too many rows affected")
		}
	}

	return nil
}
