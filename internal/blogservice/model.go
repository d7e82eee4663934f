package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("blog not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// insert persists the blog and appends its id to the owner's blog_ids list.
// Both writes share one transaction so a creation is all or nothing.
func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	err = tx.QueryRowContext(ctx, query, blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		_ = tx.Rollback()
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	query = `
		UPDATE users
		SET blog_ids = array_append(blog_ids, $1), updated_at = now()
		WHERE id = $2`

	res, err := tx.ExecContext(ctx, query, blog.ID, blog.UserID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if rows != 1 {
		_ = tx.Rollback()
		return ErrUserForeignKey
	}

	return tx.Commit()
}

// getBlogByID joins the users table so callers get the owner summary along
// with the blog.
func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, b.version, u.id, u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var blog Blog
	err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &blog.User.ID, &blog.User.Username, &blog.User.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// getBlogs returns every blog with its owner summary, in insertion order.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, b.version, u.id, u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.id ASC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &blog.User.ID, &blog.User.Username, &blog.User.Name)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, author = $2, url = $3, likes = $4, updated_at = now(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version`

	err := m.db.QueryRowContext(ctx, query, blog.Title, blog.Author, blog.URL, blog.Likes, blog.ID, blog.Version).Scan(&blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// deleteBlog removes the blog and its id from the owner's blog_ids list in
// one transaction.
func (m *BlogModel) deleteBlog(ctx context.Context, blogID, userID int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM blogs WHERE id = $1 AND user_id = $2", blogID, userID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if rows != 1 {
		_ = tx.Rollback()
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	query := `
		UPDATE users
		SET blog_ids = array_remove(blog_ids, $1), updated_at = now()
		WHERE id = $2`

	_, err = tx.ExecContext(ctx, query, blogID, userID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
