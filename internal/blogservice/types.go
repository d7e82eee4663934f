package blogservice

import (
	"database/sql"
	"time"

	"bloglist/internal/common"
	"bloglist/internal/userservice"
)

type Blog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	// UserID references the owning user; only this user may modify the blog.
	UserID    int              `json:"user_id"`
	User      userservice.User `json:"user"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Version   int              `json:"version"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
