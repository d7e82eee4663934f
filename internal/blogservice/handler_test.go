package blogservice

import (
	"context"
	"crypto/rand"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"bloglist/internal/common"
)

func intptr(i int) *int {
	return &i
}

func strptr(s string) *string {
	return &s
}

// setupTestUser inserts a user directly so blog tests do not depend on the
// user service.
func setupTestUser(db *sql.DB, username string) (*int, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (username, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int
	err = db.QueryRow(query, username, "Test User", username+"@example.com", randomBytes).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB, func() error, *int, error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	id, err := setupTestUser(db, "testuser")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM blogs")
		if err != nil {
			return err
		}

		_, err = db.Exec("UPDATE users SET blog_ids = '{}'")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewBlogService(db, cache), db, cleanup, id, nil
}

func ownedBlogIDs(t *testing.T, db *sql.DB, userID int) []int64 {
	var ids []int64
	err := db.QueryRow("SELECT blog_ids FROM users WHERE id = $1", userID).Scan(pq.Array(&ids))
	assert.NoError(t, err)
	return ids
}

func TestCreateBlog(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	testCases := []struct {
		name          string
		blog          *CreateBlogRequest
		expectedLikes int
		expectedErr   error
	}{
		{
			name: "valid blog",
			blog: &CreateBlogRequest{
				Title:  "Test Blog",
				Author: "Test Author",
				URL:    "https://example.com/blog",
				Likes:  intptr(0),
				UserID: *userID,
			},
			expectedLikes: 0,
		},
		{
			name: "likes defaults to zero when absent",
			blog: &CreateBlogRequest{
				Title:  "Blog Without Likes",
				Author: "Test Author",
				URL:    "https://example.com/no-likes",
				UserID: *userID,
			},
			expectedLikes: 0,
		},
		{
			name: "explicit likes stored as given",
			blog: &CreateBlogRequest{
				Title:  "Popular Blog",
				URL:    "https://example.com/popular",
				Likes:  intptr(42),
				UserID: *userID,
			},
			expectedLikes: 42,
		},
		{
			name: "missing title",
			blog: &CreateBlogRequest{
				URL:    "https://example.com/blog",
				UserID: *userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "missing url",
			blog: &CreateBlogRequest{
				Title:  "Test Blog",
				UserID: *userID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"url": "must be provided"}},
		},
		{
			name: "missing acting user",
			blog: &CreateBlogRequest{
				Title: "Test Blog",
				URL:   "https://example.com/blog",
			},
			expectedErr: ErrMissingUser,
		},
		{
			name: "unknown acting user",
			blog: &CreateBlogRequest{
				Title:  "Test Blog",
				URL:    "https://example.com/blog",
				UserID: 999,
			},
			expectedErr: ErrUserForeignKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			blog, err := s.CreateBlog(ctx, tc.blog)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, blog.ID)
				assert.Equal(t, tc.expectedLikes, blog.Likes)
				assert.Equal(t, *userID, blog.UserID)

				// the owner's list contains the new id exactly once
				var count int
				for _, id := range ownedBlogIDs(t, db, *userID) {
					if id == int64(blog.ID) {
						count++
					}
				}
				assert.Equal(t, 1, count)
			}

			t.Cleanup(func() {
				err := cleanup()
				assert.NoError(t, err)
			})
		})
	}
}

func TestUpdateBlog(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	otherID, err := setupTestUser(db, "otheruser")
	assert.NoError(t, err)

	newBlog := func(ctx context.Context) *Blog {
		blog, err := s.CreateBlog(ctx, &CreateBlogRequest{
			Title:  "Test Blog",
			Author: "Test Author",
			URL:    "https://example.com/blog",
			Likes:  intptr(3),
			UserID: *userID,
		})
		assert.NoError(t, err)
		return blog
	}

	testCases := []struct {
		name        string
		blogID      func(ctx context.Context) int
		userID      int
		patch       *UpdateBlogRequest
		check       func(t *testing.T, updated *Blog)
		expectedErr error
	}{
		{
			name:   "patch changes only provided fields",
			blogID: func(ctx context.Context) int { return newBlog(ctx).ID },
			userID: *userID,
			patch:  &UpdateBlogRequest{Likes: intptr(10)},
			check: func(t *testing.T, updated *Blog) {
				assert.Equal(t, "Test Blog", updated.Title)
				assert.Equal(t, "Test Author", updated.Author)
				assert.Equal(t, "https://example.com/blog", updated.URL)
				assert.Equal(t, 10, updated.Likes)
			},
		},
		{
			name:   "patch replaces title and url",
			blogID: func(ctx context.Context) int { return newBlog(ctx).ID },
			userID: *userID,
			patch:  &UpdateBlogRequest{Title: strptr("Updated"), URL: strptr("https://example.com/updated")},
			check: func(t *testing.T, updated *Blog) {
				assert.Equal(t, "Updated", updated.Title)
				assert.Equal(t, "https://example.com/updated", updated.URL)
				assert.Equal(t, 3, updated.Likes)
			},
		},
		{
			name:        "missing blog",
			blogID:      func(ctx context.Context) int { return 999 },
			userID:      *userID,
			patch:       &UpdateBlogRequest{Likes: intptr(1)},
			expectedErr: ErrRecordNotFound,
		},
		{
			name:        "non-owner cannot update",
			blogID:      func(ctx context.Context) int { return newBlog(ctx).ID },
			userID:      *otherID,
			patch:       &UpdateBlogRequest{Likes: intptr(1)},
			expectedErr: ErrNotOwner,
		},
		{
			name:        "missing acting user",
			blogID:      func(ctx context.Context) int { return newBlog(ctx).ID },
			userID:      0,
			patch:       &UpdateBlogRequest{Likes: intptr(1)},
			expectedErr: ErrMissingUser,
		},
		{
			name:        "patch cannot clear the title",
			blogID:      func(ctx context.Context) int { return newBlog(ctx).ID },
			userID:      *userID,
			patch:       &UpdateBlogRequest{Title: strptr("")},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			id := tc.blogID(ctx)

			updated, err := s.UpdateBlog(ctx, id, tc.userID, tc.patch)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				tc.check(t, updated)

				var b Blog
				row := db.QueryRow("SELECT title, author, url, likes FROM blogs WHERE id = $1", id)
				assert.NoError(t, row.Scan(&b.Title, &b.Author, &b.URL, &b.Likes))
				assert.Equal(t, updated.Title, b.Title)
				assert.Equal(t, updated.Author, b.Author)
				assert.Equal(t, updated.URL, b.URL)
				assert.Equal(t, updated.Likes, b.Likes)
			}

			t.Cleanup(func() {
				err := cleanup()
				assert.NoError(t, err)
			})
		})
	}
}

func TestDeleteBlog(t *testing.T) {
	s, db, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	otherID, err := setupTestUser(db, "otheruser")
	assert.NoError(t, err)

	newBlog := func(ctx context.Context) int {
		blog, err := s.CreateBlog(ctx, &CreateBlogRequest{
			Title:  "Test Blog",
			URL:    "https://example.com/blog",
			UserID: *userID,
		})
		assert.NoError(t, err)
		return blog.ID
	}

	testCases := []struct {
		name        string
		blogID      func(ctx context.Context) int
		userID      int
		expectedErr error
	}{
		{
			name:   "owner deletes own blog",
			blogID: newBlog,
			userID: *userID,
		},
		{
			name:        "missing blog",
			blogID:      func(ctx context.Context) int { return 999 },
			userID:      *userID,
			expectedErr: ErrRecordNotFound,
		},
		{
			name:        "non-owner is rejected",
			blogID:      newBlog,
			userID:      *otherID,
			expectedErr: ErrNotOwner,
		},
		{
			name:        "missing acting user",
			blogID:      newBlog,
			userID:      0,
			expectedErr: ErrMissingUser,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			id := tc.blogID(ctx)

			err := s.DeleteBlog(ctx, id, tc.userID)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				// a subsequent lookup yields absence
				_, err := s.GetBlogByID(ctx, id)
				assert.Equal(t, ErrRecordNotFound, err)

				// repeated delete is not a silent success
				err = s.DeleteBlog(ctx, id, tc.userID)
				assert.Equal(t, ErrRecordNotFound, err)

				assert.NotContains(t, ownedBlogIDs(t, db, *userID), int64(id))
			}

			t.Cleanup(func() {
				err := cleanup()
				assert.NoError(t, err)
			})
		})
	}
}

func TestGetBlogs(t *testing.T) {
	s, _, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})

	ctx := context.Background()

	for i, title := range []string{"First", "Second", "Third"} {
		_, err := s.CreateBlog(ctx, &CreateBlogRequest{
			Title:  title,
			URL:    "https://example.com/blog",
			Likes:  intptr(i),
			UserID: *userID,
		})
		assert.NoError(t, err)
	}

	blogs, err := s.GetBlogs(ctx)
	assert.NoError(t, err)
	assert.Len(t, blogs, 3)

	// insertion order with owner summary attached
	assert.Equal(t, "First", blogs[0].Title)
	assert.Equal(t, "testuser", blogs[0].User.Username)
	assert.Equal(t, "Test User", blogs[0].User.Name)

	// cached result is served until a mutation invalidates it
	again, err := s.GetBlogs(ctx)
	assert.NoError(t, err)
	assert.Equal(t, blogs, again)
}

func TestBlogStats(t *testing.T) {
	s, _, cleanup, userID, err := setupTestEnvironment(t)
	assert.NoError(t, err)

	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err)
	})

	ctx := context.Background()

	seed := []struct {
		author string
		likes  int
	}{
		{author: "A", likes: 5},
		{author: "B", likes: 10},
		{author: "A", likes: 3},
	}

	for _, b := range seed {
		_, err := s.CreateBlog(ctx, &CreateBlogRequest{
			Title:  "Blog by " + b.author,
			Author: b.author,
			URL:    "https://example.com/blog",
			Likes:  intptr(b.likes),
			UserID: *userID,
		})
		assert.NoError(t, err)
	}

	stats, err := s.BlogStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.BlogCount)
	assert.Equal(t, 18, stats.TotalLikes)
	assert.Equal(t, 10, stats.Favorite.Likes)
	assert.Equal(t, &AuthorBlogs{Author: "A", Blogs: 2}, stats.MostBlogs)
	assert.Equal(t, &AuthorLikes{Author: "B", Likes: 10}, stats.MostLikes)
}
