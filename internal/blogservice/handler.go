package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloglist/internal/common"
)

var (
	// ErrMissingUser is returned when a mutating operation runs without a
	// resolved acting user.
	ErrMissingUser = errors.New("userId missing or not valid")

	// ErrNotOwner is returned when the acting user is not the blog's owner.
	ErrNotOwner = errors.New("you can only delete your own blogs")
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	// Likes is a pointer so an absent field can default to zero while an
	// explicit value is stored as given.
	Likes  *int `json:"likes"`
	UserID int  `json:"user_id"`
}

type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// CreateBlog persists a new blog owned by the acting user and appends its id
// to the user's owned list.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	if req.UserID <= 0 {
		return nil, ErrMissingUser
	}

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateURL(v, req.URL)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		UserID: req.UserID,
	}

	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogList())

	return blog, nil
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		if blog, ok := cached.(*Blog); ok {
			return blog, nil
		}
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog, time.Minute)

	return blog, nil
}

// GetBlogs returns all blogs with their owner summaries.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogList()); ok {
		if blogs, ok := cached.([]Blog); ok {
			return blogs, nil
		}
	}

	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogList(), blogs, time.Minute)

	return blogs, nil
}

// UpdateBlog merges the patch into the stored blog and persists it. Fields
// absent from the patch keep their prior values. Ownership is enforced the
// same way as on delete.
func (s *BlogService) UpdateBlog(ctx context.Context, id, userID int, req *UpdateBlogRequest) (*Blog, error) {
	if userID <= 0 {
		return nil, ErrMissingUser
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blog.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.URL != nil {
		blog.URL = *req.URL
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	v := common.NewValidator()
	validateTitle(v, blog.Title)
	validateURL(v, blog.URL)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.updateBlog(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(id))
	s.c.Delete(common.CacheKeyBlogList())

	return blog, nil
}

// DeleteBlog removes the blog. Only the owner may delete it; repeated deletes
// of the same id surface ErrRecordNotFound, not a silent success.
func (s *BlogService) DeleteBlog(ctx context.Context, blogID, userID int) error {
	if userID <= 0 {
		return ErrMissingUser
	}

	v := common.NewValidator()
	validateInt(v, blogID, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, blogID)
	if err != nil {
		return err
	}

	if blog.UserID != userID {
		return ErrNotOwner
	}

	if err := s.m.deleteBlog(ctx, blogID, userID); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(blogID))
	s.c.Delete(common.CacheKeyBlogList())

	return nil
}

// BlogStats materializes the full collection and runs the aggregation
// functions over it.
func (s *BlogService) BlogStats(ctx context.Context) (*Stats, error) {
	blogs, err := s.GetBlogs(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		BlogCount:  len(blogs),
		TotalLikes: TotalLikes(blogs),
		Favorite:   FavoriteBlog(blogs),
		MostBlogs:  MostBlogs(blogs),
		MostLikes:  MostLikes(blogs),
	}, nil
}
