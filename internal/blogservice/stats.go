package blogservice

// Aggregation functions over a blog list. All of them are pure: no store
// access, no mutation of the input, deterministic output. Blogs without an
// author group under the empty string. Ties are broken by first occurrence in
// input order, so repeated calls on the same input return the same winner.

type Stats struct {
	BlogCount  int          `json:"blog_count"`
	TotalLikes int          `json:"total_likes"`
	Favorite   *Blog        `json:"favorite,omitempty"`
	MostBlogs  *AuthorBlogs `json:"most_blogs,omitempty"`
	MostLikes  *AuthorLikes `json:"most_likes,omitempty"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes across all blogs; zero for empty input.
func TotalLikes(blogs []Blog) int {
	var total int
	for _, b := range blogs {
		total += b.Likes
	}

	return total
}

// FavoriteBlog returns a copy of the blog with the most likes, or nil for
// empty input.
func FavoriteBlog(blogs []Blog) *Blog {
	if len(blogs) == 0 {
		return nil
	}

	favorite := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > favorite.Likes {
			favorite = b
		}
	}

	return &favorite
}

// groupAuthors folds the blogs into per-author totals using fn, keeping the
// order in which authors first appear so tie-breaks stay deterministic.
func groupAuthors(blogs []Blog, fn func(Blog) int) ([]string, map[string]int) {
	totals := make(map[string]int)
	var order []string

	for _, b := range blogs {
		if _, ok := totals[b.Author]; !ok {
			order = append(order, b.Author)
		}
		totals[b.Author] += fn(b)
	}

	return order, totals
}

// MostBlogs returns the author with the largest number of blogs, or nil for
// empty input.
func MostBlogs(blogs []Blog) *AuthorBlogs {
	if len(blogs) == 0 {
		return nil
	}

	order, counts := groupAuthors(blogs, func(Blog) int { return 1 })

	best := order[0]
	for _, author := range order[1:] {
		if counts[author] > counts[best] {
			best = author
		}
	}

	return &AuthorBlogs{Author: best, Blogs: counts[best]}
}

// MostLikes returns the author with the largest summed likes, or nil for
// empty input.
func MostLikes(blogs []Blog) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}

	order, likes := groupAuthors(blogs, func(b Blog) int { return b.Likes })

	best := order[0]
	for _, author := range order[1:] {
		if likes[author] > likes[best] {
			best = author
		}
	}

	return &AuthorLikes{Author: best, Likes: likes[best]}
}
