package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var statsBlogs = []Blog{
	{ID: 1, Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
	{ID: 2, Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: 5},
	{ID: 3, Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12},
	{ID: 4, Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017-05-05-TestDefinitions.html", Likes: 10},
	{ID: 5, Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017-03-03-TDD-Harms-Architecture.html", Likes: 0},
	{ID: 6, Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016-05-01-TypeWars.html", Likes: 2},
}

func TestTotalLikes(t *testing.T) {
	testCases := []struct {
		name     string
		blogs    []Blog
		expected int
	}{
		{name: "empty list", blogs: []Blog{}, expected: 0},
		{name: "single blog", blogs: statsBlogs[:1], expected: 7},
		{name: "many blogs", blogs: statsBlogs, expected: 36},
		{name: "all zero likes", blogs: []Blog{{Title: "a"}, {Title: "b"}}, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TotalLikes(tc.blogs))
		})
	}
}

func TestFavoriteBlog(t *testing.T) {
	testCases := []struct {
		name     string
		blogs    []Blog
		expected *Blog
	}{
		{name: "empty list", blogs: []Blog{}, expected: nil},
		{name: "single blog", blogs: statsBlogs[:1], expected: &statsBlogs[0]},
		{name: "many blogs", blogs: statsBlogs, expected: &statsBlogs[2]},
		{
			name: "tie keeps first occurrence",
			blogs: []Blog{
				{ID: 1, Title: "first", Likes: 5},
				{ID: 2, Title: "second", Likes: 5},
			},
			expected: &Blog{ID: 1, Title: "first", Likes: 5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FavoriteBlog(tc.blogs)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMostBlogs(t *testing.T) {
	testCases := []struct {
		name     string
		blogs    []Blog
		expected *AuthorBlogs
	}{
		{name: "empty list", blogs: []Blog{}, expected: nil},
		{name: "single blog", blogs: statsBlogs[:1], expected: &AuthorBlogs{Author: "Michael Chan", Blogs: 1}},
		{name: "many blogs", blogs: statsBlogs, expected: &AuthorBlogs{Author: "Robert C. Martin", Blogs: 3}},
		{
			name: "tie keeps first author encountered",
			blogs: []Blog{
				{Author: "A"},
				{Author: "B"},
				{Author: "A"},
				{Author: "B"},
			},
			expected: &AuthorBlogs{Author: "A", Blogs: 2},
		},
		{
			name: "missing authors form their own group",
			blogs: []Blog{
				{Title: "anon one"},
				{Title: "anon two"},
				{Author: "A"},
			},
			expected: &AuthorBlogs{Author: "", Blogs: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MostBlogs(tc.blogs))
		})
	}
}

func TestMostLikes(t *testing.T) {
	testCases := []struct {
		name     string
		blogs    []Blog
		expected *AuthorLikes
	}{
		{name: "empty list", blogs: []Blog{}, expected: nil},
		{name: "single blog", blogs: statsBlogs[:1], expected: &AuthorLikes{Author: "Michael Chan", Likes: 7}},
		{name: "many blogs", blogs: statsBlogs, expected: &AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}},
		{
			name: "tie keeps first author encountered",
			blogs: []Blog{
				{Author: "A", Likes: 4},
				{Author: "B", Likes: 4},
			},
			expected: &AuthorLikes{Author: "A", Likes: 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MostLikes(tc.blogs))
		})
	}
}

func TestAggregationScenario(t *testing.T) {
	blogs := []Blog{
		{Author: "A", Likes: 5},
		{Author: "B", Likes: 10},
		{Author: "A", Likes: 3},
	}

	assert.Equal(t, 18, TotalLikes(blogs))
	assert.Equal(t, &blogs[1], FavoriteBlog(blogs))
	assert.Equal(t, &AuthorBlogs{Author: "A", Blogs: 2}, MostBlogs(blogs))
	assert.Equal(t, &AuthorLikes{Author: "B", Likes: 10}, MostLikes(blogs))
}

func TestAggregationIsStableAndNonMutating(t *testing.T) {
	blogs := []Blog{
		{ID: 1, Author: "A", Likes: 5},
		{ID: 2, Author: "B", Likes: 5},
	}

	snapshot := make([]Blog, len(blogs))
	copy(snapshot, blogs)

	first := FavoriteBlog(blogs)
	second := FavoriteBlog(blogs)
	assert.Equal(t, first, second)

	assert.Equal(t, MostBlogs(blogs), MostBlogs(blogs))
	assert.Equal(t, MostLikes(blogs), MostLikes(blogs))

	assert.Equal(t, snapshot, blogs)
}
