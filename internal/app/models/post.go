package models

import "time"

// Post defines the community post model based on the 'posts' table
type Post struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	CodeSnippet *string   `json:"codeSnippet,omitempty" db:"code_snippet"`
	Language    *string   `json:"language,omitempty" db:"language"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	Tags        []string  `json:"tags" db:"tags"`
	ImageURLs   []string  `json:"imageUrls" db:"image_urls"`
	VideoURLs   []string  `json:"videoUrls" db:"video_urls"`
	Likes       int       `json:"likes" db:"likes"` // Denormalized count over post_likes
	Shares      int       `json:"shares" db:"shares"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author       *User         `json:"author,omitempty"`
	Comments     []PostComment `json:"comments,omitempty"`
	LikeEntries  []PostLike    `json:"likeEntries,omitempty"`
	CommentCount int           `json:"commentCount"`
}

// PostComment defines a comment on a post
type PostComment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}

// PostLike defines a like on a post; UNIQUE(post_id, user_id) enforces one per pair
type PostLike struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
