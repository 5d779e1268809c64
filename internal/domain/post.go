package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Post is a published article.
type Post struct {
	ID           uuid.UUID      `db:"id"            json:"id"`
	Title        string         `db:"title"         json:"title"`
	Content      string         `db:"content"       json:"content"`
	AuthorID     uuid.UUID      `db:"author_id"     json:"authorId"`
	AuthorName   string         `db:"author_name"   json:"authorName"`
	CategoryID   *uuid.UUID     `db:"category_id"   json:"categoryId,omitempty"`
	CategoryName *string        `db:"category_name" json:"categoryName,omitempty"`
	Images       pq.StringArray `db:"images"        json:"images"`
	Tags         pq.StringArray `db:"tags"          json:"tags"`
	Featured     bool           `db:"featured"      json:"featured"`
	Views        int64          `db:"views"         json:"views"`
	Likes        int64          `db:"likes"         json:"likes"`
	Shares       int64          `db:"shares"        json:"shares"`
	PublishedAt  time.Time      `db:"published_at"  json:"publishedAt"`
	CreatedAt    time.Time      `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at"    json:"updatedAt"`
}

// PostFilter narrows a post listing. Text fields match case-insensitively.
type PostFilter struct {
	Title    string
	Author   string
	Category string
	Tag      string
	Featured *bool
	Limit    int
	Offset   int
}

// PostCreateRequest is the payload for a new post.
type PostCreateRequest struct {
	Title      string     `binding:"required" json:"title"`
	Content    string     `binding:"required" json:"content"`
	CategoryID *uuid.UUID `json:"categoryId"`
	Images     []string   `json:"images"`
	Tags       []string   `json:"tags"`
	Featured   bool       `json:"featured"`
}

// PostUpdateRequest patches a post.
type PostUpdateRequest struct {
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	CategoryID *uuid.UUID `json:"categoryId"`
	Images     []string   `json:"images"`
	Tags       []string   `json:"tags"`
	Featured   *bool      `json:"featured"`
}

// LikeResult reports the state of a like toggle.
type LikeResult struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// Category groups posts.
type Category struct {
	ID          uuid.UUID `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at"  json:"createdAt"`
}

// CategoryRequest creates or patches a category.
type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Comment is a reader comment on a post.
type Comment struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	PostID    uuid.UUID `db:"post_id"    json:"postId"`
	UserID    uuid.UUID `db:"user_id"    json:"userId"`
	UserName  string    `db:"user_name"  json:"userName"`
	Content   string    `db:"content"    json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CommentRequest creates or edits a comment.
type CommentRequest struct {
	Content string `binding:"required" json:"content"`
}
