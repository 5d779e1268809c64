package database

import (
	"context"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/google/uuid"
)

const commentSelect = `
	SELECT cm.id, cm.post_id, cm.user_id, u.name AS user_name, cm.content, cm.created_at
	FROM comments cm
	JOIN users u ON u.id = cm.user_id`

// ListComments returns a post's comments, oldest first.
func (r *Repository) ListComments(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	query := commentSelect + "\n\tWHERE cm.post_id = $1\n\tORDER BY cm.created_at ASC"
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, mapError(err, "list comments")
	}
	return comments, nil
}

// GetComment retrieves a comment.
func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment := &domain.Comment{}
	if err := r.db.GetContext(ctx, comment, commentSelect+"\n\tWHERE cm.id = $1", id); err != nil {
		return nil, mapError(err, "get comment")
	}
	return comment, nil
}

// CreateComment adds a comment to a post.
func (r *Repository) CreateComment(ctx context.Context, postID, userID uuid.UUID, content string) (*domain.Comment, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, user_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, postID, userID, content, r.now())
	if err != nil {
		return nil, mapError(err, "create comment")
	}
	return r.GetComment(ctx, id)
}

// UpdateComment replaces a comment's text.
func (r *Repository) UpdateComment(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return nil, mapError(err, "update comment")
	}
	if err := requireAffected(res, "update comment"); err != nil {
		return nil, err
	}
	return r.GetComment(ctx, id)
}

// DeleteComment removes a comment.
func (r *Repository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete comment")
	}
	return requireAffected(res, "delete comment")
}
