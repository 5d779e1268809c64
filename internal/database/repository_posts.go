package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

const postSelect = `
	SELECT p.id, p.title, p.content, p.author_id, u.name AS author_name, p.category_id,
		c.name AS category_name, p.images, p.tags, p.featured, p.views, p.likes, p.shares,
		p.published_at, p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

// ListPosts returns posts matching filter, newest first.
func (r *Repository) ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.Title != "" {
		add("p.title ILIKE $%d", likePattern(filter.Title))
	}
	if filter.Author != "" {
		add("u.name ILIKE $%d", likePattern(filter.Author))
	}
	if filter.Category != "" {
		add("c.name ILIKE $%d", likePattern(filter.Category))
	}
	if filter.Tag != "" {
		add("EXISTS (SELECT 1 FROM unnest(p.tags) AS t(tag) WHERE t.tag ILIKE $%d)", likePattern(filter.Tag))
	}
	if filter.Featured != nil {
		add("p.featured = $%d", *filter.Featured)
	}

	query := postSelect
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf("\n\tORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	posts := []domain.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, mapError(err, "list posts")
	}
	return posts, nil
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PopularPosts orders by combined engagement.
func (r *Repository) PopularPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	limit, _ = pageBounds(limit, 0)
	posts := []domain.Post{}
	query := postSelect + `
	ORDER BY (p.views + p.likes + p.shares) DESC, p.created_at DESC
	LIMIT $1`
	if err := r.db.SelectContext(ctx, &posts, query, limit); err != nil {
		return nil, mapError(err, "list popular posts")
	}
	return posts, nil
}

// SearchPostsPage matches title or content.
func (r *Repository) SearchPostsPage(ctx context.Context, q string, limit, offset int) ([]domain.Post, error) {
	limit, offset = pageBounds(limit, offset)
	posts := []domain.Post{}
	query := postSelect + `
	WHERE p.title ILIKE $1 OR p.content ILIKE $1
	ORDER BY p.created_at DESC
	LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &posts, query, likePattern(q), limit, offset); err != nil {
		return nil, mapError(err, "search posts")
	}
	return posts, nil
}

// GetPost retrieves a post with author and category names.
func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post := &domain.Post{}
	if err := r.db.GetContext(ctx, post, postSelect+"\n\tWHERE p.id = $1", id); err != nil {
		return nil, mapError(err, "get post")
	}
	return post, nil
}

// CreatePost inserts a post owned by authorID.
func (r *Repository) CreatePost(ctx context.Context, authorID uuid.UUID, req *domain.PostCreateRequest) (*domain.Post, error) {
	id := uuid.New()
	now := r.now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, title, content, author_id, category_id, images, tags, featured,
			views, likes, shares, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0, $9, $9, $9)
	`, id, req.Title, req.Content, authorID, req.CategoryID,
		pq.Array(nonNil(req.Images)), pq.Array(normalizeTags(req.Tags)), req.Featured, now)
	if err != nil {
		return nil, mapError(err, "create post")
	}
	return r.GetPost(ctx, id)
}

// UpdatePost patches a post.
func (r *Repository) UpdatePost(ctx context.Context, id uuid.UUID, req *domain.PostUpdateRequest) (*domain.Post, error) {
	var cols []column
	if req.Title != nil {
		cols = append(cols, column{"title", *req.Title})
	}
	if req.Content != nil {
		cols = append(cols, column{"content", *req.Content})
	}
	if req.CategoryID != nil {
		cols = append(cols, column{"category_id", *req.CategoryID})
	}
	if req.Images != nil {
		cols = append(cols, column{"images", pq.Array(req.Images)})
	}
	if req.Tags != nil {
		cols = append(cols, column{"tags", pq.Array(normalizeTags(req.Tags))})
	}
	if req.Featured != nil {
		cols = append(cols, column{"featured", *req.Featured})
	}

	query, args, err := buildUpdateQuery("posts", id, cols, true, r.now(), "id")
	if err != nil {
		return nil, err
	}
	var updated uuid.UUID
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&updated); err != nil {
		return nil, mapError(err, "update post")
	}
	return r.GetPost(ctx, updated)
}

// DeletePost removes a post and, through cascades, its comments and likes.
func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete post")
	}
	return requireAffected(res, "delete post")
}

// IncrementViews adds one view and returns the new count.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.increment(ctx, id, "views")
}

// IncrementShares adds one share and returns the new count.
func (r *Repository) IncrementShares(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.increment(ctx, id, "shares")
}

func (r *Repository) increment(ctx context.Context, id uuid.UUID, counter string) (int64, error) {
	var n int64
	query := fmt.Sprintf(`UPDATE posts SET %[1]s = %[1]s + 1 WHERE id = $1 RETURNING %[1]s`, counter)
	if err := r.db.QueryRowxContext(ctx, query, id).Scan(&n); err != nil {
		return 0, mapError(err, "increment "+counter)
	}
	return n, nil
}

// ToggleLike likes or unlikes a post for userID. Liking merges the post's
// category and tags into the user's interests.
func (r *Repository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*domain.LikeResult, error) {
	result := &domain.LikeResult{}
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var (
			tags     pq.StringArray
			category *string
		)
		err := tx.QueryRowxContext(ctx, `
			SELECT p.tags, c.name
			FROM posts p LEFT JOIN categories c ON c.id = p.category_id
			WHERE p.id = $1
			FOR UPDATE OF p
		`, postID).Scan(&tags, &category)
		if err != nil {
			return mapError(err, "load post for like")
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return mapError(err, "unlike post")
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return mapError(err, "unlike post")
		}

		delta := -1
		if removed == 0 {
			delta = 1
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, $3)`,
				postID, userID, r.now()); err != nil {
				return mapError(err, "like post")
			}
			interests := append([]string{}, tags...)
			if category != nil {
				interests = append(interests, *category)
			}
			if err := addInterests(ctx, tx, userID, interests); err != nil {
				return err
			}
		}

		if err := tx.QueryRowxContext(ctx,
			`UPDATE posts SET likes = GREATEST(likes + $1, 0) WHERE id = $2 RETURNING likes`,
			delta, postID).Scan(&result.Likes); err != nil {
			return mapError(err, "update like count")
		}
		result.Liked = delta > 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// normalizeTags lowercases, trims and de-duplicates tags.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
