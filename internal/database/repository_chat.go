package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Arhamsiaf65/CityInsights/internal/chatbot"
	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// The chatbot reads through these methods; Repository satisfies
// chatbot.ContentStore and chatbot.AccountStore.
var (
	_ chatbot.ContentStore = (*Repository)(nil)
	_ chatbot.AccountStore = (*Repository)(nil)
)

const summarySelect = `
	SELECT p.id, p.title, p.content, u.name AS author_name, c.name AS category_name, p.tags, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

type summaryRow struct {
	ID           uuid.UUID      `db:"id"`
	Title        string         `db:"title"`
	Content      string         `db:"content"`
	AuthorName   string         `db:"author_name"`
	CategoryName sql.NullString `db:"category_name"`
	Tags         pq.StringArray `db:"tags"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (s summaryRow) toSummary() chatbot.PostSummary {
	return chatbot.PostSummary{
		ID:           s.ID.String(),
		Title:        s.Title,
		Content:      s.Content,
		AuthorName:   s.AuthorName,
		CategoryName: s.CategoryName.String,
		Tags:         s.Tags,
		CreatedAt:    s.CreatedAt,
	}
}

func (r *Repository) selectSummaries(ctx context.Context, op, query string, args ...any) ([]chatbot.PostSummary, error) {
	rows := []summaryRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(err, op)
	}
	out := make([]chatbot.PostSummary, len(rows))
	for i, row := range rows {
		out[i] = row.toSummary()
	}
	return out, nil
}

// FindAuthorsByName returns users whose name contains name.
func (r *Repository) FindAuthorsByName(ctx context.Context, name string) ([]chatbot.Author, error) {
	rows := []struct {
		ID   uuid.UUID `db:"id"`
		Name string    `db:"name"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name FROM users WHERE name ILIKE $1 ORDER BY name ASC`, likePattern(name))
	if err != nil {
		return nil, mapError(err, "find authors")
	}
	authors := make([]chatbot.Author, len(rows))
	for i, row := range rows {
		authors[i] = chatbot.Author{ID: row.ID.String(), Name: row.Name}
	}
	return authors, nil
}

// PostsByAuthors returns the newest posts of any of the given authors.
func (r *Repository) PostsByAuthors(ctx context.Context, authorIDs []string, limit int) ([]chatbot.PostSummary, error) {
	ids := make([]string, 0, len(authorIDs))
	for _, id := range authorIDs {
		if _, err := uuid.Parse(id); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []chatbot.PostSummary{}, nil
	}
	return r.selectSummaries(ctx, "posts by authors", summarySelect+`
	WHERE p.author_id = ANY($1::uuid[])
	ORDER BY p.created_at DESC
	LIMIT $2`, pq.Array(ids), limit)
}

// PostsByTagOrCategory matches tags or the category name. A post matching
// both is returned once.
func (r *Repository) PostsByTagOrCategory(ctx context.Context, keyword string, limit int) ([]chatbot.PostSummary, error) {
	return r.selectSummaries(ctx, "posts by tag or category", summarySelect+`
	WHERE EXISTS (SELECT 1 FROM unnest(p.tags) AS t(tag) WHERE t.tag ILIKE $1)
		OR c.name ILIKE $1
	ORDER BY p.created_at DESC
	LIMIT $2`, likePattern(keyword), limit)
}

// PostsByTitle matches titles.
func (r *Repository) PostsByTitle(ctx context.Context, title string, limit int) ([]chatbot.PostSummary, error) {
	return r.selectSummaries(ctx, "posts by title", summarySelect+`
	WHERE p.title ILIKE $1
	ORDER BY p.created_at DESC
	LIMIT $2`, likePattern(title), limit)
}

// LatestPosts returns the newest posts.
func (r *Repository) LatestPosts(ctx context.Context, limit int) ([]chatbot.PostSummary, error) {
	return r.selectSummaries(ctx, "latest posts", summarySelect+`
	ORDER BY p.created_at DESC
	LIMIT $1`, limit)
}

// SearchPosts matches title or body.
func (r *Repository) SearchPosts(ctx context.Context, topic string, limit int) ([]chatbot.PostSummary, error) {
	return r.selectSummaries(ctx, "search posts", summarySelect+`
	WHERE p.title ILIKE $1 OR p.content ILIKE $1
	ORDER BY p.created_at DESC
	LIMIT $2`, likePattern(topic), limit)
}

// TopAuthors ranks authors by post count.
func (r *Repository) TopAuthors(ctx context.Context, limit int) ([]chatbot.AuthorCount, error) {
	rows := []struct {
		Name  string `db:"name"`
		Posts int    `db:"posts"`
	}{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT u.name, COUNT(p.id) AS posts
		FROM posts p
		JOIN users u ON u.id = p.author_id
		GROUP BY u.id, u.name
		ORDER BY posts DESC, u.name ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, mapError(err, "top authors")
	}
	out := make([]chatbot.AuthorCount, len(rows))
	for i, row := range rows {
		out[i] = chatbot.AuthorCount{Name: row.Name, Posts: row.Posts}
	}
	return out, nil
}

// FindAccount resolves a caller id. Malformed ids are not found.
func (r *Repository) FindAccount(ctx context.Context, id string) (*chatbot.Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	user, err := r.GetUserByID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chatbot.Account{
		ID:       user.ID.String(),
		Name:     user.Name,
		Email:    user.Email,
		Role:     string(user.Role),
		Verified: user.Verified(),
	}, nil
}
