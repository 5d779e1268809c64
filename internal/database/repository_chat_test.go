package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var summaryCols = []string{"id", "title", "content", "author_name", "category_name", "tags", "created_at"}

func TestRepository_FindAuthorsByName(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	id := uuid.New()
	mock.ExpectQuery("SELECT id, name FROM users WHERE name ILIKE \\$1").
		WithArgs("%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id.String(), "Ali Khan"))

	authors, err := repo.FindAuthorsByName(context.Background(), "ali")
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, id.String(), authors[0].ID)
	assert.Equal(t, "Ali Khan", authors[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PostsByAuthors(t *testing.T) {
	t.Parallel()

	t.Run("skips malformed ids", func(t *testing.T) {
		t.Parallel()
		repo, mock := newRepo(t)

		posts, err := repo.PostsByAuthors(context.Background(), []string{"not-a-uuid"}, 3)
		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("queries every author at once", func(t *testing.T) {
		t.Parallel()
		repo, mock := newRepo(t)
		a, b := uuid.NewString(), uuid.NewString()

		mock.ExpectQuery("WHERE p.author_id = ANY\\(\\$1::uuid\\[\\]\\)").
			WithArgs(pq.Array([]string{a, b}), 3).
			WillReturnRows(sqlmock.NewRows(summaryCols).
				AddRow(uuid.NewString(), "Road works", "body", "Ali", nil, "{}", time.Now()))

		posts, err := repo.PostsByAuthors(context.Background(), []string{a, "bad", b}, 3)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Road works", posts[0].Title)
		assert.Empty(t, posts[0].CategoryName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_PostsByTagOrCategory(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery("t.tag ILIKE \\$1\\s+OR c.name ILIKE \\$1").
		WithArgs("%sports%", 3).
		WillReturnRows(sqlmock.NewRows(summaryCols).
			AddRow(uuid.NewString(), "Cricket final", "body", "Sara", "Sports", "{sports,cricket}", time.Now()))

	posts, err := repo.PostsByTagOrCategory(context.Background(), "sports", 3)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Sports", posts[0].CategoryName)
	assert.Equal(t, []string{"sports", "cricket"}, posts[0].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TopAuthors(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery("GROUP BY u.id, u.name\\s+ORDER BY posts DESC").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"name", "posts"}).
			AddRow("Ali", 7).
			AddRow("Sara", 4))

	top, err := repo.TopAuthors(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Ali", top[0].Name)
	assert.Equal(t, 7, top[0].Posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAccount(t *testing.T) {
	t.Parallel()

	t.Run("malformed id is not found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newRepo(t)

		_, err := repo.FindAccount(context.Background(), "guest")
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps user", func(t *testing.T) {
		t.Parallel()
		repo, mock := newRepo(t)
		id := uuid.New()

		mock.ExpectQuery("FROM users WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(userRow(id, "Sara", "publisher", "approved"))

		account, err := repo.FindAccount(context.Background(), id.String())
		require.NoError(t, err)
		assert.Equal(t, "Sara", account.Name)
		assert.Equal(t, "publisher", account.Role)
		assert.True(t, account.Verified)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
