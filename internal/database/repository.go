package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	infraerrors "github.com/Arhamsiaf65/CityInsights/infrastructure/errors"
	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// Repository provides database operations for all entities.
type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Ping checks the connection for health reporting.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// mapError converts driver errors into domain sentinels.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return domain.ErrAlreadyExists
	}
	return infraerrors.WrapWithContext(err, "failed to "+op)
}

// requireAffected turns a zero-row update or delete into ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return infraerrors.WrapWithContext(err, "failed to "+op)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// likePattern wraps s for a case-insensitive substring ILIKE match.
func likePattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}

// column is one SET clause entry of a partial update.
type column struct {
	name  string
	value any
}

// buildUpdateQuery renders an UPDATE of cols in order. touch adds
// updated_at.
func buildUpdateQuery(table string, id uuid.UUID, cols []column, touch bool, now time.Time, returning string) (string, []any, error) {
	if len(cols) == 0 {
		return "", nil, domain.ErrNoFieldsToUpdate
	}

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for _, c := range cols {
		args = append(args, c.value)
		sets = append(sets, fmt.Sprintf("%s = $%d", c.name, len(args)))
	}
	if touch {
		args = append(args, now)
		sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, table, strings.Join(sets, ", "), len(args), returning)

	return query, args, nil
}

// withTx runs fn in a transaction, rolling back on error.
func (r *Repository) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
