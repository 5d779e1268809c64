package database

import (
	"context"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const userColumns = `id, name, email, password_hash, role, requested_role, avatar, bio, portfolio,
	contact, verification_status, interests, created_at, updated_at`

// CreateUser inserts a user with the default role.
func (r *Repository) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	now := r.now()
	user := &domain.User{}
	query := `
		INSERT INTO users (id, name, email, password_hash, role, verification_status, interests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, '{}', $7, $7)
		RETURNING ` + userColumns

	err := r.db.QueryRowxContext(ctx, query,
		uuid.New(), name, email, passwordHash, domain.RoleUser, domain.VerificationNormal, now,
	).StructScan(user)
	if err != nil {
		return nil, mapError(err, "create user")
	}
	return user, nil
}

// GetUserByID retrieves a user by id.
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get user")
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return nil, mapError(err, "get user by email")
	}
	return user, nil
}

// UpdateProfile patches the caller's own profile fields.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.ProfileUpdateRequest) (*domain.User, error) {
	var cols []column
	if req.Name != nil {
		cols = append(cols, column{"name", *req.Name})
	}
	if req.Avatar != nil {
		cols = append(cols, column{"avatar", *req.Avatar})
	}
	if req.Bio != nil {
		cols = append(cols, column{"bio", *req.Bio})
	}
	if req.Portfolio != nil {
		cols = append(cols, column{"portfolio", *req.Portfolio})
	}
	if req.Contact != nil {
		cols = append(cols, column{"contact", *req.Contact})
	}

	query, args, err := buildUpdateQuery("users", id, cols, true, r.now(), userColumns)
	if err != nil {
		return nil, err
	}

	user := &domain.User{}
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(user); err != nil {
		return nil, mapError(err, "update profile")
	}
	return user, nil
}

// UpdateUserRole sets a user's role.
func (r *Repository) UpdateUserRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	query, args, err := buildUpdateQuery("users", id, []column{{"role", role}}, true, r.now(), userColumns)
	if err != nil {
		return nil, err
	}
	user := &domain.User{}
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(user); err != nil {
		return nil, mapError(err, "update role")
	}
	return user, nil
}

// addInterests merges values into a user's interests without duplicates.
func addInterests(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, values []string) error {
	if len(values) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE users
		SET interests = ARRAY(SELECT DISTINCT unnest(interests || $1::text[]))
		WHERE id = $2
	`, pq.Array(values), userID)
	return mapError(err, "add interests")
}
