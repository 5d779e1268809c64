package database

import (
	"context"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/google/uuid"
)

const categoryColumns = "id, name, description, created_at"

// ListCategories returns all categories by name.
func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := r.db.SelectContext(ctx, &categories, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`); err != nil {
		return nil, mapError(err, "list categories")
	}
	return categories, nil
}

// CreateCategory inserts a category. Names are unique.
func (r *Repository) CreateCategory(ctx context.Context, name string, description *string) (*domain.Category, error) {
	category := &domain.Category{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO categories (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		uuid.New(), name, description, r.now(),
	).StructScan(category)
	if err != nil {
		return nil, mapError(err, "create category")
	}
	return category, nil
}

// UpdateCategory patches a category.
func (r *Repository) UpdateCategory(ctx context.Context, id uuid.UUID, req *domain.CategoryRequest) (*domain.Category, error) {
	var cols []column
	if req.Name != nil {
		cols = append(cols, column{"name", *req.Name})
	}
	if req.Description != nil {
		cols = append(cols, column{"description", *req.Description})
	}
	query, args, err := buildUpdateQuery("categories", id, cols, false, r.now(), categoryColumns)
	if err != nil {
		return nil, err
	}
	category := &domain.Category{}
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(category); err != nil {
		return nil, mapError(err, "update category")
	}
	return category, nil
}

// DeleteCategory removes a category. Its posts become uncategorized.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete category")
	}
	return requireAffected(res, "delete category")
}
