package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.Name).Scan(
		&c.ID, &c.UserID, &c.Name,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query := `
		SELECT id, user_id, name
		FROM categories
		WHERE id = $1
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.UserID, &c.Name)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}

func (r *CategoryRepository) ListByUserID(ctx context.Context, userID int64) ([]*category.Category, error) {
	query := `
		SELECT id, user_id, name
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Rename(ctx context.Context, id int64, name string) (*category.Category, error) {
	query := `
		UPDATE categories
		SET name = $1
		WHERE id = $2
		RETURNING id, user_id, name
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, name, id).Scan(&c.ID, &c.UserID, &c.Name)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}

	return &c, nil
}

// Delete removes a category. Its transactions and budgets go with it via
// ON DELETE CASCADE.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check category deletion: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("category %d not found", id)
	}

	return nil
}
