package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fintrack/internal/domain/budget"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, user_id, category_id, name, amount, start_date, end_date,
	       period, alert_threshold, created_at, updated_at`

func scanBudget(row interface{ Scan(...any) error }) (*budget.Budget, error) {
	var b budget.Budget
	err := row.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Name, &b.Amount,
		&b.StartDate, &b.EndDate, &b.Period, &b.AlertThreshold,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) Create(ctx context.Context, params budget.CreateParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, name, amount, start_date, end_date, period, alert_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + budgetColumns

	b, err := scanBudget(r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.CategoryID, params.Name, params.Amount,
		params.StartDate, params.EndDate, params.Period, params.AlertThreshold,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return b, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1`

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return b, nil
}

func (r *BudgetRepository) ListByUserID(ctx context.Context, userID int64) ([]budget.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC
	`

	return r.list(ctx, query, userID)
}

func (r *BudgetRepository) ListOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]budget.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date DESC, id DESC
	`

	return r.list(ctx, query, userID, start, end)
}

func (r *BudgetRepository) list(ctx context.Context, query string, args ...any) ([]budget.Budget, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []budget.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}

	return budgets, nil
}

func (r *BudgetRepository) Update(ctx context.Context, id int64, params budget.UpdateParams) (*budget.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = COALESCE($1, category_id),
		    name = COALESCE($2, name),
		    amount = COALESCE($3, amount),
		    start_date = COALESCE($4, start_date),
		    end_date = COALESCE($5, end_date),
		    period = COALESCE($6, period),
		    alert_threshold = COALESCE($7, alert_threshold),
		    updated_at = NOW()
		WHERE id = $8
		RETURNING ` + budgetColumns

	b, err := scanBudget(r.db.QueryRowContext(
		ctx, query,
		params.CategoryID, params.Name, params.Amount,
		params.StartDate, params.EndDate, params.Period, params.AlertThreshold, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return b, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check budget deletion: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("budget %d not found", id)
	}

	return nil
}
