package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, type, description, notes, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, category_id, amount, type, description, notes,
		          transaction_date, created_at, updated_at
	`

	var t transaction.Transaction
	err := r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.CategoryID, params.Amount, params.Type,
		params.Description, params.Notes, params.TransactionDate,
	).Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &t.Description,
		&t.Notes, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, amount, type, description, notes,
		       transaction_date, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	var t transaction.Transaction
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &t.Description,
		&t.Notes, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &t, nil
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, amount, type, description, notes,
		       transaction_date, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*transaction.Transaction{}
	for rows.Next() {
		var t transaction.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &t.Description,
			&t.Notes, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id int64, params transaction.UpdateParams) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET category_id = COALESCE($1, category_id),
		    amount = COALESCE($2, amount),
		    type = COALESCE($3, type),
		    description = COALESCE($4, description),
		    notes = COALESCE($5, notes),
		    transaction_date = COALESCE($6, transaction_date),
		    updated_at = NOW()
		WHERE id = $7
		RETURNING id, user_id, category_id, amount, type, description, notes,
		          transaction_date, created_at, updated_at
	`

	var t transaction.Transaction
	err := r.db.QueryRowContext(
		ctx, query,
		params.CategoryID, params.Amount, params.Type, params.Description,
		params.Notes, params.TransactionDate, id,
	).Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &t.Description,
		&t.Notes, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &t, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check transaction deletion: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction %d not found", id)
	}

	return nil
}
