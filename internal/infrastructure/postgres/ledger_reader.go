package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fintrack/internal/domain/ledger"
)

// LedgerReader implements the read-only aggregate queries over transactions.
// Classification is always by the type column, never by amount sign, and
// expense sums are reported as positive magnitudes.
type LedgerReader struct {
	db *DB
}

func NewLedgerReader(db *DB) *LedgerReader {
	return &LedgerReader{db: db}
}

func (r *LedgerReader) SumExpenses(ctx context.Context, userID, categoryID int64, start, end time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(ABS(amount)), 0)
		FROM transactions
		WHERE user_id = $1 AND category_id = $2 AND type = 'expense'
		  AND transaction_date >= $3 AND transaction_date <= $4
	`

	var total float64
	err := r.db.QueryRowContext(ctx, query, userID, categoryID, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum category expenses: %w", err)
	}

	return total, nil
}

func (r *LedgerReader) SumByType(ctx context.Context, userID int64, txType string, start, end time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(ABS(amount)), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2
		  AND transaction_date >= $3 AND transaction_date <= $4
	`

	var total float64
	err := r.db.QueryRowContext(ctx, query, userID, txType, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum %s transactions: %w", txType, err)
	}

	return total, nil
}

func (r *LedgerReader) TotalBalance(ctx context.Context, userID int64) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN ABS(amount) ELSE -ABS(amount) END), 0)
		FROM transactions
		WHERE user_id = $1
	`

	var balance float64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to compute total balance: %w", err)
	}

	return balance, nil
}

func (r *LedgerReader) ExpenseTotalsByCategory(ctx context.Context, userID int64, start, end time.Time) ([]ledger.CategoryTotal, error) {
	query := `
		SELECT t.category_id, COALESCE(c.name, ''), SUM(ABS(t.amount)), COUNT(*)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.type = 'expense'
		  AND t.transaction_date >= $2 AND t.transaction_date <= $3
		GROUP BY t.category_id, c.name
		ORDER BY SUM(ABS(t.amount)) DESC, COALESCE(c.name, '') ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	defer rows.Close()

	totals := []ledger.CategoryTotal{}
	for rows.Next() {
		var t ledger.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.Category, &t.Amount, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category totals: %w", err)
	}

	return totals, nil
}

func (r *LedgerReader) MonthlyTotals(ctx context.Context, userID int64, since time.Time) ([]ledger.MonthlyTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM transaction_date)::int,
		       EXTRACT(MONTH FROM transaction_date)::int,
		       COALESCE(SUM(CASE WHEN type = 'income' THEN ABS(amount) ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN type = 'expense' THEN ABS(amount) ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1 AND transaction_date >= $2
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly totals: %w", err)
	}
	defer rows.Close()

	totals := []ledger.MonthlyTotal{}
	for rows.Next() {
		var t ledger.MonthlyTotal
		if err := rows.Scan(&t.Year, &t.Month, &t.Income, &t.Expenses); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly totals: %w", err)
	}

	return totals, nil
}

func (r *LedgerReader) RecentEntries(ctx context.Context, userID int64, limit int) ([]ledger.Entry, error) {
	query := `
		SELECT t.id, t.category_id, COALESCE(c.name, ''), t.amount, t.type,
		       t.description, t.transaction_date
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.transaction_date DESC, t.id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *LedgerReader) EntriesInRange(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error) {
	query := `
		SELECT t.id, t.category_id, COALESCE(c.name, ''), t.amount, t.type,
		       t.description, t.transaction_date
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		  AND ($2::timestamptz IS NULL OR t.transaction_date >= $2)
		  AND ($3::timestamptz IS NULL OR t.transaction_date <= $3)
		ORDER BY t.transaction_date DESC, t.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries in range: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *LedgerReader) CategoryName(ctx context.Context, categoryID int64) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM categories WHERE id = $1`, categoryID).Scan(&name)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve category name: %w", err)
	}

	return name, nil
}

func scanEntries(rows *sql.Rows) ([]ledger.Entry, error) {
	entries := []ledger.Entry{}
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(
			&e.ID, &e.CategoryID, &e.Category, &e.Amount, &e.Type,
			&e.Description, &e.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}
