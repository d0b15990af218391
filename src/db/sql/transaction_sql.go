package db

import (
	"context"
	"errors"

	"finbook-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, transaction *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (amount, description, paid, transaction_date, category_id, account_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, amount, description, paid, transaction_date, category_id, account_id, created_at
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query,
		transaction.Amount,
		transaction.Description,
		transaction.Paid,
		transaction.TransactionDate,
		transaction.CategoryID,
		transaction.AccountID,
	).Scan(&t.ID, &t.Amount, &t.Description, &t.Paid, &t.TransactionDate, &t.CategoryID, &t.AccountID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTransactionByID resolves ownership through the category's owner; there
// is no user column on transactions.
func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) (*models.Transaction, error) {
	query := `
		SELECT t.id, t.amount, t.description, t.paid, t.transaction_date, t.category_id, t.account_id, t.created_at
		FROM transactions t
		JOIN transaction_categories c ON t.category_id = c.id
		WHERE t.id = $1 AND c.user_id = $2
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query, transactionID, userID).
		Scan(&t.ID, &t.Amount, &t.Description, &t.Paid, &t.TransactionDate, &t.CategoryID, &t.AccountID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func GetAllTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64, filter *TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.amount, t.description, t.paid, t.transaction_date, t.category_id, t.account_id, t.created_at
		FROM transactions t
		JOIN transaction_categories c ON t.category_id = c.id
		WHERE c.user_id = $1
	`
	args := []interface{}{userID}
	if filter != nil {
		query, args = filter.Apply(query, args)
	}
	query += ` ORDER BY t.transaction_date DESC, t.id DESC`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.Amount, &t.Description, &t.Paid, &t.TransactionDate, &t.CategoryID, &t.AccountID, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, userID int64, transaction *models.Transaction) (*models.Transaction, error) {
	// Visibility is checked against the row's current category owner, so a
	// transaction cannot be reached by first repointing its category.
	query := `
		UPDATE transactions
		SET amount = $1, description = $2, paid = $3, transaction_date = $4, category_id = $5, account_id = $6
		WHERE id = $7 AND category_id IN (
			SELECT id FROM transaction_categories WHERE user_id = $8
		)
		RETURNING id, amount, description, paid, transaction_date, category_id, account_id, created_at
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query,
		transaction.Amount,
		transaction.Description,
		transaction.Paid,
		transaction.TransactionDate,
		transaction.CategoryID,
		transaction.AccountID,
		transaction.ID,
		userID,
	).Scan(&t.ID, &t.Amount, &t.Description, &t.Paid, &t.TransactionDate, &t.CategoryID, &t.AccountID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) error {
	query := `
		DELETE FROM transactions
		WHERE id = $1 AND category_id IN (
			SELECT id FROM transaction_categories WHERE user_id = $2
		)
	`
	cmd, err := pool.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
