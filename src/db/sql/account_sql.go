package db

import (
	"context"
	"errors"

	"finbook-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (name, description, account_type_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, account_type_id, user_id, created_at
	`
	var a models.Account
	err := pool.QueryRow(ctx, query, account.Name, account.Description, account.AccountTypeID, account.UserID).
		Scan(&a.ID, &a.Name, &a.Description, &a.AccountTypeID, &a.UserID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func GetAccountByID(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) (*models.Account, error) {
	query := `
		SELECT id, name, description, account_type_id, user_id, created_at
		FROM accounts WHERE id = $1 AND user_id = $2
	`
	var a models.Account
	err := pool.QueryRow(ctx, query, accountID, userID).
		Scan(&a.ID, &a.Name, &a.Description, &a.AccountTypeID, &a.UserID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func GetAllAccountsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Account, error) {
	query := `
		SELECT id, name, description, account_type_id, user_id, created_at
		FROM accounts WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.AccountTypeID, &a.UserID, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func UpdateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET name = $1, description = $2, account_type_id = $3
		WHERE id = $4 AND user_id = $5
		RETURNING id, name, description, account_type_id, user_id, created_at
	`
	var a models.Account
	err := pool.QueryRow(ctx, query, account.Name, account.Description, account.AccountTypeID, account.ID, account.UserID).
		Scan(&a.ID, &a.Name, &a.Description, &a.AccountTypeID, &a.UserID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func DeleteAccount(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) error {
	query := `DELETE FROM accounts WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, accountID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
