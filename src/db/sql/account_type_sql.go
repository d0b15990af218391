package db

import (
	"context"
	"errors"

	"finbook-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAllAccountTypes(ctx context.Context, pool *pgxpool.Pool) ([]models.AccountType, error) {
	query := `SELECT id, name, icon_name FROM account_types ORDER BY name`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accountTypes []models.AccountType
	for rows.Next() {
		var at models.AccountType
		if err := rows.Scan(&at.ID, &at.Name, &at.IconName); err != nil {
			return nil, err
		}
		accountTypes = append(accountTypes, at)
	}
	return accountTypes, rows.Err()
}

func GetAccountTypeByID(ctx context.Context, pool *pgxpool.Pool, id int64) (*models.AccountType, error) {
	query := `SELECT id, name, icon_name FROM account_types WHERE id = $1`

	var at models.AccountType
	err := pool.QueryRow(ctx, query, id).Scan(&at.ID, &at.Name, &at.IconName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &at, nil
}

func CreateAccountType(ctx context.Context, pool *pgxpool.Pool, accountType *models.AccountType) (*models.AccountType, error) {
	query := `
		INSERT INTO account_types (name, icon_name)
		VALUES ($1, $2)
		RETURNING id, name, icon_name
	`
	var at models.AccountType
	err := pool.QueryRow(ctx, query, accountType.Name, accountType.IconName).
		Scan(&at.ID, &at.Name, &at.IconName)
	if err != nil {
		return nil, err
	}
	return &at, nil
}
