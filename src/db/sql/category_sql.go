package db

import (
	"context"
	"errors"

	"finbook-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.TransactionCategory) (*models.TransactionCategory, error) {
	query := `
		INSERT INTO transaction_categories (name, icon_name, category_type, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, icon_name, category_type, user_id, created_at
	`
	var c models.TransactionCategory
	err := pool.QueryRow(ctx, query, category.Name, category.IconName, category.CategoryType, category.UserID).
		Scan(&c.ID, &c.Name, &c.IconName, &c.CategoryType, &c.UserID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int64) (*models.TransactionCategory, error) {
	query := `
		SELECT id, name, icon_name, category_type, user_id, created_at
		FROM transaction_categories WHERE id = $1 AND user_id = $2
	`
	var c models.TransactionCategory
	err := pool.QueryRow(ctx, query, categoryID, userID).
		Scan(&c.ID, &c.Name, &c.IconName, &c.CategoryType, &c.UserID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func GetAllCategoriesForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.TransactionCategory, error) {
	query := `
		SELECT id, name, icon_name, category_type, user_id, created_at
		FROM transaction_categories WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.TransactionCategory
	for rows.Next() {
		var c models.TransactionCategory
		err := rows.Scan(&c.ID, &c.Name, &c.IconName, &c.CategoryType, &c.UserID, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.TransactionCategory) (*models.TransactionCategory, error) {
	query := `
		UPDATE transaction_categories
		SET name = $1, icon_name = $2, category_type = $3
		WHERE id = $4 AND user_id = $5
		RETURNING id, name, icon_name, category_type, user_id, created_at
	`
	var c models.TransactionCategory
	err := pool.QueryRow(ctx, query, category.Name, category.IconName, category.CategoryType, category.ID, category.UserID).
		Scan(&c.ID, &c.Name, &c.IconName, &c.CategoryType, &c.UserID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int64) error {
	query := `DELETE FROM transaction_categories WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, categoryID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
