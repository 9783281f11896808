package db

import (
	"context"
	"fmt"

	"gestor-server/src/db"
	"gestor-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetCategoriesForAccount returns the global categories plus the account's
// own custom ones.
func GetCategoriesForAccount(ctx context.Context, pool *pgxpool.Pool, accountID int64) ([]models.Category, error) {
	query := `
		SELECT id, name, account_id
		FROM categories
		WHERE account_id IS NULL OR account_id = $1
		ORDER BY name
	`
	rows, err := pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.AccountID); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, name string, accountID int64) (*models.Category, error) {
	query := `
		INSERT INTO categories (name, account_id)
		VALUES ($1, $2)
		RETURNING id, name, account_id
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, name, accountID).Scan(&c.ID, &c.Name, &c.AccountID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCategory only removes the account's own categories; global ones are
// not deletable through the API.
func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, accountID, categoryID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND account_id = $2`, categoryID, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("category not found")
	}
	// Balances keyed on this account may reference the deleted category.
	db.ClearAllBalanceCaches()
	return nil
}

// CategoryVisibleToAccount reports whether a category may be referenced from
// the account: it is global or belongs to that account.
func CategoryVisibleToAccount(ctx context.Context, pool *pgxpool.Pool, categoryID, accountID int64) (bool, error) {
	var visible bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE id = $1 AND (account_id IS NULL OR account_id = $2)
		)
	`, categoryID, accountID).Scan(&visible)
	if err != nil {
		return false, err
	}
	return visible, nil
}
