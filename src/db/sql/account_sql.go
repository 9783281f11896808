package db

import (
	"context"
	"fmt"

	"gestor-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateAccount inserts the account and enrolls the owner as its first
// member in one transaction.
func CreateAccount(ctx context.Context, pool *pgxpool.Pool, name string, ownerID int64) (*models.Account, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var account models.Account
	err = tx.QueryRow(ctx, `
		INSERT INTO accounts (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at
	`, name, ownerID).Scan(&account.ID, &account.Name, &account.OwnerID, &account.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO memberships (user_id, account_id)
		VALUES ($1, $2)
	`, ownerID, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to enroll owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &account, nil
}

func GetAccountsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Account, error) {
	query := `
		SELECT a.id, a.name, a.owner_id, a.created_at
		FROM accounts a
		JOIN memberships m ON m.account_id = a.id
		WHERE m.user_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.OwnerID, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func IsAccountMember(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM memberships WHERE user_id = $1 AND account_id = $2)
	`, userID, accountID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
