package db

import (
	"context"
	"fmt"

	"gestor-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateInsight(ctx context.Context, pool *pgxpool.Pool, insight *models.Insight) (*models.Insight, error) {
	query := `
		INSERT INTO insights (user_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, message, generated_at, is_read
	`
	var i models.Insight
	err := pool.QueryRow(ctx, query, insight.UserID, insight.Title, insight.Message).
		Scan(&i.ID, &i.UserID, &i.Title, &i.Message, &i.GeneratedAt, &i.IsRead)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func GetInsightsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Insight, error) {
	query := `
		SELECT id, user_id, title, message, generated_at, is_read
		FROM insights
		WHERE user_id = $1
		ORDER BY generated_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []models.Insight
	for rows.Next() {
		var i models.Insight
		err := rows.Scan(&i.ID, &i.UserID, &i.Title, &i.Message, &i.GeneratedAt, &i.IsRead)
		if err != nil {
			return nil, err
		}
		insights = append(insights, i)
	}
	return insights, rows.Err()
}

func MarkInsightRead(ctx context.Context, pool *pgxpool.Pool, userID, insightID int64) error {
	cmd, err := pool.Exec(ctx, `UPDATE insights SET is_read = TRUE WHERE id = $1 AND user_id = $2`, insightID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("insight not found")
	}
	return nil
}
