package db

import (
	"context"
	"fmt"

	"gestor-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const scheduledRuleColumns = `id, account_id, name, is_active, schedule_day_of_month, source_category_id,
	action_destination_category_id, action_type, action_description,
	action_fixed_amount, action_percentage, created_by_id, created_at`

func scanScheduledRule(row interface{ Scan(...interface{}) error }) (*models.ScheduledRule, error) {
	var r models.ScheduledRule
	err := row.Scan(&r.ID, &r.AccountID, &r.Name, &r.IsActive, &r.ScheduleDayOfMonth, &r.SourceCategoryID,
		&r.ActionDestinationCategoryID, &r.ActionType, &r.ActionDescription,
		&r.ActionFixedAmount, &r.ActionPercentage, &r.CreatedByID, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func CreateScheduledRule(ctx context.Context, pool *pgxpool.Pool, rule *models.ScheduledRule) (*models.ScheduledRule, error) {
	query := `
		INSERT INTO scheduled_rules (account_id, name, is_active, schedule_day_of_month, source_category_id,
			action_destination_category_id, action_type, action_description,
			action_fixed_amount, action_percentage, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + scheduledRuleColumns
	return scanScheduledRule(pool.QueryRow(ctx, query,
		rule.AccountID, rule.Name, rule.IsActive, rule.ScheduleDayOfMonth, rule.SourceCategoryID,
		rule.ActionDestinationCategoryID, rule.ActionType, rule.ActionDescription,
		rule.ActionFixedAmount, rule.ActionPercentage, rule.CreatedByID))
}

func GetScheduledRuleByID(ctx context.Context, pool *pgxpool.Pool, accountID, ruleID int64) (*models.ScheduledRule, error) {
	query := `SELECT ` + scheduledRuleColumns + ` FROM scheduled_rules WHERE id = $1 AND account_id = $2`
	return scanScheduledRule(pool.QueryRow(ctx, query, ruleID, accountID))
}

func GetScheduledRulesForAccount(ctx context.Context, pool *pgxpool.Pool, accountID int64) ([]models.ScheduledRule, error) {
	query := `SELECT ` + scheduledRuleColumns + ` FROM scheduled_rules WHERE account_id = $1 ORDER BY name`
	rows, err := pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.ScheduledRule
	for rows.Next() {
		r, err := scanScheduledRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

func UpdateScheduledRule(ctx context.Context, pool *pgxpool.Pool, rule *models.ScheduledRule) (*models.ScheduledRule, error) {
	query := `
		UPDATE scheduled_rules
		SET name = $1, is_active = $2, schedule_day_of_month = $3, source_category_id = $4,
			action_destination_category_id = $5, action_type = $6, action_description = $7,
			action_fixed_amount = $8, action_percentage = $9
		WHERE id = $10 AND account_id = $11
		RETURNING ` + scheduledRuleColumns
	return scanScheduledRule(pool.QueryRow(ctx, query,
		rule.Name, rule.IsActive, rule.ScheduleDayOfMonth, rule.SourceCategoryID,
		rule.ActionDestinationCategoryID, rule.ActionType, rule.ActionDescription,
		rule.ActionFixedAmount, rule.ActionPercentage,
		rule.ID, rule.AccountID))
}

func DeleteScheduledRule(ctx context.Context, pool *pgxpool.Pool, accountID, ruleID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM scheduled_rules WHERE id = $1 AND account_id = $2`, ruleID, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("scheduled rule not found")
	}
	return nil
}

// FindActiveScheduledRules returns every active rule due on the given
// day-of-month, across all accounts.
func FindActiveScheduledRules(ctx context.Context, pool *pgxpool.Pool, dayOfMonth int) ([]models.ScheduledRule, error) {
	query := `SELECT ` + scheduledRuleColumns + `
		FROM scheduled_rules
		WHERE schedule_day_of_month = $1 AND is_active
		ORDER BY id`
	rows, err := pool.Query(ctx, query, dayOfMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.ScheduledRule
	for rows.Next() {
		r, err := scanScheduledRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}
