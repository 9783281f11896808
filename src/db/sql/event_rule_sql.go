package db

import (
	"context"
	"fmt"

	"gestor-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const eventRuleColumns = `id, account_id, name, is_active, trigger_category_id, trigger_transaction_type,
	action_type, action_destination_category_id, action_transaction_type, action_description,
	action_fixed_amount, action_percentage, created_by_id, created_at`

func scanEventRule(row interface{ Scan(...interface{}) error }) (*models.EventRule, error) {
	var r models.EventRule
	err := row.Scan(&r.ID, &r.AccountID, &r.Name, &r.IsActive, &r.TriggerCategoryID, &r.TriggerTransactionType,
		&r.ActionType, &r.ActionDestinationCategoryID, &r.ActionTransactionType, &r.ActionDescription,
		&r.ActionFixedAmount, &r.ActionPercentage, &r.CreatedByID, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func CreateEventRule(ctx context.Context, pool *pgxpool.Pool, rule *models.EventRule) (*models.EventRule, error) {
	query := `
		INSERT INTO event_rules (account_id, name, is_active, trigger_category_id, trigger_transaction_type,
			action_type, action_destination_category_id, action_transaction_type, action_description,
			action_fixed_amount, action_percentage, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + eventRuleColumns
	return scanEventRule(pool.QueryRow(ctx, query,
		rule.AccountID, rule.Name, rule.IsActive, rule.TriggerCategoryID, rule.TriggerTransactionType,
		rule.ActionType, rule.ActionDestinationCategoryID, rule.ActionTransactionType, rule.ActionDescription,
		rule.ActionFixedAmount, rule.ActionPercentage, rule.CreatedByID))
}

func GetEventRuleByID(ctx context.Context, pool *pgxpool.Pool, accountID, ruleID int64) (*models.EventRule, error) {
	query := `SELECT ` + eventRuleColumns + ` FROM event_rules WHERE id = $1 AND account_id = $2`
	return scanEventRule(pool.QueryRow(ctx, query, ruleID, accountID))
}

func GetEventRulesForAccount(ctx context.Context, pool *pgxpool.Pool, accountID int64) ([]models.EventRule, error) {
	query := `SELECT ` + eventRuleColumns + ` FROM event_rules WHERE account_id = $1 ORDER BY name`
	rows, err := pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.EventRule
	for rows.Next() {
		r, err := scanEventRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

func UpdateEventRule(ctx context.Context, pool *pgxpool.Pool, rule *models.EventRule) (*models.EventRule, error) {
	query := `
		UPDATE event_rules
		SET name = $1, is_active = $2, trigger_category_id = $3, trigger_transaction_type = $4,
			action_type = $5, action_destination_category_id = $6, action_transaction_type = $7,
			action_description = $8, action_fixed_amount = $9, action_percentage = $10
		WHERE id = $11 AND account_id = $12
		RETURNING ` + eventRuleColumns
	return scanEventRule(pool.QueryRow(ctx, query,
		rule.Name, rule.IsActive, rule.TriggerCategoryID, rule.TriggerTransactionType,
		rule.ActionType, rule.ActionDestinationCategoryID, rule.ActionTransactionType,
		rule.ActionDescription, rule.ActionFixedAmount, rule.ActionPercentage,
		rule.ID, rule.AccountID))
}

func DeleteEventRule(ctx context.Context, pool *pgxpool.Pool, accountID, ruleID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM event_rules WHERE id = $1 AND account_id = $2`, ruleID, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("event rule not found")
	}
	return nil
}

// FindActiveEventRules is the evaluator's matching query: active rules of the
// account whose trigger matches the new transaction's category and type.
func FindActiveEventRules(ctx context.Context, pool *pgxpool.Pool, accountID, triggerCategoryID int64, triggerType models.TransactionType) ([]models.EventRule, error) {
	query := `SELECT ` + eventRuleColumns + `
		FROM event_rules
		WHERE account_id = $1 AND trigger_category_id = $2 AND trigger_transaction_type = $3 AND is_active
		ORDER BY id`
	rows, err := pool.Query(ctx, query, accountID, triggerCategoryID, triggerType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.EventRule
	for rows.Next() {
		r, err := scanEventRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}
