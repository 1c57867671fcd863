package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

func (r *Repository) CreateAvailabilityRule(rule *domain.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO availability_rules (owner_id, owner_role, day_of_week, start_time, end_time, active_from, active_until, is_exclusion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	args := []any{rule.OwnerID, rule.OwnerRole, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.ActiveFrom, rule.ActiveUntil, rule.IsExclusion}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAvailabilityRuleByID(id int64) (*domain.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT owner_id, owner_role, day_of_week, start_time, end_time, active_from, active_until, is_exclusion, created_at, version
		FROM availability_rules WHERE id = $1
	`

	rule := &domain.AvailabilityRule{
		ID: id,
	}

	dst := []any{&rule.OwnerID, &rule.OwnerRole, &rule.DayOfWeek, &rule.StartTime, &rule.EndTime, &rule.ActiveFrom, &rule.ActiveUntil, &rule.IsExclusion, &rule.CreatedAt, &rule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return rule, nil
}

func (r *Repository) GetAvailabilityRulesByOwner(ownerID int64) ([]*domain.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, owner_id, owner_role, day_of_week, start_time, end_time, active_from, active_until, is_exclusion, created_at, version
		FROM availability_rules
		WHERE owner_id = $1
		ORDER BY day_of_week, start_time
	`

	return r.queryRules(ctx, query, ownerID)
}

// GetActiveRules 获取某个用户生效范围与 [from, to) 有重叠的所有规则，
// active_until 为 NULL 时视为无限期生效
func (r *Repository) GetActiveRules(ctx context.Context, ownerID int64, ownerRole domain.Role, from time.Time, to time.Time) ([]*domain.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, owner_id, owner_role, day_of_week, start_time, end_time, active_from, active_until, is_exclusion, created_at, version
		FROM availability_rules
		WHERE owner_id = $1
			AND owner_role = $2
			AND active_from < $4
			AND (active_until IS NULL OR active_until >= $3)
	`

	return r.queryRules(ctx, query, ownerID, ownerRole, from, to)
}

func (r *Repository) queryRules(ctx context.Context, query string, args ...any) ([]*domain.AvailabilityRule, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []*domain.AvailabilityRule{}
	for rows.Next() {
		var rule domain.AvailabilityRule
		dst := []any{&rule.ID, &rule.OwnerID, &rule.OwnerRole, &rule.DayOfWeek, &rule.StartTime, &rule.EndTime, &rule.ActiveFrom, &rule.ActiveUntil, &rule.IsExclusion, &rule.CreatedAt, &rule.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *Repository) UpdateAvailabilityRule(rule *domain.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE availability_rules
		SET
			day_of_week = $1,
			start_time = $2,
			end_time = $3,
			active_from = $4,
			active_until = $5,
			is_exclusion = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	args := []any{rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.ActiveFrom, rule.ActiveUntil, rule.IsExclusion, rule.ID, rule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rule.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAvailabilityRule(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM availability_rules WHERE id = $1
	`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
