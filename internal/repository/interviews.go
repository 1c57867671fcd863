package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

func (r *Repository) GetInterviewByID(id int64) (*domain.Interview, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT application_id, status, observations, scheduled_at, confirmed_by, platform, duration_minutes, created_at, version
		FROM interviews WHERE id = $1
	`

	iv := &domain.Interview{
		ID: id,
	}

	dst := []any{&iv.ApplicationID, &iv.Status, &iv.Observations, &iv.ScheduledAt, &iv.ConfirmedBy, &iv.Platform, &iv.DurationMinutes, &iv.CreatedAt, &iv.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.fillProposedDates(ctx, iv); err != nil {
		return nil, err
	}

	return iv, nil
}

func (r *Repository) GetInterviewByApplicationID(applicationID int64) (*domain.Interview, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, status, observations, scheduled_at, confirmed_by, platform, duration_minutes, created_at, version
		FROM interviews WHERE application_id = $1
	`

	iv := &domain.Interview{
		ApplicationID: applicationID,
	}

	dst := []any{&iv.ID, &iv.Status, &iv.Observations, &iv.ScheduledAt, &iv.ConfirmedBy, &iv.Platform, &iv.DurationMinutes, &iv.CreatedAt, &iv.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, applicationID).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.fillProposedDates(ctx, iv); err != nil {
		return nil, err
	}

	return iv, nil
}

func (r *Repository) fillProposedDates(ctx context.Context, iv *domain.Interview) error {
	query := `
		SELECT proposed_date FROM interview_proposed_dates
		WHERE interview_id = $1
		ORDER BY proposed_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, iv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	iv.ProposedDates = []time.Time{}
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return err
		}
		iv.ProposedDates = append(iv.ProposedDates, date)
	}

	if err := rows.Err(); err != nil {
		return err
	}

	return nil
}

// UpdateInterview 把一次调度操作产生的全部改动作为一个事务持久化。
// 乐观并发控制：版本不匹配时返回 sql.ErrNoRows，由调用方作为冲突处理。
func (r *Repository) UpdateInterview(iv *domain.Interview) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE interviews
		SET
			status = $1,
			observations = $2,
			scheduled_at = $3,
			confirmed_by = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	args := []any{iv.Status, iv.Observations, iv.ScheduledAt, iv.ConfirmedBy, iv.ID, iv.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&iv.Version); err != nil {
		return err
	}

	// 候选时间整体替换：先删除原有记录再插入
	query = `DELETE FROM interview_proposed_dates WHERE interview_id = $1`
	if _, err := tx.ExecContext(ctx, query, iv.ID); err != nil {
		return err
	}

	for _, date := range iv.ProposedDates {
		query := `
			INSERT INTO interview_proposed_dates (interview_id, proposed_date)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, iv.ID, date); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetBookedIntervals 把审核官已确认的面试导出为与 [from, to) 有重叠的只读时间段
func (r *Repository) GetBookedIntervals(ctx context.Context, reviewerID int64, from time.Time, to time.Time) ([]domain.BookedInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT i.scheduled_at, i.duration_minutes
		FROM interviews i
		INNER JOIN applications a ON a.id = i.application_id
		WHERE a.reviewer_id = $1
			AND i.status = $2
			AND i.scheduled_at < $4
			AND i.scheduled_at + make_interval(mins => i.duration_minutes) > $3
	`

	rows, err := r.dbpool.QueryContext(ctx, query, reviewerID, domain.InterviewStatusConfirmed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	intervals := []domain.BookedInterval{}
	for rows.Next() {
		var scheduledAt time.Time
		var durationMinutes int32
		if err := rows.Scan(&scheduledAt, &durationMinutes); err != nil {
			return nil, err
		}
		intervals = append(intervals, domain.BookedInterval{
			Start: scheduledAt,
			End:   scheduledAt.Add(time.Duration(durationMinutes) * time.Minute),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return intervals, nil
}
