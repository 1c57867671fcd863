package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

// CreateApplicationWithInterview 在同一个事务中创建申请及其对应的面试，
// 面试的初始状态（协商模式或直选模式）由创建方指定
func (r *Repository) CreateApplicationWithInterview(app *domain.Application, iv *domain.Interview) error {
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
		INSERT INTO applications (applicant_id, reviewer_id, stage)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, app.ApplicantID, app.ReviewerID, app.Stage).Scan(&app.ID, &app.CreatedAt, &app.Version); err != nil {
		return err
	}

	iv.ApplicationID = app.ID

	query = `
		INSERT INTO interviews (application_id, status, platform, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{iv.ApplicationID, iv.Status, iv.Platform, iv.DurationMinutes}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&iv.ID, &iv.CreatedAt, &iv.Version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetApplicationByID(id int64) (*domain.Application, error) {
	query := `
		SELECT applicant_id, reviewer_id, stage, created_at, version
		FROM applications WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	app := &domain.Application{
		ID: id,
	}

	dst := []any{&app.ApplicantID, &app.ReviewerID, &app.Stage, &app.CreatedAt, &app.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return app, nil
}

// GetApplicationsByPartyID 获取某个用户作为申请人或审核官参与的所有申请
func (r *Repository) GetApplicationsByPartyID(userID int64) ([]*domain.Application, error) {
	query := `
		SELECT id, applicant_id, reviewer_id, stage, created_at, version
		FROM applications
		WHERE applicant_id = $1 OR reviewer_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []*domain.Application{}
	for rows.Next() {
		var app domain.Application
		dst := []any{&app.ID, &app.ApplicantID, &app.ReviewerID, &app.Stage, &app.CreatedAt, &app.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		apps = append(apps, &app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *Repository) UpdateApplication(app *domain.Application) error {
	query := `
		UPDATE applications
		SET
			stage = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, app.Stage, app.ID, app.Version).Scan(&app.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteApplication(id int64) error {
	query := `
		DELETE FROM applications WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
