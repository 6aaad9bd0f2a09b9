package repository

import (
	"context"
	"database/sql"
	"fmt"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	FindByUser(ctx context.Context, userID string) ([]model.Submission, error)
	FindByUserAndStatus(ctx context.Context, userID string, status model.SubmissionStatus) ([]model.Submission, error)
	// CountByQuestion returns how many submissions exist per question id.
	CountByQuestion(ctx context.Context) (map[string]int, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	query := `INSERT INTO submissions (id, user_id, question_id, status)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.UserID, sub.QuestionID, sub.Status)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Delete: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSubmissionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.DeleteByUser: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.DeleteByUser rows affected: %w", err)
	}
	return affected, nil
}

func (r *pgSubmissionRepository) FindByUser(ctx context.Context, userID string) ([]model.Submission, error) {
	query := `SELECT id, user_id, question_id, status, timestamp
	          FROM submissions WHERE user_id = $1 ORDER BY timestamp DESC`
	return r.querySubmissions(ctx, "FindByUser", query, userID)
}

func (r *pgSubmissionRepository) FindByUserAndStatus(ctx context.Context, userID string, status model.SubmissionStatus) ([]model.Submission, error) {
	query := `SELECT id, user_id, question_id, status, timestamp
	          FROM submissions WHERE user_id = $1 AND status = $2 ORDER BY timestamp DESC`
	return r.querySubmissions(ctx, "FindByUserAndStatus", query, userID, status)
}

func (r *pgSubmissionRepository) CountByQuestion(ctx context.Context) (map[string]int, error) {
	query := `SELECT question_id, COUNT(*) FROM submissions GROUP BY question_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.CountByQuestion query: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var questionID string
		var count int
		if err := rows.Scan(&questionID, &count); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.CountByQuestion scan: %w", err)
		}
		counts[questionID] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.CountByQuestion rows.Err: %w", err)
	}
	return counts, nil
}

func (r *pgSubmissionRepository) querySubmissions(ctx context.Context, op, query string, args ...interface{}) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.%s query: %w", op, err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.QuestionID, &s.Status, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.%s scan: %w", op, err)
		}
		subs = append(subs, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.%s rows.Err: %w", op, err)
	}
	return subs, nil
}
