package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"algoprep/internal/common"
	"algoprep/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	FindBySlug(ctx context.Context, slug string) (*model.Question, error)
	FindByTitle(ctx context.Context, title string) (*model.Question, error)
	ListAll(ctx context.Context) ([]model.Question, error)
	// ListExcluding returns all questions whose id is not in the given set.
	ListExcluding(ctx context.Context, excludedIDs []string) ([]model.Question, error)
	// FindByLoweredTitles resolves lowercase title strings (as produced by
	// the prefix index) back to full records, case-insensitively.
	FindByLoweredTitles(ctx context.Context, loweredTitles []string) ([]model.Question, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

const questionColumns = `id, title, slug, description, difficulty, tags, created_at, updated_at`

func scanQuestion(row interface{ Scan(...interface{}) error }) (*model.Question, error) {
	q := &model.Question{}
	err := row.Scan(&q.ID, &q.Title, &q.Slug, &q.Description, &q.Difficulty, &q.Tags, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions (id, title, slug, description, difficulty, tags)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, q.ID, q.Title, q.Slug, q.Description, q.Difficulty, q.Tags)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint on title/slug
			return fmt.Errorf("question with this title already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) Update(ctx context.Context, q *model.Question) error {
	query := `UPDATE questions SET
	            title = $1, slug = $2, description = $3, difficulty = $4, tags = $5,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, q.Title, q.Slug, q.Description, q.Difficulty, q.Tags, q.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("question with this title already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgQuestionRepository.Update: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgQuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Delete: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	return q, nil
}

func (r *pgQuestionRepository) FindBySlug(ctx context.Context, slug string) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE slug = $1`
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindBySlug: %w", err)
	}
	return q, nil
}

func (r *pgQuestionRepository) FindByTitle(ctx context.Context, title string) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE title = $1`
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByTitle: %w", err)
	}
	return q, nil
}

func (r *pgQuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY created_at ASC`
	return r.queryQuestions(ctx, "ListAll", query)
}

func (r *pgQuestionRepository) ListExcluding(ctx context.Context, excludedIDs []string) ([]model.Question, error) {
	if len(excludedIDs) == 0 {
		return r.ListAll(ctx)
	}
	placeholders := make([]string, len(excludedIDs))
	args := make([]interface{}, len(excludedIDs))
	for i, id := range excludedIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id NOT IN (` +
		strings.Join(placeholders, ",") + `) ORDER BY created_at ASC`
	return r.queryQuestions(ctx, "ListExcluding", query, args...)
}

func (r *pgQuestionRepository) FindByLoweredTitles(ctx context.Context, loweredTitles []string) ([]model.Question, error) {
	if len(loweredTitles) == 0 {
		return []model.Question{}, nil
	}
	placeholders := make([]string, len(loweredTitles))
	args := make([]interface{}, len(loweredTitles))
	for i, t := range loweredTitles {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = strings.ToLower(t)
	}
	query := `SELECT ` + questionColumns + ` FROM questions WHERE LOWER(title) IN (` +
		strings.Join(placeholders, ",") + `)`
	return r.queryQuestions(ctx, "FindByLoweredTitles", query, args...)
}

func (r *pgQuestionRepository) queryQuestions(ctx context.Context, op, query string, args ...interface{}) ([]model.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.%s query: %w", op, err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.%s scan: %w", op, err)
		}
		questions = append(questions, *q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.%s rows.Err: %w", op, err)
	}
	return questions, nil
}
