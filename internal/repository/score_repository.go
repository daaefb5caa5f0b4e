package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-exam-api/internal/models"
)

// ScoreRepository manages persistence for score records. Scores carry no
// domain-specific external id, so the storage handle doubles as the id the
// UI sees.
type ScoreRepository struct {
	db *sqlx.DB
}

// NewScoreRepository constructs a ScoreRepository.
func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

const scoreColumns = `handle, student_id, subject_id, term, year, class_score, exam_score,
        total_score, grade, remarks, teacher_id, created_at, updated_at`

// List returns every score ordered by creation time.
func (r *ScoreRepository) List(ctx context.Context) ([]models.Score, error) {
	query := fmt.Sprintf("SELECT %s FROM scores ORDER BY created_at ASC", scoreColumns)
	scores := []models.Score{}
	if err := r.db.SelectContext(ctx, &scores, query); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return scores, nil
}

// ListByStudent returns the scores for one student, optionally filtered by
// term and year.
func (r *ScoreRepository) ListByStudent(ctx context.Context, studentID, term, year string) ([]models.Score, error) {
	query := fmt.Sprintf("SELECT %s FROM scores WHERE student_id = $1", scoreColumns)
	args := []interface{}{studentID}
	if term != "" {
		query += fmt.Sprintf(" AND term = $%d", len(args)+1)
		args = append(args, term)
	}
	if year != "" {
		query += fmt.Sprintf(" AND year = $%d", len(args)+1)
		args = append(args, year)
	}
	query += " ORDER BY created_at ASC"
	scores := []models.Score{}
	if err := r.db.SelectContext(ctx, &scores, query, args...); err != nil {
		return nil, fmt.Errorf("list scores by student: %w", err)
	}
	return scores, nil
}

// FindByHandle fetches a score by its storage handle.
func (r *ScoreRepository) FindByHandle(ctx context.Context, handle string) (*models.Score, error) {
	query := fmt.Sprintf("SELECT %s FROM scores WHERE handle = $1", scoreColumns)
	var score models.Score
	if err := r.db.GetContext(ctx, &score, query, handle); err != nil {
		return nil, err
	}
	return &score, nil
}

// FindByTuple fetches the score for a (student, subject, term, year) tuple.
func (r *ScoreRepository) FindByTuple(ctx context.Context, studentID, subjectID, term, year string) (*models.Score, error) {
	query := fmt.Sprintf("SELECT %s FROM scores WHERE student_id = $1 AND subject_id = $2 AND term = $3 AND year = $4", scoreColumns)
	var score models.Score
	if err := r.db.GetContext(ctx, &score, query, studentID, subjectID, term, year); err != nil {
		return nil, err
	}
	return &score, nil
}

// Create inserts a new score record.
func (r *ScoreRepository) Create(ctx context.Context, score *models.Score) error {
	if score.Handle == "" {
		score.Handle = uuid.NewString()
	}
	now := time.Now().UTC()
	if score.CreatedAt.IsZero() {
		score.CreatedAt = now
	}
	score.UpdatedAt = now
	const query = `INSERT INTO scores (handle, student_id, subject_id, term, year, class_score, exam_score,
        total_score, grade, remarks, teacher_id, created_at, updated_at)
        VALUES (:handle, :student_id, :subject_id, :term, :year, :class_score, :exam_score,
        :total_score, :grade, :remarks, :teacher_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, score); err != nil {
		return fmt.Errorf("create score: %w", err)
	}
	return nil
}

// Update rewrites an existing score row.
func (r *ScoreRepository) Update(ctx context.Context, score *models.Score) error {
	score.UpdatedAt = time.Now().UTC()
	const query = `UPDATE scores SET student_id = :student_id, subject_id = :subject_id, term = :term,
        year = :year, class_score = :class_score, exam_score = :exam_score, total_score = :total_score,
        grade = :grade, remarks = :remarks, teacher_id = :teacher_id, updated_at = :updated_at
        WHERE handle = :handle`
	if _, err := r.db.NamedExecContext(ctx, query, score); err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	return nil
}

// Delete physically removes a score row.
func (r *ScoreRepository) Delete(ctx context.Context, handle string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM scores WHERE handle = $1", handle); err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	return nil
}
