package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-exam-api/internal/models"
)

// SubjectRepository manages persistence for subject records.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectColumns = `handle, subject_id, name, code, description, category, credit_hours, core, created_at, updated_at`

// List returns every subject ordered by creation time.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects ORDER BY created_at ASC", subjectColumns)
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindBySubjectID fetches a subject by external id.
func (r *SubjectRepository) FindBySubjectID(ctx context.Context, subjectID string) (*models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE subject_id = $1", subjectColumns)
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, subjectID); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create inserts a new subject record.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.Handle == "" {
		subject.Handle = uuid.NewString()
	}
	now := time.Now().UTC()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now
	const query = `INSERT INTO subjects (handle, subject_id, name, code, description, category, credit_hours, core, created_at, updated_at)
        VALUES (:handle, :subject_id, :name, :code, :description, :category, :credit_hours, :core, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update rewrites an existing subject row.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subjects SET name = :name, code = :code, description = :description,
        category = :category, credit_hours = :credit_hours, core = :core, updated_at = :updated_at
        WHERE subject_id = :subject_id`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete physically removes a subject row.
func (r *SubjectRepository) Delete(ctx context.Context, subjectID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM subjects WHERE subject_id = $1", subjectID); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}
