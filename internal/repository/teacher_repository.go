package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-exam-api/internal/models"
)

// TeacherRepository manages persistence for teaching staff records.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherColumns = `handle, teacher_id, full_name, title, email, phone, qualification,
        specialization, subjects, class_teacher_of, employment_date, status, created_at, updated_at`

// List returns every teacher ordered by creation time.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers ORDER BY created_at ASC", teacherColumns)
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByTeacherID fetches a teacher by external id.
func (r *TeacherRepository) FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE teacher_id = $1", teacherColumns)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, teacherID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.Handle == "" {
		teacher.Handle = uuid.NewString()
	}
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now
	const query = `INSERT INTO teachers (handle, teacher_id, full_name, title, email, phone, qualification,
        specialization, subjects, class_teacher_of, employment_date, status, created_at, updated_at)
        VALUES (:handle, :teacher_id, :full_name, :title, :email, :phone, :qualification,
        :specialization, :subjects, :class_teacher_of, :employment_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update rewrites an existing teacher row.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET full_name = :full_name, title = :title, email = :email,
        phone = :phone, qualification = :qualification, specialization = :specialization,
        subjects = :subjects, class_teacher_of = :class_teacher_of, employment_date = :employment_date,
        status = :status, updated_at = :updated_at WHERE teacher_id = :teacher_id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete physically removes a teacher row.
func (r *TeacherRepository) Delete(ctx context.Context, teacherID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE teacher_id = $1", teacherID); err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return nil
}
