package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/identity"
	"github.com/noah-isme/school-exam-api/internal/models"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

type teacherStore interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, teacherID string) error
}

// CreateTeacherRequest holds payload for creating teachers.
type CreateTeacherRequest struct {
	Handle         string   `json:"_id"`
	ID             string   `json:"id"`
	TeacherID      string   `json:"teacherId"`
	Name           string   `json:"name" validate:"required"`
	Title          string   `json:"title"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Phone          string   `json:"phone"`
	Qualification  string   `json:"qualification"`
	Specialization string   `json:"specialization"`
	Subjects       []string `json:"subjects"`
	ClassTeacherOf string   `json:"classTeacherOf"`
	EmploymentDate string   `json:"employmentDate"`
	Status         string   `json:"status"`
}

// UpdateTeacherRequest carries a partial field set for merge updates.
type UpdateTeacherRequest struct {
	Name           *string   `json:"name"`
	Title          *string   `json:"title"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Qualification  *string   `json:"qualification"`
	Specialization *string   `json:"specialization"`
	Subjects       *[]string `json:"subjects"`
	ClassTeacherOf *string   `json:"classTeacherOf"`
	EmploymentDate *string   `json:"employmentDate"`
	Status         *string   `json:"status"`
}

// TeacherService handles teacher use-cases.
type TeacherService struct {
	store     teacherStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(store teacherStore, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: store, validator: validate, logger: logger}
}

// List returns all teachers with their canonical id annotated.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	for i := range teachers {
		annotateTeacher(&teachers[i])
	}
	return teachers, nil
}

// Get returns one teacher by external id.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.store.FindByTeacherID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	annotateTeacher(teacher)
	return teacher, nil
}

// Create registers a new teacher, generating an external id when absent.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name is required")
	}

	domainID := req.TeacherID
	if domainID == "" {
		domainID = req.ID
	}
	status := req.Status
	if status == "" {
		status = models.TeacherStatusActive
	}
	teacher := &models.Teacher{
		Handle:         req.Handle,
		TeacherID:      identity.Ensure(identity.KindTeacher, domainID, req.Handle),
		Name:           req.Name,
		Title:          identity.OrDefault(req.Title, identity.NotSpecified),
		Email:          req.Email,
		Phone:          identity.OrDefault(req.Phone, identity.NotAvailable),
		Qualification:  identity.OrDefault(req.Qualification, identity.NotSpecified),
		Specialization: identity.OrDefault(req.Specialization, identity.GeneralCategory),
		Subjects:       req.Subjects,
		ClassTeacherOf: req.ClassTeacherOf,
		EmploymentDate: req.EmploymentDate,
		Status:         status,
	}
	if err := s.store.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}

	s.logger.Info("teacher created", zap.String("teacher_id", teacher.TeacherID))
	annotateTeacher(teacher)
	return teacher, nil
}

// Update merges the supplied fields into an existing teacher.
func (s *TeacherService) Update(ctx context.Context, id string, req UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.store.FindByTeacherID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	applyString(&teacher.Name, req.Name)
	applyString(&teacher.Title, req.Title)
	applyString(&teacher.Email, req.Email)
	applyString(&teacher.Phone, req.Phone)
	applyString(&teacher.Qualification, req.Qualification)
	applyString(&teacher.Specialization, req.Specialization)
	if req.Subjects != nil {
		teacher.Subjects = *req.Subjects
	}
	applyString(&teacher.ClassTeacherOf, req.ClassTeacherOf)
	applyString(&teacher.EmploymentDate, req.EmploymentDate)
	applyString(&teacher.Status, req.Status)

	if teacher.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}

	if err := s.store.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher")
	}

	s.logger.Info("teacher updated", zap.String("teacher_id", teacher.TeacherID))
	annotateTeacher(teacher)
	return teacher, nil
}

// Delete removes a teacher and returns the removed record.
func (s *TeacherService) Delete(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.store.FindByTeacherID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher")
	}

	s.logger.Info("teacher deleted", zap.String("teacher_id", teacher.TeacherID))
	annotateTeacher(teacher)
	return teacher, nil
}

func annotateTeacher(teacher *models.Teacher) {
	teacher.ID = identity.Canonical(teacher.TeacherID, teacher.Handle, teacher.ID)
}
