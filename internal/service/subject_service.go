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

type subjectStore interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindBySubjectID(ctx context.Context, subjectID string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, subjectID string) error
}

// CreateSubjectRequest holds payload for creating subjects.
type CreateSubjectRequest struct {
	Handle      string `json:"_id"`
	ID          string `json:"id"`
	SubjectID   string `json:"subjectId"`
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CreditHours int    `json:"creditHours"`
	Core        bool   `json:"core"`
}

// UpdateSubjectRequest carries a partial field set for merge updates.
type UpdateSubjectRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	CreditHours *int    `json:"creditHours"`
	Core        *bool   `json:"core"`
}

// SubjectService handles subject use-cases.
type SubjectService struct {
	store     subjectStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(store subjectStore, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{store: store, validator: validate, logger: logger}
}

// List returns all subjects with their canonical id annotated.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	for i := range subjects {
		annotateSubject(&subjects[i])
	}
	return subjects, nil
}

// Get returns one subject by external id.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.store.FindBySubjectID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	annotateSubject(subject)
	return subject, nil
}

// Create registers a new subject, generating an external id when absent.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name is required")
	}

	domainID := req.SubjectID
	if domainID == "" {
		domainID = req.ID
	}
	subject := &models.Subject{
		Handle:      req.Handle,
		SubjectID:   identity.Ensure(identity.KindSubject, domainID, req.Handle),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Category:    identity.OrDefault(req.Category, identity.GeneralCategory),
		CreditHours: req.CreditHours,
		Core:        req.Core,
	}
	if err := s.store.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}

	s.logger.Info("subject created", zap.String("subject_id", subject.SubjectID))
	annotateSubject(subject)
	return subject, nil
}

// Update merges the supplied fields into an existing subject.
func (s *SubjectService) Update(ctx context.Context, id string, req UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.store.FindBySubjectID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	applyString(&subject.Name, req.Name)
	applyString(&subject.Code, req.Code)
	applyString(&subject.Description, req.Description)
	applyString(&subject.Category, req.Category)
	if req.CreditHours != nil {
		subject.CreditHours = *req.CreditHours
	}
	if req.Core != nil {
		subject.Core = *req.Core
	}

	if subject.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}

	if err := s.store.Update(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}

	s.logger.Info("subject updated", zap.String("subject_id", subject.SubjectID))
	annotateSubject(subject)
	return subject, nil
}

// Delete removes a subject and returns the removed record.
func (s *SubjectService) Delete(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.store.FindBySubjectID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}

	s.logger.Info("subject deleted", zap.String("subject_id", subject.SubjectID))
	annotateSubject(subject)
	return subject, nil
}

func annotateSubject(subject *models.Subject) {
	subject.ID = identity.Canonical(subject.SubjectID, subject.Handle, subject.ID)
}
