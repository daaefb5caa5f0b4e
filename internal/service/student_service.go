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

type studentStore interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, studentID string) error
}

// CreateStudentRequest holds payload for creating students. The caller may
// supply any of the three identifier fields; the normalizer reconciles them.
type CreateStudentRequest struct {
	Handle          string `json:"_id"`
	ID              string `json:"id"`
	StudentID       string `json:"studentId"`
	Name            string `json:"name" validate:"required"`
	Class           string `json:"class"`
	Gender          string `json:"gender"`
	DateOfBirth     string `json:"dateOfBirth"`
	GuardianName    string `json:"guardianName"`
	GuardianPhone   string `json:"guardianPhone"`
	GuardianAddress string `json:"guardianAddress"`
	Photo           string `json:"photo"`
	AdmissionDate   string `json:"admissionDate"`
	Status          string `json:"status"`
}

// UpdateStudentRequest carries a partial field set; nil pointers leave the
// stored value untouched. Identifier fields are absent on purpose: a
// record's id cannot be changed through update.
type UpdateStudentRequest struct {
	Name            *string `json:"name"`
	Class           *string `json:"class"`
	Gender          *string `json:"gender"`
	DateOfBirth     *string `json:"dateOfBirth"`
	GuardianName    *string `json:"guardianName"`
	GuardianPhone   *string `json:"guardianPhone"`
	GuardianAddress *string `json:"guardianAddress"`
	Photo           *string `json:"photo"`
	AdmissionDate   *string `json:"admissionDate"`
	Status          *string `json:"status"`
}

// StudentService handles student use-cases.
type StudentService struct {
	store     studentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(store studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: store, validator: validate, logger: logger}
}

// List returns all students with their canonical id annotated.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	for i := range students {
		annotateStudent(&students[i])
	}
	return students, nil
}

// Get returns one student by external id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.store.FindByStudentID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	annotateStudent(student)
	return student, nil
}

// Create registers a new student, generating an external id when absent.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name is required")
	}

	domainID := req.StudentID
	if domainID == "" {
		domainID = req.ID
	}
	studentID := identity.Ensure(identity.KindStudent, domainID, req.Handle)

	exists, err := s.store.ExistsByStudentID(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student id already used")
	}

	status := req.Status
	if status == "" {
		status = models.StudentStatusActive
	}
	student := &models.Student{
		Handle:          req.Handle,
		StudentID:       studentID,
		Name:            req.Name,
		Class:           identity.OrDefault(req.Class, identity.NotSpecified),
		Gender:          req.Gender,
		DateOfBirth:     req.DateOfBirth,
		GuardianName:    identity.OrDefault(req.GuardianName, identity.NotAvailable),
		GuardianPhone:   identity.OrDefault(req.GuardianPhone, identity.NotAvailable),
		GuardianAddress: identity.OrDefault(req.GuardianAddress, identity.NotAvailable),
		Photo:           req.Photo,
		AdmissionDate:   req.AdmissionDate,
		Status:          status,
	}
	if err := s.store.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.logger.Info("student created", zap.String("student_id", student.StudentID))
	annotateStudent(student)
	return student, nil
}

// Update merges the supplied fields into an existing student. The external
// id always survives from the stored record.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	student, err := s.store.FindByStudentID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	applyString(&student.Name, req.Name)
	applyString(&student.Class, req.Class)
	applyString(&student.Gender, req.Gender)
	applyString(&student.DateOfBirth, req.DateOfBirth)
	applyString(&student.GuardianName, req.GuardianName)
	applyString(&student.GuardianPhone, req.GuardianPhone)
	applyString(&student.GuardianAddress, req.GuardianAddress)
	applyString(&student.Photo, req.Photo)
	applyString(&student.AdmissionDate, req.AdmissionDate)
	applyString(&student.Status, req.Status)

	if student.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}

	if err := s.store.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}

	s.logger.Info("student updated", zap.String("student_id", student.StudentID))
	annotateStudent(student)
	return student, nil
}

// Delete removes a student and returns the removed record.
func (s *StudentService) Delete(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.store.FindByStudentID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}

	s.logger.Info("student deleted", zap.String("student_id", student.StudentID))
	annotateStudent(student)
	return student, nil
}

func annotateStudent(student *models.Student) {
	student.ID = identity.Canonical(student.StudentID, student.Handle, student.ID)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
