package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-exam-api/internal/identity"
	"github.com/noah-isme/school-exam-api/internal/models"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

type userStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username, excludeUserID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, userID string, ts time.Time) error
	Delete(ctx context.Context, userID string) error
}

// CreateUserRequest holds payload for creating accounts.
type CreateUserRequest struct {
	Handle    string          `json:"_id"`
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Username  string          `json:"username" validate:"required"`
	Password  string          `json:"password"`
	Role      models.UserRole `json:"role" validate:"required,oneof=admin teacher student"`
	StudentID string          `json:"studentId"`
	TeacherID string          `json:"teacherId"`
	Status    string          `json:"status"`
}

// UpdateUserRequest carries a partial field set for merge updates.
type UpdateUserRequest struct {
	Username  *string          `json:"username"`
	Role      *models.UserRole `json:"role"`
	StudentID *string          `json:"studentId"`
	TeacherID *string          `json:"teacherId"`
	Status    *string          `json:"status"`
}

// UserService handles account use-cases.
type UserService struct {
	store     userStore
	validator *validator.Validate
	logger    *zap.Logger
	demoMode  bool
}

// NewUserService constructs the user service.
func NewUserService(store userStore, validate *validator.Validate, logger *zap.Logger, demoMode bool) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: store, validator: validate, logger: logger, demoMode: demoMode}
}

// List returns all users with their canonical id annotated.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	for i := range users {
		annotateUser(&users[i])
	}
	return users, nil
}

// Get returns one user by external id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.FindByUserID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	annotateUser(user)
	return user, nil
}

// Create registers a new account. A role of student or teacher must carry
// the matching entity id; referential existence stays the server's concern.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and a valid role are required")
	}
	if req.Role == models.RoleStudent && req.StudentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required for student accounts")
	}
	if req.Role == models.RoleTeacher && req.TeacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId is required for teacher accounts")
	}

	exists, err := s.store.ExistsByUsername(ctx, req.Username, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate username")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already used")
	}

	domainID := req.UserID
	if domainID == "" {
		domainID = req.ID
	}
	status := req.Status
	if status == "" {
		status = models.UserStatusActive
	}

	user := &models.User{
		Handle:    req.Handle,
		UserID:    identity.Ensure(identity.KindUser, domainID, req.Handle),
		Username:  req.Username,
		Role:      req.Role,
		StudentID: req.StudentID,
		TeacherID: req.TeacherID,
		Status:    status,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	} else {
		user.Status = models.UserStatusPending
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user created", zap.String("user_id", user.UserID), zap.String("role", string(user.Role)))
	annotateUser(user)
	return user, nil
}

// Update merges the supplied fields into an existing account.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.store.FindByUserID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.store.ExistsByUsername(ctx, *req.Username, user.UserID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate username")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username already used")
		}
		user.Username = *req.Username
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	applyString(&user.StudentID, req.StudentID)
	applyString(&user.TeacherID, req.TeacherID)
	applyString(&user.Status, req.Status)

	if err := s.store.Update(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}

	s.logger.Info("user updated", zap.String("user_id", user.UserID))
	annotateUser(user)
	return user, nil
}

// Delete removes an account and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.FindByUserID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}

	s.logger.Info("user deleted", zap.String("user_id", user.UserID))
	annotateUser(user)
	return user, nil
}

// ChangePassword stores a new bcrypt hash for the account. In demo mode the
// current-password check is skipped, so any input succeeds as long as the
// new password clears the length floor.
func (s *UserService) ChangePassword(ctx context.Context, id string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "newPassword must be at least 6 characters")
	}

	user, err := s.store.FindByUserID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if !s.demoMode && user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return appErrors.Clone(appErrors.ErrInvalidCredentials, "current password is incorrect")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	user.PasswordHash = string(hash)
	if user.Status == models.UserStatusPending {
		user.Status = models.UserStatusActive
	}

	if err := s.store.Update(ctx, user); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}

	s.logger.Info("password changed", zap.String("user_id", user.UserID))
	return nil
}

func annotateUser(user *models.User) {
	user.ID = identity.Canonical(user.UserID, user.Handle, user.ID)
}
