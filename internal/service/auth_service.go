package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-exam-api/internal/models"
	"github.com/noah-isme/school-exam-api/pkg/config"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

// AuthService issues and validates tokens for the three login flows.
type AuthService struct {
	users     userStore
	students  studentStore
	teachers  teacherStore
	jwtCfg    config.JWTConfig
	authCfg   config.AuthConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(users userStore, students studentStore, teachers teacherStore, jwtCfg config.JWTConfig, authCfg config.AuthConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:     users,
		students:  students,
		teachers:  teachers,
		jwtCfg:    jwtCfg,
		authCfg:   authCfg,
		validator: validate,
		logger:    logger,
	}
}

// Login authenticates a username/password account. In demo mode any
// password is accepted for a known username.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.UserInfo, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if user.Status == models.UserStatusInactive {
		return nil, "", appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}

	if !s.authCfg.DemoMode {
		if user.PasswordHash == "" {
			return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
		}
	}

	if err := s.users.UpdateLastLogin(ctx, user.UserID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to record last login", zap.String("user_id", user.UserID), zap.Error(err))
	}

	claims := models.JWTClaims{
		UserID:    user.UserID,
		Role:      user.Role,
		Username:  user.Username,
		StudentID: user.StudentID,
		TeacherID: user.TeacherID,
		Purpose:   models.TokenPurposeAccess,
	}
	token, err := s.signToken(claims, s.jwtCfg.Expiration)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("login", zap.String("user_id", user.UserID), zap.String("role", string(user.Role)))
	return &models.UserInfo{
		ID:        user.UserID,
		Username:  user.Username,
		Role:      user.Role,
		StudentID: user.StudentID,
		TeacherID: user.TeacherID,
	}, token, nil
}

// StudentLogin signs a student in with their id and the shared portal secret.
func (s *AuthService) StudentLogin(ctx context.Context, req models.StudentLoginRequest) (*models.UserInfo, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "studentId and secret are required")
	}
	if !s.authCfg.DemoMode && req.Secret != s.authCfg.StudentSecret {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid student credentials")
	}

	student, err := s.students.FindByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid student credentials")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	claims := models.JWTClaims{
		Role:      models.RoleStudent,
		Username:  student.Name,
		StudentID: student.StudentID,
		Purpose:   models.TokenPurposeAccess,
	}
	token, err := s.signToken(claims, s.jwtCfg.Expiration)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("student login", zap.String("student_id", student.StudentID))
	return &models.UserInfo{
		ID:        student.StudentID,
		Username:  student.Name,
		Role:      models.RoleStudent,
		StudentID: student.StudentID,
	}, token, nil
}

// TeacherLogin signs a teacher in with their id and registered phone number.
func (s *AuthService) TeacherLogin(ctx context.Context, req models.TeacherLoginRequest) (*models.UserInfo, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "teacherId and phone are required")
	}

	teacher, err := s.teachers.FindByTeacherID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid teacher credentials")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if !s.authCfg.DemoMode && teacher.Phone != req.Phone {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid teacher credentials")
	}

	claims := models.JWTClaims{
		Role:      models.RoleTeacher,
		Username:  teacher.Name,
		TeacherID: teacher.TeacherID,
		Purpose:   models.TokenPurposeAccess,
	}
	token, err := s.signToken(claims, s.jwtCfg.Expiration)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("teacher login", zap.String("teacher_id", teacher.TeacherID))
	return &models.UserInfo{
		ID:        teacher.TeacherID,
		Username:  teacher.Name,
		Role:      models.RoleTeacher,
		TeacherID: teacher.TeacherID,
	}, token, nil
}

// InviteTeacher mints a short-lived invite token that lets a new teacher
// complete account setup.
func (s *AuthService) InviteTeacher(ctx context.Context, teacherID string) (string, error) {
	if teacherID == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "teacherId is required")
	}

	teacher, err := s.teachers.FindByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	claims := models.JWTClaims{
		Role:      models.RoleTeacher,
		TeacherID: teacher.TeacherID,
		Purpose:   models.TokenPurposeTeacherInvite,
	}
	token, err := s.signToken(claims, s.jwtCfg.InviteTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info("teacher invite issued", zap.String("teacher_id", teacher.TeacherID))
	return token, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	if claims.Purpose != models.TokenPurposeAccess {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token not valid for access")
	}
	return claims, nil
}

func (s *AuthService) signToken(claims models.JWTClaims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return signed, nil
}
