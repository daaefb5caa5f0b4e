package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for the admin/generic login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StudentLoginRequest signs a student in with their id and the shared secret.
type StudentLoginRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Secret    string `json:"secret" validate:"required"`
}

// TeacherLoginRequest signs a teacher in with their id and phone number.
type TeacherLoginRequest struct {
	TeacherID string `json:"teacherId" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// ChangePasswordRequest payload for updating a password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserInfo describes the authenticated principal in login responses.
type UserInfo struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Role      UserRole `json:"role"`
	StudentID string   `json:"studentId,omitempty"`
	TeacherID string   `json:"teacherId,omitempty"`
}

// JWTClaims represents the JWT payload for access and invite tokens.
type JWTClaims struct {
	UserID    string   `json:"user_id,omitempty"`
	Role      UserRole `json:"role,omitempty"`
	Username  string   `json:"username,omitempty"`
	StudentID string   `json:"student_id,omitempty"`
	TeacherID string   `json:"teacher_id,omitempty"`
	Purpose   string   `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// Token purposes carried in the Purpose claim.
const (
	TokenPurposeAccess        = "access"
	TokenPurposeTeacherInvite = "teacher_invite"
)
