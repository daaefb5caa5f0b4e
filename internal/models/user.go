package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusPending  = "pending"
)

// User represents an account that can sign in. StudentID / TeacherID link
// the account to its entity record when the role requires one.
type User struct {
	Handle       string     `db:"handle" json:"_id,omitempty"`
	ID           string     `db:"-" json:"id"`
	UserID       string     `db:"user_id" json:"userId"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         UserRole   `db:"role" json:"role"`
	StudentID    string     `db:"student_id" json:"studentId,omitempty"`
	TeacherID    string     `db:"teacher_id" json:"teacherId,omitempty"`
	Status       string     `db:"status" json:"status"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}
