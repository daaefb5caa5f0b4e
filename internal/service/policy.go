package service

import "github.com/noah-isme/school-exam-api/internal/models"

// Role gating lives here and nowhere else: screens may render conditionally
// on role, but the decision itself has a single source of truth.

// CanRecordScores reports whether the acting role may create or update
// score records. Students can never write their own marks.
func CanRecordScores(role models.UserRole) bool {
	return role == models.RoleAdmin || role == models.RoleTeacher
}

// CanDeleteScores reports whether the acting role may remove score records.
func CanDeleteScores(role models.UserRole) bool {
	return role == models.RoleAdmin
}
