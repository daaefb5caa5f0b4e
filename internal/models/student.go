package models

import "time"

const (
	// StudentStatusActive marks a student as enrolled and attending.
	StudentStatusActive = "active"
	// StudentStatusInactive marks a student as temporarily withdrawn.
	StudentStatusInactive = "inactive"
	// StudentStatusGraduated marks a student who completed the final class.
	StudentStatusGraduated = "graduated"
)

// Student represents a learner record. Handle is the storage-internal
// identifier; StudentID is the external id used by the UI and API. ID is
// computed by the identity normalizer and never stored.
type Student struct {
	Handle          string    `db:"handle" json:"_id,omitempty"`
	ID              string    `db:"-" json:"id"`
	StudentID       string    `db:"student_id" json:"studentId"`
	Name            string    `db:"full_name" json:"name"`
	Class           string    `db:"class" json:"class"`
	Gender          string    `db:"gender" json:"gender,omitempty"`
	DateOfBirth     string    `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	GuardianName    string    `db:"guardian_name" json:"guardianName,omitempty"`
	GuardianPhone   string    `db:"guardian_phone" json:"guardianPhone,omitempty"`
	GuardianAddress string    `db:"guardian_address" json:"guardianAddress,omitempty"`
	Photo           string    `db:"photo" json:"photo,omitempty"`
	AdmissionDate   string    `db:"admission_date" json:"admissionDate,omitempty"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
