package models

import "time"

// Subject represents an academic subject on the timetable.
type Subject struct {
	Handle      string    `db:"handle" json:"_id,omitempty"`
	ID          string    `db:"-" json:"id"`
	SubjectID   string    `db:"subject_id" json:"subjectId"`
	Name        string    `db:"name" json:"name"`
	Code        string    `db:"code" json:"code,omitempty"`
	Description string    `db:"description" json:"description,omitempty"`
	Category    string    `db:"category" json:"category"`
	CreditHours int       `db:"credit_hours" json:"creditHours"`
	Core        bool      `db:"core" json:"core"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
