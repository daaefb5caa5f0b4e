package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	TeacherStatusActive   = "active"
	TeacherStatusInactive = "inactive"
)

// Teacher represents a member of the teaching staff. Subjects holds the ids
// of the subjects the teacher is assigned to.
type Teacher struct {
	Handle         string         `db:"handle" json:"_id,omitempty"`
	ID             string         `db:"-" json:"id"`
	TeacherID      string         `db:"teacher_id" json:"teacherId"`
	Name           string         `db:"full_name" json:"name"`
	Title          string         `db:"title" json:"title,omitempty"`
	Email          string         `db:"email" json:"email,omitempty"`
	Phone          string         `db:"phone" json:"phone,omitempty"`
	Qualification  string         `db:"qualification" json:"qualification,omitempty"`
	Specialization string         `db:"specialization" json:"specialization,omitempty"`
	Subjects       pq.StringArray `db:"subjects" json:"subjects"`
	ClassTeacherOf string         `db:"class_teacher_of" json:"classTeacherOf,omitempty"`
	EmploymentDate string         `db:"employment_date" json:"employmentDate,omitempty"`
	Status         string         `db:"status" json:"status"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}
