package models

import "time"

// Score represents a class/exam score pair for one student, subject, term
// and year. The tuple is the logical key; TotalScore is always recomputed
// from the two components and Grade from the configured bands.
type Score struct {
	Handle     string    `db:"handle" json:"_id,omitempty"`
	ID         string    `db:"-" json:"id"`
	StudentID  string    `db:"student_id" json:"studentId"`
	SubjectID  string    `db:"subject_id" json:"subjectId"`
	Term       string    `db:"term" json:"term"`
	Year       string    `db:"year" json:"year"`
	ClassScore int       `db:"class_score" json:"classScore"`
	ExamScore  int       `db:"exam_score" json:"examScore"`
	TotalScore int       `db:"total_score" json:"totalScore"`
	Grade      string    `db:"grade" json:"grade"`
	Remarks    string    `db:"remarks" json:"remarks,omitempty"`
	TeacherID  string    `db:"teacher_id" json:"teacherId,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
