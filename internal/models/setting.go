package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Reserved top-level settings keys. Everything else in the settings map is
// ad hoc, addressed by caller-constructed composite keys.
const (
	SettingKeySchool = "schoolSettings"
	SettingKeySystem = "systemSettings"
)

// Setting is one entry of the flat settings map. Value is any JSON value;
// no schema is enforced at this layer.
type Setting struct {
	Key       string          `db:"key" json:"key"`
	Value     json.RawMessage `db:"value" json:"value"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// AttendanceRecord is the value stored under an attendance composite key.
type AttendanceRecord struct {
	StudentID  string `json:"studentId"`
	Term       string `json:"term"`
	Year       string `json:"year"`
	Present    int    `json:"present"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// AttendanceKey builds the settings indirection key for a student's
// attendance snapshot in a given term and year.
func AttendanceKey(studentID, term, year string) string {
	return fmt.Sprintf("attendance_%s_%s_%s", studentID, term, year)
}
