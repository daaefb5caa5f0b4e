package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/grading"
	"github.com/noah-isme/school-exam-api/internal/models"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

// AttendanceEntry is one student's attendance edit within a bulk save.
type AttendanceEntry struct {
	StudentID string `json:"studentId"`
	Term      string `json:"term"`
	Year      string `json:"year"`
	Present   *int   `json:"present"`
	Total     *int   `json:"total"`
}

// BulkAttendanceResult reports aggregate counts for a bulk save. The batch
// is not atomic: a failure partway through leaves earlier records saved.
type BulkAttendanceResult struct {
	Saved  int `json:"saved"`
	Failed int `json:"failed"`
}

// AttendanceService stores attendance snapshots through the settings
// indirection convention rather than a dedicated collection.
type AttendanceService struct {
	settings *SettingService
	scale    *grading.Scale
	logger   *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(settings *SettingService, scale *grading.Scale, logger *zap.Logger) *AttendanceService {
	if scale == nil {
		scale = grading.DefaultScale()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{settings: settings, scale: scale, logger: logger}
}

// Get returns the stored snapshot for a student and period, or a zeroed
// record when none exists yet.
func (s *AttendanceService) Get(ctx context.Context, studentID, term, year string) (*models.AttendanceRecord, string, error) {
	if studentID == "" || term == "" || year == "" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "studentId, term and year are required")
	}

	record := &models.AttendanceRecord{StudentID: studentID, Term: term, Year: year}
	raw := s.settings.Get(ctx, models.AttendanceKey(studentID, term, year))
	if raw != nil {
		if err := json.Unmarshal(raw, record); err != nil {
			s.logger.Warn("corrupt attendance snapshot", zap.String("student_id", studentID), zap.Error(err))
			record = &models.AttendanceRecord{StudentID: studentID, Term: term, Year: year}
		}
	}
	return record, s.scale.StatusLabel(record.Percentage), nil
}

// Save folds an attendance edit onto the stored snapshot with bidirectional
// clamping, then writes it back under the composite key.
func (s *AttendanceService) Save(ctx context.Context, entry AttendanceEntry) (*models.AttendanceRecord, string, error) {
	record, _, err := s.Get(ctx, entry.StudentID, entry.Term, entry.Year)
	if err != nil {
		return nil, "", err
	}

	record.Present, record.Total = grading.ApplyAttendanceEdit(record.Present, record.Total, entry.Present, entry.Total)
	record.Percentage = grading.Percentage(record.Present, record.Total)

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode attendance")
	}
	if _, err := s.settings.Set(ctx, models.AttendanceKey(record.StudentID, record.Term, record.Year), payload); err != nil {
		return nil, "", err
	}

	s.logger.Info("attendance saved",
		zap.String("student_id", record.StudentID),
		zap.Int("present", record.Present),
		zap.Int("total", record.Total))
	return record, s.scale.StatusLabel(record.Percentage), nil
}

// BulkSave saves entries one at a time and reports aggregate counts; callers
// inspect the counts to detect partial failure.
func (s *AttendanceService) BulkSave(ctx context.Context, entries []AttendanceEntry) BulkAttendanceResult {
	result := BulkAttendanceResult{}
	for _, entry := range entries {
		if _, _, err := s.Save(ctx, entry); err != nil {
			s.logger.Warn("bulk attendance entry failed", zap.String("student_id", entry.StudentID), zap.Error(err))
			result.Failed++
			continue
		}
		result.Saved++
	}
	return result
}
