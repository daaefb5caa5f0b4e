package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/models"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
	"github.com/noah-isme/school-exam-api/pkg/export"
)

var markSheetHeaders = []string{
	"Student ID", "Student", "Subject", "Term", "Year",
	"Class Score", "Exam Score", "Total", "Grade", "Remarks",
}

// ReportService renders score data into CSV mark sheets and PDF report cards.
type ReportService struct {
	scores     scoreStore
	students   studentStore
	subjects   subjectStore
	settings   *SettingService
	attendance *AttendanceService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(scores scoreStore, students studentStore, subjects subjectStore, settings *SettingService, attendance *AttendanceService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		scores:     scores,
		students:   students,
		subjects:   subjects,
		settings:   settings,
		attendance: attendance,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// ExportCSV renders every recorded score into a mark sheet. Term and year
// are optional filters; empty strings export everything.
func (r *ReportService) ExportCSV(ctx context.Context, term, year string) ([]byte, error) {
	scores, err := r.scores.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scores")
	}
	studentNames, err := r.studentNames(ctx)
	if err != nil {
		return nil, err
	}
	subjectNames, err := r.subjectNames(ctx)
	if err != nil {
		return nil, err
	}

	sheet := export.MarkSheet{Headers: markSheetHeaders}
	for _, score := range scores {
		if term != "" && score.Term != term {
			continue
		}
		if year != "" && score.Year != year {
			continue
		}
		sheet.Rows = append(sheet.Rows, []string{
			score.StudentID,
			studentNames[score.StudentID],
			subjectNameOr(subjectNames, score.SubjectID),
			score.Term,
			score.Year,
			strconv.Itoa(score.ClassScore),
			strconv.Itoa(score.ExamScore),
			strconv.Itoa(score.TotalScore),
			score.Grade,
			score.Remarks,
		})
	}

	data, err := r.csv.Render(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	r.logger.Info("mark sheet exported", zap.Int("rows", len(sheet.Rows)))
	return data, nil
}

// ReportCard renders the terminal report PDF for one student.
func (r *ReportService) ReportCard(ctx context.Context, studentID, term, year string) ([]byte, error) {
	student, err := r.students.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	scores, err := r.scores.ListByStudent(ctx, studentID, term, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scores")
	}
	subjectNames, err := r.subjectNames(ctx)
	if err != nil {
		return nil, err
	}

	card := export.ReportCard{
		SchoolName: r.schoolName(ctx),
		Student:    student.Name,
		StudentID:  student.StudentID,
		Class:      student.Class,
		Term:       term,
		Year:       year,
	}
	for _, score := range scores {
		card.Rows = append(card.Rows, []string{
			subjectNameOr(subjectNames, score.SubjectID),
			strconv.Itoa(score.ClassScore),
			strconv.Itoa(score.ExamScore),
			strconv.Itoa(score.TotalScore),
			score.Grade,
		})
	}

	if r.attendance != nil {
		if record, label, err := r.attendance.Get(ctx, studentID, term, year); err == nil {
			card.AttendancePresent = record.Present
			card.AttendanceTotal = record.Total
			card.AttendanceLabel = label
		}
	}

	data, err := r.pdf.Render(card)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
	}
	r.logger.Info("report card rendered", zap.String("student_id", studentID), zap.Int("subjects", len(card.Rows)))
	return data, nil
}

func (r *ReportService) studentNames(ctx context.Context) (map[string]string, error) {
	students, err := r.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	names := make(map[string]string, len(students))
	for _, student := range students {
		names[student.StudentID] = student.Name
	}
	return names, nil
}

func (r *ReportService) subjectNames(ctx context.Context) (map[string]string, error) {
	subjects, err := r.subjects.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	names := make(map[string]string, len(subjects))
	for _, subject := range subjects {
		names[subject.SubjectID] = subject.Name
	}
	return names, nil
}

// schoolName pulls the display name from schoolSettings; the renderer falls
// back to a generic title when it is absent.
func (r *ReportService) schoolName(ctx context.Context) string {
	if r.settings == nil {
		return ""
	}
	raw := r.settings.Get(ctx, models.SettingKeySchool)
	if raw == nil {
		return ""
	}
	var payload struct {
		SchoolName string `json:"schoolName"`
		Name       string `json:"name"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.SchoolName != "" {
		return payload.SchoolName
	}
	return payload.Name
}

func subjectNameOr(names map[string]string, subjectID string) string {
	if name, ok := names[subjectID]; ok && name != "" {
		return name
	}
	return subjectID
}
