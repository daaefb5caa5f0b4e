package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/grading"
	"github.com/noah-isme/school-exam-api/internal/identity"
	"github.com/noah-isme/school-exam-api/internal/models"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

type scoreStore interface {
	List(ctx context.Context) ([]models.Score, error)
	ListByStudent(ctx context.Context, studentID, term, year string) ([]models.Score, error)
	FindByHandle(ctx context.Context, handle string) (*models.Score, error)
	FindByTuple(ctx context.Context, studentID, subjectID, term, year string) (*models.Score, error)
	Create(ctx context.Context, score *models.Score) error
	Update(ctx context.Context, score *models.Score) error
	Delete(ctx context.Context, handle string) error
}

// RecordScoreRequest holds payload for recording a score. Recording is an
// upsert on the (studentId, subjectId, term, year) tuple: repeated calls
// merge into the existing record instead of duplicating it.
type RecordScoreRequest struct {
	StudentID  string `json:"studentId"`
	SubjectID  string `json:"subjectId"`
	Term       string `json:"term"`
	Year       string `json:"year"`
	ClassScore int    `json:"classScore"`
	ExamScore  int    `json:"examScore"`
	Remarks    string `json:"remarks"`
	TeacherID  string `json:"teacherId"`
}

// UpdateScoreRequest carries a partial field set for merge updates. The
// tuple fields are immutable once recorded.
type UpdateScoreRequest struct {
	ClassScore *int    `json:"classScore"`
	ExamScore  *int    `json:"examScore"`
	Remarks    *string `json:"remarks"`
	TeacherID  *string `json:"teacherId"`
}

// ScoreService handles score use-cases, including the only role gating in
// the access layer.
type ScoreService struct {
	store  scoreStore
	scale  *grading.Scale
	logger *zap.Logger
}

// NewScoreService constructs the score service.
func NewScoreService(store scoreStore, scale *grading.Scale, logger *zap.Logger) *ScoreService {
	if scale == nil {
		scale = grading.DefaultScale()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{store: store, scale: scale, logger: logger}
}

// List returns all scores with their canonical id annotated.
func (s *ScoreService) List(ctx context.Context) ([]models.Score, error) {
	scores, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scores")
	}
	for i := range scores {
		annotateScore(&scores[i])
	}
	return scores, nil
}

// ListByStudent returns a student's scores, optionally narrowed to a term
// and year.
func (s *ScoreService) ListByStudent(ctx context.Context, studentID, term, year string) ([]models.Score, error) {
	scores, err := s.store.ListByStudent(ctx, studentID, term, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scores")
	}
	for i := range scores {
		annotateScore(&scores[i])
	}
	return scores, nil
}

// Get returns one score by id (the storage handle doubles as the id).
func (s *ScoreService) Get(ctx context.Context, id string) (*models.Score, error) {
	score, err := s.store.FindByHandle(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "score not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load score")
	}
	annotateScore(score)
	return score, nil
}

// Record creates or merges a score for a (student, subject, term, year)
// tuple. Total and grade are always derived, never taken from the caller.
func (s *ScoreService) Record(ctx context.Context, actor models.UserRole, req RecordScoreRequest) (*models.Score, error) {
	if !CanRecordScores(actor) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "students cannot record scores")
	}
	if err := validateScoreTuple(req); err != nil {
		return nil, err
	}
	if req.ClassScore < 0 || req.ExamScore < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "scores must be non-negative")
	}

	existing, err := s.store.FindByTuple(ctx, req.StudentID, req.SubjectID, req.Term, req.Year)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing score")
	}

	if existing != nil {
		existing.ClassScore = req.ClassScore
		existing.ExamScore = req.ExamScore
		existing.TotalScore = grading.Total(req.ClassScore, req.ExamScore)
		existing.Grade = s.scale.Grade(existing.TotalScore)
		if req.Remarks != "" {
			existing.Remarks = req.Remarks
		}
		if req.TeacherID != "" {
			existing.TeacherID = req.TeacherID
		}
		if err := s.store.Update(ctx, existing); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update score")
		}
		s.logger.Info("score merged",
			zap.String("student_id", existing.StudentID),
			zap.String("subject_id", existing.SubjectID),
			zap.Int("total", existing.TotalScore))
		annotateScore(existing)
		return existing, nil
	}

	total := grading.Total(req.ClassScore, req.ExamScore)
	score := &models.Score{
		StudentID:  req.StudentID,
		SubjectID:  req.SubjectID,
		Term:       req.Term,
		Year:       req.Year,
		ClassScore: req.ClassScore,
		ExamScore:  req.ExamScore,
		TotalScore: total,
		Grade:      s.scale.Grade(total),
		Remarks:    req.Remarks,
		TeacherID:  req.TeacherID,
	}
	if err := s.store.Create(ctx, score); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create score")
	}

	s.logger.Info("score recorded",
		zap.String("student_id", score.StudentID),
		zap.String("subject_id", score.SubjectID),
		zap.Int("total", score.TotalScore))
	annotateScore(score)
	return score, nil
}

// Update merges component scores into an existing record, re-deriving the
// total and grade.
func (s *ScoreService) Update(ctx context.Context, actor models.UserRole, id string, req UpdateScoreRequest) (*models.Score, error) {
	if !CanRecordScores(actor) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "students cannot update scores")
	}

	score, err := s.store.FindByHandle(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "score not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load score")
	}

	if req.ClassScore != nil {
		if *req.ClassScore < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "classScore must be non-negative")
		}
		score.ClassScore = *req.ClassScore
	}
	if req.ExamScore != nil {
		if *req.ExamScore < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "examScore must be non-negative")
		}
		score.ExamScore = *req.ExamScore
	}
	applyString(&score.Remarks, req.Remarks)
	applyString(&score.TeacherID, req.TeacherID)

	score.TotalScore = grading.Total(score.ClassScore, score.ExamScore)
	score.Grade = s.scale.Grade(score.TotalScore)

	if err := s.store.Update(ctx, score); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update score")
	}

	s.logger.Info("score updated", zap.String("score_id", score.Handle), zap.Int("total", score.TotalScore))
	annotateScore(score)
	return score, nil
}

// Delete removes a score and returns the removed record. Deletion is
// restricted to admins.
func (s *ScoreService) Delete(ctx context.Context, actor models.UserRole, id string) (*models.Score, error) {
	if !CanDeleteScores(actor) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can delete scores")
	}

	score, err := s.store.FindByHandle(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "score not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load score")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete score")
	}

	s.logger.Info("score deleted", zap.String("score_id", score.Handle))
	annotateScore(score)
	return score, nil
}

func validateScoreTuple(req RecordScoreRequest) error {
	required := []struct {
		name  string
		value string
	}{
		{"studentId", req.StudentID},
		{"subjectId", req.SubjectID},
		{"term", req.Term},
		{"year", req.Year},
	}
	for _, field := range required {
		if field.value == "" {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is required", field.name))
		}
	}
	return nil
}

func annotateScore(score *models.Score) {
	// Scores have no domain-specific external id; the handle is the id.
	score.ID = identity.Canonical("", score.Handle, score.ID)
}
