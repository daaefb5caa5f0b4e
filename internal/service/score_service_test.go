package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/grading"
	"github.com/noah-isme/school-exam-api/internal/models"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

type mockScoreStore struct {
	scores      []models.Score
	byTuple     *models.Score
	byHandle    *models.Score
	created     *models.Score
	updated     *models.Score
	deleted     string
	createCalls int
	updateCalls int
}

func (m *mockScoreStore) List(ctx context.Context) ([]models.Score, error) {
	return m.scores, nil
}

func (m *mockScoreStore) ListByStudent(ctx context.Context, studentID, term, year string) ([]models.Score, error) {
	var out []models.Score
	for _, s := range m.scores {
		if s.StudentID != studentID {
			continue
		}
		if term != "" && s.Term != term {
			continue
		}
		if year != "" && s.Year != year {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockScoreStore) FindByHandle(ctx context.Context, handle string) (*models.Score, error) {
	if m.byHandle == nil || m.byHandle.Handle != handle {
		return nil, sql.ErrNoRows
	}
	copied := *m.byHandle
	return &copied, nil
}

func (m *mockScoreStore) FindByTuple(ctx context.Context, studentID, subjectID, term, year string) (*models.Score, error) {
	if m.byTuple == nil {
		return nil, sql.ErrNoRows
	}
	copied := *m.byTuple
	return &copied, nil
}

func (m *mockScoreStore) Create(ctx context.Context, score *models.Score) error {
	m.createCalls++
	m.created = score
	return nil
}

func (m *mockScoreStore) Update(ctx context.Context, score *models.Score) error {
	m.updateCalls++
	m.updated = score
	return nil
}

func (m *mockScoreStore) Delete(ctx context.Context, handle string) error {
	m.deleted = handle
	return nil
}

func newScoreService(store *mockScoreStore) *ScoreService {
	return NewScoreService(store, grading.DefaultScale(), zap.NewNop())
}

func TestRecordScoreRejectsStudents(t *testing.T) {
	svc := newScoreService(&mockScoreStore{})

	_, err := svc.Record(context.Background(), models.RoleStudent, RecordScoreRequest{
		StudentID: "SU-1", SubjectID: "SUB-1", Term: "Term 1", Year: "2026",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRecordScoreNamesMissingField(t *testing.T) {
	svc := newScoreService(&mockScoreStore{})

	_, err := svc.Record(context.Background(), models.RoleTeacher, RecordScoreRequest{
		StudentID: "SU-1", SubjectID: "SUB-1", Year: "2026",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "term is required", appErr.Message)
}

func TestRecordScoreRejectsNegativeComponents(t *testing.T) {
	svc := newScoreService(&mockScoreStore{})

	_, err := svc.Record(context.Background(), models.RoleTeacher, RecordScoreRequest{
		StudentID: "SU-1", SubjectID: "SUB-1", Term: "Term 1", Year: "2026",
		ClassScore: -5, ExamScore: 10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRecordScoreCreatesAndDerivesGrade(t *testing.T) {
	store := &mockScoreStore{}
	svc := newScoreService(store)

	score, err := svc.Record(context.Background(), models.RoleTeacher, RecordScoreRequest{
		StudentID: "SU-1", SubjectID: "SUB-1", Term: "Term 1", Year: "2026",
		ClassScore: 35, ExamScore: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.createCalls)
	assert.Equal(t, 85, score.TotalScore)
	assert.Equal(t, "A", score.Grade)
}

func TestRecordScoreMergesExistingTuple(t *testing.T) {
	store := &mockScoreStore{
		byTuple: &models.Score{
			Handle: "h-1", StudentID: "SU-1", SubjectID: "SUB-1",
			Term: "Term 1", Year: "2026",
			ClassScore: 20, ExamScore: 30, TotalScore: 50, Grade: "D",
			Remarks: "needs work",
		},
	}
	svc := newScoreService(store)

	score, err := svc.Record(context.Background(), models.RoleAdmin, RecordScoreRequest{
		StudentID: "SU-1", SubjectID: "SUB-1", Term: "Term 1", Year: "2026",
		ClassScore: 30, ExamScore: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, store.createCalls, "merge must not create a duplicate")
	assert.Equal(t, 1, store.updateCalls)
	assert.Equal(t, 75, score.TotalScore)
	assert.Equal(t, "B", score.Grade)
	assert.Equal(t, "needs work", score.Remarks, "remarks survive when the request omits them")
	assert.Equal(t, "h-1", score.ID, "handle doubles as the public id")
}

func TestUpdateScoreRederivesTotal(t *testing.T) {
	store := &mockScoreStore{
		byHandle: &models.Score{
			Handle: "h-2", StudentID: "SU-1", SubjectID: "SUB-2",
			Term: "Term 2", Year: "2026",
			ClassScore: 30, ExamScore: 30, TotalScore: 60, Grade: "C",
		},
	}
	svc := newScoreService(store)

	exam := 55
	score, err := svc.Update(context.Background(), models.RoleTeacher, "h-2", UpdateScoreRequest{ExamScore: &exam})
	require.NoError(t, err)
	assert.Equal(t, 85, score.TotalScore)
	assert.Equal(t, "A", score.Grade)
}

func TestDeleteScoreAdminOnly(t *testing.T) {
	store := &mockScoreStore{
		byHandle: &models.Score{Handle: "h-3", StudentID: "SU-1"},
	}
	svc := newScoreService(store)

	_, err := svc.Delete(context.Background(), models.RoleTeacher, "h-3")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	removed, err := svc.Delete(context.Background(), models.RoleAdmin, "h-3")
	require.NoError(t, err)
	assert.Equal(t, "h-3", store.deleted)
	assert.Equal(t, "h-3", removed.ID)
}

func TestGetScoreNotFound(t *testing.T) {
	svc := newScoreService(&mockScoreStore{})

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
