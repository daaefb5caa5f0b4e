package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-exam-api/internal/models"
	"github.com/noah-isme/school-exam-api/pkg/config"
)

func TestMemoryStudentsRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	students := store.Students()
	ctx := context.Background()

	require.NoError(t, students.Create(ctx, &models.Student{StudentID: "SU-1", Name: "Ama"}))
	require.NoError(t, students.Create(ctx, &models.Student{StudentID: "SU-2", Name: "Kofi"}))

	listed, err := students.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "SU-1", listed[0].StudentID, "insertion order is preserved")

	found, err := students.FindByStudentID(ctx, "SU-2")
	require.NoError(t, err)
	assert.Equal(t, "Kofi", found.Name)
	assert.NotEmpty(t, found.Handle, "create mints a handle")

	found.Name = "Renamed"
	require.NoError(t, students.Update(ctx, found))
	again, err := students.FindByStudentID(ctx, "SU-2")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)

	require.NoError(t, students.Delete(ctx, "SU-2"))
	_, err = students.FindByStudentID(ctx, "SU-2")
	assert.True(t, errors.Is(err, sql.ErrNoRows), "misses use the same sentinel as the sql driver")
}

func TestMemoryScoresFindByTuple(t *testing.T) {
	store := NewMemoryStore()
	scores := store.Scores()
	ctx := context.Background()

	require.NoError(t, scores.Create(ctx, &models.Score{
		StudentID: "SU-1", SubjectID: "SUB-1", Term: "Term 1", Year: "2026", TotalScore: 80, Grade: "A",
	}))

	found, err := scores.FindByTuple(ctx, "SU-1", "SUB-1", "Term 1", "2026")
	require.NoError(t, err)
	assert.Equal(t, 80, found.TotalScore)

	_, err = scores.FindByTuple(ctx, "SU-1", "SUB-1", "Term 2", "2026")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	filtered, err := scores.ListByStudent(ctx, "SU-1", "Term 1", "")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
}

func TestMemoryUsersUsernameChecks(t *testing.T) {
	store := NewMemoryStore()
	users := store.Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{UserID: "US-1", Username: "head", Role: models.RoleAdmin}))

	exists, err := users.ExistsByUsername(ctx, "head", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.ExistsByUsername(ctx, "head", "US-1")
	require.NoError(t, err)
	assert.False(t, exists, "the owner is excluded from its own uniqueness check")

	byName, err := users.FindByUsername(ctx, "head")
	require.NoError(t, err)
	assert.Equal(t, "US-1", byName.UserID)
}

func TestMemorySettingsUpsertReplaces(t *testing.T) {
	store := NewMemoryStore()
	settings := store.Settings()
	ctx := context.Background()

	require.NoError(t, settings.Upsert(ctx, &models.Setting{Key: "k", Value: json.RawMessage(`1`)}))
	require.NoError(t, settings.Upsert(ctx, &models.Setting{Key: "k", Value: json.RawMessage(`2`)}))

	setting, err := settings.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "2", string(setting.Value))

	_, err = settings.Get(ctx, "absent")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestNewStoresMemoryDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}}
	stores, err := NewStores(cfg)
	require.NoError(t, err)
	defer stores.Close() //nolint:errcheck

	require.NoError(t, stores.Students.Create(context.Background(), &models.Student{StudentID: "SU-1", Name: "Ama"}))
	listed, err := stores.Students.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
