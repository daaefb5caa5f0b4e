package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-exam-api/internal/models"
)

func TestSettingRepositoryGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSettingRepository(db)
	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow("schoolSettings", []byte(`{"schoolName":"Accra Academy"}`), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value, updated_at FROM settings")).
		WithArgs("schoolSettings").
		WillReturnRows(rows)

	setting, err := repo.Get(context.Background(), "schoolSettings")
	require.NoError(t, err)
	require.JSONEq(t, `{"schoolName":"Accra Academy"}`, string(setting.Value))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositoryGetMissReturnsNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSettingRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value, updated_at FROM settings")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, err := repo.Get(context.Background(), "missing")
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSettingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	setting := &models.Setting{Key: "systemSettings", Value: json.RawMessage(`{"currentTerm":"Term 1"}`)}
	require.NoError(t, repo.Upsert(context.Background(), setting))
	require.False(t, setting.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
