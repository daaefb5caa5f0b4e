package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-exam-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var studentRows = []string{
	"handle", "student_id", "full_name", "class", "gender", "date_of_birth",
	"guardian_name", "guardian_phone", "guardian_address", "photo",
	"admission_date", "status", "created_at", "updated_at",
}

func TestStudentRepositoryCreateAssignsHandle(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{StudentID: "SU-1", Name: "Ama Mensah", Class: "JHS 2"}
	require.NoError(t, repo.Create(context.Background(), student))
	require.NotEmpty(t, student.Handle, "create mints a storage handle when absent")
	require.False(t, student.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByStudentID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(studentRows).
		AddRow("h-1", "SU-1", "Ama Mensah", "JHS 2", "F", "2012-03-01",
			"N/A", "N/A", "N/A", "", "2024-09-01", "active", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("SU-1").
		WillReturnRows(rows)

	student, err := repo.FindByStudentID(context.Background(), "SU-1")
	require.NoError(t, err)
	require.Equal(t, "Ama Mensah", student.Name)
	require.Equal(t, "h-1", student.Handle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExistsByStudentID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students")).
		WithArgs("SU-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByStudentID(context.Background(), "SU-1")
	require.NoError(t, err)
	require.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students")).
		WithArgs("SU-404").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err = repo.ExistsByStudentID(context.Background(), "SU-404")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateKeyedOnStudentID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	student := &models.Student{StudentID: "SU-1", Name: "Renamed"}
	require.NoError(t, repo.Update(context.Background(), student))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students")).
		WithArgs("SU-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "SU-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
