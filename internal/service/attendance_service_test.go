package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/models"
)

func newAttendanceService(store *mockSettingStore) *AttendanceService {
	settings := NewSettingService(store, nil, zap.NewNop())
	return NewAttendanceService(settings, nil, zap.NewNop())
}

func intPtr(v int) *int { return &v }

func TestAttendanceGetReturnsZeroedRecordWhenAbsent(t *testing.T) {
	svc := newAttendanceService(newMockSettingStore())

	record, label, err := svc.Get(context.Background(), "SU-1", "Term 1", "2026")
	require.NoError(t, err)
	assert.Equal(t, 0, record.Present)
	assert.Equal(t, 0, record.Total)
	assert.Equal(t, "Poor", label)
}

func TestAttendanceSavePersistsUnderCompositeKey(t *testing.T) {
	store := newMockSettingStore()
	svc := newAttendanceService(store)

	record, label, err := svc.Save(context.Background(), AttendanceEntry{
		StudentID: "SU-1", Term: "Term 1", Year: "2026",
		Present: intPtr(18), Total: intPtr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, 18, record.Present)
	assert.Equal(t, 20, record.Total)
	assert.Equal(t, 90, record.Percentage)
	assert.Equal(t, "Excellent", label)

	raw, ok := store.values[models.AttendanceKey("SU-1", "Term 1", "2026")]
	require.True(t, ok, "snapshot lives under the settings composite key")
	var stored models.AttendanceRecord
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, 18, stored.Present)
}

func TestAttendanceSaveClampsPresentWhenTotalShrinks(t *testing.T) {
	store := newMockSettingStore()
	svc := newAttendanceService(store)

	_, _, err := svc.Save(context.Background(), AttendanceEntry{
		StudentID: "SU-2", Term: "Term 1", Year: "2026",
		Present: intPtr(10), Total: intPtr(12),
	})
	require.NoError(t, err)

	record, _, err := svc.Save(context.Background(), AttendanceEntry{
		StudentID: "SU-2", Term: "Term 1", Year: "2026",
		Total: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, record.Total)
	assert.Equal(t, 3, record.Present, "present is pulled down to the new total")
}

func TestAttendanceSaveGrowsTotalWhenPresentExceedsIt(t *testing.T) {
	store := newMockSettingStore()
	svc := newAttendanceService(store)

	_, _, err := svc.Save(context.Background(), AttendanceEntry{
		StudentID: "SU-3", Term: "Term 2", Year: "2026",
		Present: intPtr(10), Total: intPtr(20),
	})
	require.NoError(t, err)

	record, _, err := svc.Save(context.Background(), AttendanceEntry{
		StudentID: "SU-3", Term: "Term 2", Year: "2026",
		Present: intPtr(25),
	})
	require.NoError(t, err)
	assert.Equal(t, 25, record.Present)
	assert.Equal(t, 25, record.Total, "total is pulled up to the new present")
}

func TestAttendanceGetRequiresFullKey(t *testing.T) {
	svc := newAttendanceService(newMockSettingStore())

	_, _, err := svc.Get(context.Background(), "SU-1", "", "2026")
	require.Error(t, err)
}

func TestAttendanceBulkSaveReportsCounts(t *testing.T) {
	store := newMockSettingStore()
	svc := newAttendanceService(store)

	result := svc.BulkSave(context.Background(), []AttendanceEntry{
		{StudentID: "SU-1", Term: "Term 1", Year: "2026", Present: intPtr(5), Total: intPtr(10)},
		{StudentID: "", Term: "Term 1", Year: "2026", Present: intPtr(5)},
		{StudentID: "SU-2", Term: "Term 1", Year: "2026", Present: intPtr(9), Total: intPtr(10)},
	})
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Failed)
}
