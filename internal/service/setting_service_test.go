package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/models"
)

type mockSettingStore struct {
	values map[string]json.RawMessage
	getErr error
	setErr error
}

func newMockSettingStore() *mockSettingStore {
	return &mockSettingStore{values: make(map[string]json.RawMessage)}
}

func (m *mockSettingStore) Get(ctx context.Context, key string) (*models.Setting, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	value, ok := m.values[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &models.Setting{Key: key, Value: value}, nil
}

func (m *mockSettingStore) Upsert(ctx context.Context, setting *models.Setting) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[setting.Key] = setting.Value
	return nil
}

func TestSettingGetReturnsNilWhenAbsent(t *testing.T) {
	svc := NewSettingService(newMockSettingStore(), nil, zap.NewNop())

	value := svc.Get(context.Background(), "schoolSettings")
	assert.Nil(t, value)
}

func TestSettingGetDegradesOnStoreFailure(t *testing.T) {
	store := newMockSettingStore()
	store.getErr = errors.New("connection refused")
	svc := NewSettingService(store, nil, zap.NewNop())

	value := svc.Get(context.Background(), "systemSettings")
	assert.Nil(t, value, "read failures look like missing keys to callers")
}

func TestSettingSetThenGetRoundTrip(t *testing.T) {
	svc := NewSettingService(newMockSettingStore(), nil, zap.NewNop())

	payload := json.RawMessage(`{"schoolName":"Accra Academy","motto":"Excellence"}`)
	saved, err := svc.Set(context.Background(), models.SettingKeySchool, payload)
	require.NoError(t, err)
	assert.Equal(t, models.SettingKeySchool, saved.Key)

	value := svc.Get(context.Background(), models.SettingKeySchool)
	assert.JSONEq(t, string(payload), string(value))
}

func TestSettingSetRequiresKey(t *testing.T) {
	svc := NewSettingService(newMockSettingStore(), nil, zap.NewNop())

	_, err := svc.Set(context.Background(), "", json.RawMessage(`1`))
	require.Error(t, err)
}

func TestSettingSetDefaultsEmptyValueToNull(t *testing.T) {
	store := newMockSettingStore()
	svc := NewSettingService(store, nil, zap.NewNop())

	saved, err := svc.Set(context.Background(), "emptyKey", nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(saved.Value))
}
