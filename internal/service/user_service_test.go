package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-exam-api/internal/models"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

type mockUserStore struct {
	users     map[string]*models.User
	lastLogin time.Time
}

func newMockUserStore(users ...*models.User) *mockUserStore {
	store := &mockUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		store.users[u.UserID] = u
	}
	return store
}

func (m *mockUserStore) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserStore) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserStore) ExistsByUsername(ctx context.Context, username, excludeUserID string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username && u.UserID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *models.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, userID string, ts time.Time) error {
	m.lastLogin = ts
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, userID string) error {
	delete(m.users, userID)
	return nil
}

func TestCreateUserStudentRoleRequiresStudentID(t *testing.T) {
	svc := NewUserService(newMockUserStore(), nil, zap.NewNop(), false)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "ama", Role: models.RoleStudent,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "studentId is required for student accounts", appErr.Message)
}

func TestCreateUserHashesPassword(t *testing.T) {
	store := newMockUserStore()
	svc := NewUserService(store, nil, zap.NewNop(), false)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "head", Role: models.RoleAdmin, Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret-pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-pass")))
	assert.Equal(t, models.UserStatusActive, user.Status)
}

func TestCreateUserWithoutPasswordIsPending(t *testing.T) {
	svc := NewUserService(newMockUserStore(), nil, zap.NewNop(), false)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "invitee", Role: models.RoleTeacher, TeacherID: "TE-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusPending, user.Status)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	existing := &models.User{UserID: "US-1", Username: "taken", Role: models.RoleAdmin}
	svc := NewUserService(newMockUserStore(existing), nil, zap.NewNop(), false)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "taken", Role: models.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestChangePasswordChecksCurrentOutsideDemoMode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	existing := &models.User{UserID: "US-2", Username: "u", Role: models.RoleAdmin, PasswordHash: string(hash), Status: models.UserStatusActive}
	store := newMockUserStore(existing)
	svc := NewUserService(store, nil, zap.NewNop(), false)

	err = svc.ChangePassword(context.Background(), "US-2", models.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "new-pass",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	err = svc.ChangePassword(context.Background(), "US-2", models.ChangePasswordRequest{
		CurrentPassword: "old-pass", NewPassword: "new-pass",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users["US-2"].PasswordHash), []byte("new-pass")))
}

func TestChangePasswordSkipsCurrentCheckInDemoMode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	existing := &models.User{UserID: "US-3", Username: "demo", Role: models.RoleAdmin, PasswordHash: string(hash), Status: models.UserStatusActive}
	store := newMockUserStore(existing)
	svc := NewUserService(store, nil, zap.NewNop(), true)

	err = svc.ChangePassword(context.Background(), "US-3", models.ChangePasswordRequest{
		CurrentPassword: "does not matter", NewPassword: "updated",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users["US-3"].PasswordHash), []byte("updated")))
}

func TestChangePasswordEnforcesMinimumLength(t *testing.T) {
	existing := &models.User{UserID: "US-4", Username: "short", Role: models.RoleAdmin, Status: models.UserStatusActive}
	svc := NewUserService(newMockUserStore(existing), nil, zap.NewNop(), true)

	err := svc.ChangePassword(context.Background(), "US-4", models.ChangePasswordRequest{NewPassword: "abc"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
