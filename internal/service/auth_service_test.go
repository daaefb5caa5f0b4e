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
	"github.com/noah-isme/school-exam-api/pkg/config"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
)

type mockTeacherStore struct {
	teachers map[string]*models.Teacher
}

func newMockTeacherStore(teachers ...*models.Teacher) *mockTeacherStore {
	store := &mockTeacherStore{teachers: make(map[string]*models.Teacher)}
	for _, tch := range teachers {
		store.teachers[tch.TeacherID] = tch
	}
	return store
}

func (m *mockTeacherStore) List(ctx context.Context) ([]models.Teacher, error) {
	out := make([]models.Teacher, 0, len(m.teachers))
	for _, tch := range m.teachers {
		out = append(out, *tch)
	}
	return out, nil
}

func (m *mockTeacherStore) FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	tch, ok := m.teachers[teacherID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *tch
	return &copied, nil
}

func (m *mockTeacherStore) Create(ctx context.Context, teacher *models.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherStore) Update(ctx context.Context, teacher *models.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherStore) Delete(ctx context.Context, teacherID string) error {
	delete(m.teachers, teacherID)
	return nil
}

func newAuthService(users userStore, students studentStore, teachers teacherStore, demoMode bool) *AuthService {
	jwtCfg := config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, InviteTTL: time.Hour}
	authCfg := config.AuthConfig{DemoMode: demoMode, StudentSecret: "portal-secret"}
	return NewAuthService(users, students, teachers, jwtCfg, authCfg, nil, zap.NewNop())
}

func TestLoginDemoModeAcceptsAnyPassword(t *testing.T) {
	users := newMockUserStore(&models.User{
		UserID: "US-1", Username: "head", Role: models.RoleAdmin, Status: models.UserStatusActive,
	})
	svc := newAuthService(users, newMockStudentStore(), newMockTeacherStore(), true)

	info, token, err := svc.Login(context.Background(), models.LoginRequest{Username: "head", Password: "anything"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleAdmin, info.Role)
	assert.False(t, users.lastLogin.IsZero(), "successful login records last login")
}

func TestLoginUnknownUsernameFails(t *testing.T) {
	svc := newAuthService(newMockUserStore(), newMockStudentStore(), newMockTeacherStore(), true)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginVerifiesPasswordOutsideDemoMode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	require.NoError(t, err)
	users := newMockUserStore(&models.User{
		UserID: "US-2", Username: "strict", Role: models.RoleAdmin,
		Status: models.UserStatusActive, PasswordHash: string(hash),
	})
	svc := newAuthService(users, newMockStudentStore(), newMockTeacherStore(), false)

	_, _, err = svc.Login(context.Background(), models.LoginRequest{Username: "strict", Password: "wrong"})
	require.Error(t, err)

	_, token, err := svc.Login(context.Background(), models.LoginRequest{Username: "strict", Password: "right"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	users := newMockUserStore(&models.User{
		UserID: "US-3", Username: "gone", Role: models.RoleTeacher, Status: models.UserStatusInactive,
	})
	svc := newAuthService(users, newMockStudentStore(), newMockTeacherStore(), true)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Username: "gone", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestStudentLoginChecksSharedSecret(t *testing.T) {
	students := newMockStudentStore(&models.Student{StudentID: "SU-1", Name: "Ama"})
	svc := newAuthService(newMockUserStore(), students, newMockTeacherStore(), false)

	_, _, err := svc.StudentLogin(context.Background(), models.StudentLoginRequest{StudentID: "SU-1", Secret: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	info, token, err := svc.StudentLogin(context.Background(), models.StudentLoginRequest{StudentID: "SU-1", Secret: "portal-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleStudent, info.Role)
	assert.Equal(t, "SU-1", info.StudentID)
}

func TestTeacherLoginMatchesPhone(t *testing.T) {
	teachers := newMockTeacherStore(&models.Teacher{TeacherID: "TE-1", Name: "Mr. Owusu", Phone: "0244000000"})
	svc := newAuthService(newMockUserStore(), newMockStudentStore(), teachers, false)

	_, _, err := svc.TeacherLogin(context.Background(), models.TeacherLoginRequest{TeacherID: "TE-1", Phone: "0200000000"})
	require.Error(t, err)

	info, token, err := svc.TeacherLogin(context.Background(), models.TeacherLoginRequest{TeacherID: "TE-1", Phone: "0244000000"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "TE-1", info.TeacherID)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	users := newMockUserStore(&models.User{
		UserID: "US-4", Username: "round", Role: models.RoleAdmin, Status: models.UserStatusActive,
	})
	svc := newAuthService(users, newMockStudentStore(), newMockTeacherStore(), true)

	_, token, err := svc.Login(context.Background(), models.LoginRequest{Username: "round", Password: "x"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "US-4", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateTokenRejectsInviteTokens(t *testing.T) {
	teachers := newMockTeacherStore(&models.Teacher{TeacherID: "TE-2", Name: "New Hire"})
	svc := newAuthService(newMockUserStore(), newMockStudentStore(), teachers, true)

	invite, err := svc.InviteTeacher(context.Background(), "TE-2")
	require.NoError(t, err)
	assert.NotEmpty(t, invite)

	_, err = svc.ValidateToken(invite)
	require.Error(t, err, "invite tokens must not pass as access tokens")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestInviteTeacherUnknownTeacher(t *testing.T) {
	svc := newAuthService(newMockUserStore(), newMockStudentStore(), newMockTeacherStore(), true)

	_, err := svc.InviteTeacher(context.Background(), "TE-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
