package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/school-exam-api/internal/models"
	"github.com/noah-isme/school-exam-api/pkg/config"
	"github.com/noah-isme/school-exam-api/pkg/database"
)

// StudentStore is the contract the access layer expects from a student
// collection, regardless of the backing engine.
type StudentStore interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, studentID string) error
}

// TeacherStore is the teacher collection contract.
type TeacherStore interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, teacherID string) error
}

// SubjectStore is the subject collection contract.
type SubjectStore interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindBySubjectID(ctx context.Context, subjectID string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, subjectID string) error
}

// ScoreStore is the score collection contract.
type ScoreStore interface {
	List(ctx context.Context) ([]models.Score, error)
	ListByStudent(ctx context.Context, studentID, term, year string) ([]models.Score, error)
	FindByHandle(ctx context.Context, handle string) (*models.Score, error)
	FindByTuple(ctx context.Context, studentID, subjectID, term, year string) (*models.Score, error)
	Create(ctx context.Context, score *models.Score) error
	Update(ctx context.Context, score *models.Score) error
	Delete(ctx context.Context, handle string) error
}

// UserStore is the account collection contract.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username, excludeUserID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, userID string, ts time.Time) error
	Delete(ctx context.Context, userID string) error
}

// SettingStore is the settings map contract.
type SettingStore interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

// Stores bundles every collection behind the driver chosen at startup.
type Stores struct {
	Students StudentStore
	Teachers TeacherStore
	Subjects SubjectStore
	Scores   ScoreStore
	Users    UserStore
	Settings SettingStore

	closer func() error
}

// NewStores wires the configured driver: postgres for real deployments,
// memory for demos and tests.
func NewStores(cfg *config.Config) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		mem := NewMemoryStore()
		return &Stores{
			Students: mem.Students(),
			Teachers: mem.Teachers(),
			Subjects: mem.Subjects(),
			Scores:   mem.Scores(),
			Users:    mem.Users(),
			Settings: mem.Settings(),
			closer:   mem.Close,
		}, nil
	case config.StoreDriverPostgres, "":
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Stores{
			Students: NewStudentRepository(db),
			Teachers: NewTeacherRepository(db),
			Subjects: NewSubjectRepository(db),
			Scores:   NewScoreRepository(db),
			Users:    NewUserRepository(db),
			Settings: NewSettingRepository(db),
			closer:   db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Close tears the backing store down.
func (s *Stores) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}
