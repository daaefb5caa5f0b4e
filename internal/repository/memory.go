package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/school-exam-api/internal/models"
)

// MemoryStore is the in-memory backing store variant. It replaces the
// historical module-level arrays with an injectable store that is
// constructed per process or per test and torn down explicitly. List order
// is insertion order. Misses surface as sql.ErrNoRows so services map them
// the same way for both drivers.
type MemoryStore struct {
	mu       sync.Mutex
	students []models.Student
	teachers []models.Teacher
	subjects []models.Subject
	scores   []models.Score
	users    []models.User
	settings map[string]models.Setting
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{settings: make(map[string]models.Setting)}
}

// Close exists for lifecycle symmetry with the database-backed store.
func (s *MemoryStore) Close() error {
	return nil
}

// Students returns the student collection accessor.
func (s *MemoryStore) Students() *MemoryStudentRepository {
	return &MemoryStudentRepository{store: s}
}

// Teachers returns the teacher collection accessor.
func (s *MemoryStore) Teachers() *MemoryTeacherRepository {
	return &MemoryTeacherRepository{store: s}
}

// Subjects returns the subject collection accessor.
func (s *MemoryStore) Subjects() *MemorySubjectRepository {
	return &MemorySubjectRepository{store: s}
}

// Scores returns the score collection accessor.
func (s *MemoryStore) Scores() *MemoryScoreRepository {
	return &MemoryScoreRepository{store: s}
}

// Users returns the user collection accessor.
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{store: s}
}

// Settings returns the settings map accessor.
func (s *MemoryStore) Settings() *MemorySettingRepository {
	return &MemorySettingRepository{store: s}
}

// MemoryStudentRepository implements the student store over MemoryStore.
type MemoryStudentRepository struct {
	store *MemoryStore
}

func (r *MemoryStudentRepository) List(ctx context.Context) ([]models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Student, len(r.store.students))
	copy(out, r.store.students)
	return out, nil
}

func (r *MemoryStudentRepository) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.students {
		if r.store.students[i].StudentID == studentID {
			cp := r.store.students[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *MemoryStudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.students {
		if r.store.students[i].StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryStudentRepository) Create(ctx context.Context, student *models.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if student.Handle == "" {
		student.Handle = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	r.store.students = append(r.store.students, *student)
	return nil
}

func (r *MemoryStudentRepository) Update(ctx context.Context, student *models.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	student.UpdatedAt = time.Now().UTC()
	for i := range r.store.students {
		if r.store.students[i].StudentID == student.StudentID {
			r.store.students[i] = *student
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *MemoryStudentRepository) Delete(ctx context.Context, studentID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.students {
		if r.store.students[i].StudentID == studentID {
			r.store.students = append(r.store.students[:i], r.store.students[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemoryTeacherRepository implements the teacher store over MemoryStore.
type MemoryTeacherRepository struct {
	store *MemoryStore
}

func (r *MemoryTeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Teacher, len(r.store.teachers))
	copy(out, r.store.teachers)
	return out, nil
}

func (r *MemoryTeacherRepository) FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.teachers {
		if r.store.teachers[i].TeacherID == teacherID {
			cp := r.store.teachers[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *MemoryTeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if teacher.Handle == "" {
		teacher.Handle = uuid.NewString()
	}
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now
	r.store.teachers = append(r.store.teachers, *teacher)
	return nil
}

func (r *MemoryTeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	teacher.UpdatedAt = time.Now().UTC()
	for i := range r.store.teachers {
		if r.store.teachers[i].TeacherID == teacher.TeacherID {
			r.store.teachers[i] = *teacher
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *MemoryTeacherRepository) Delete(ctx context.Context, teacherID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.teachers {
		if r.store.teachers[i].TeacherID == teacherID {
			r.store.teachers = append(r.store.teachers[:i], r.store.teachers[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemorySubjectRepository implements the subject store over MemoryStore.
type MemorySubjectRepository struct {
	store *MemoryStore
}

func (r *MemorySubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Subject, len(r.store.subjects))
	copy(out, r.store.subjects)
	return out, nil
}

func (r *MemorySubjectRepository) FindBySubjectID(ctx context.Context, subjectID string) (*models.Subject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.subjects {
		if r.store.subjects[i].SubjectID == subjectID {
			cp := r.store.subjects[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *MemorySubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if subject.Handle == "" {
		subject.Handle = uuid.NewString()
	}
	now := time.Now().UTC()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now
	r.store.subjects = append(r.store.subjects, *subject)
	return nil
}

func (r *MemorySubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	subject.UpdatedAt = time.Now().UTC()
	for i := range r.store.subjects {
		if r.store.subjects[i].SubjectID == subject.SubjectID {
			r.store.subjects[i] = *subject
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *MemorySubjectRepository) Delete(ctx context.Context, subjectID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.subjects {
		if r.store.subjects[i].SubjectID == subjectID {
			r.store.subjects = append(r.store.subjects[:i], r.store.subjects[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemoryScoreRepository implements the score store over MemoryStore.
type MemoryScoreRepository struct {
	store *MemoryStore
}

func (r *MemoryScoreRepository) List(ctx context.Context) ([]models.Score, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Score, len(r.store.scores))
	copy(out, r.store.scores)
	return out, nil
}

func (r *MemoryScoreRepository) ListByStudent(ctx context.Context, studentID, term, year string) ([]models.Score, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []models.Score{}
	for i := range r.store.scores {
		score := r.store.scores[i]
		if score.StudentID != studentID {
			continue
		}
		if term != "" && score.Term != term {
			continue
		}
		if year != "" && score.Year != year {
			continue
		}
		out = append(out, score)
	}
	return out, nil
}

func (r *MemoryScoreRepository) FindByHandle(ctx context.Context, handle string) (*models.Score, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.scores {
		if r.store.scores[i].Handle == handle {
			cp := r.store.scores[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *MemoryScoreRepository) FindByTuple(ctx context.Context, studentID, subjectID, term, year string) (*models.Score, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.scores {
		score := r.store.scores[i]
		if score.StudentID == studentID && score.SubjectID == subjectID && score.Term == term && score.Year == year {
			cp := score
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *MemoryScoreRepository) Create(ctx context.Context, score *models.Score) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if score.Handle == "" {
		score.Handle = uuid.NewString()
	}
	now := time.Now().UTC()
	if score.CreatedAt.IsZero() {
		score.CreatedAt = now
	}
	score.UpdatedAt = now
	r.store.scores = append(r.store.scores, *score)
	return nil
}

func (r *MemoryScoreRepository) Update(ctx context.Context, score *models.Score) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	score.UpdatedAt = time.Now().UTC()
	for i := range r.store.scores {
		if r.store.scores[i].Handle == score.Handle {
			r.store.scores[i] = *score
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *MemoryScoreRepository) Delete(ctx context.Context, handle string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.scores {
		if r.store.scores[i].Handle == handle {
			r.store.scores = append(r.store.scores[:i], r.store.scores[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemoryUserRepository implements the user store over MemoryStore.
type MemoryUserRepository struct {
	store *MemoryStore
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.User, len(r.store.users))
	copy(out, r.store.users)
	return out, nil
}

func (r *MemoryUserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].UserID == userID {
			cp := r.store.users[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].Username == username {
			cp := r.store.users[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *MemoryUserRepository) ExistsByUsername(ctx context.Context, username, excludeUserID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		user := r.store.users[i]
		if user.Username == username && (excludeUserID == "" || user.UserID != excludeUserID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.Handle == "" {
		user.Handle = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.store.users = append(r.store.users, *user)
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.UpdatedAt = time.Now().UTC()
	for i := range r.store.users {
		if r.store.users[i].UserID == user.UserID {
			r.store.users[i] = *user
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *MemoryUserRepository) UpdateLastLogin(ctx context.Context, userID string, ts time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].UserID == userID {
			stamp := ts
			r.store.users[i].LastLogin = &stamp
			r.store.users[i].UpdatedAt = ts
			return nil
		}
	}
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.users {
		if r.store.users[i].UserID == userID {
			r.store.users = append(r.store.users[:i], r.store.users[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemorySettingRepository implements the settings store over MemoryStore.
type MemorySettingRepository struct {
	store *MemoryStore
}

func (r *MemorySettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	setting, ok := r.store.settings[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := setting
	return &cp, nil
}

func (r *MemorySettingRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	setting.UpdatedAt = time.Now().UTC()
	r.store.settings[setting.Key] = *setting
	return nil
}
