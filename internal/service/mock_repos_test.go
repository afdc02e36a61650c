package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-lms/backend/config"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	"campus-lms/backend/pkg/jwt"
)

// ── in-memory store shared by every mock repo ──

// memDB keeps rows in maps and stamps times from a clock that only moves forward,
// standing in for the store clock behind CURRENT_TIMESTAMP / NOW()
type memDB struct {
	mu sync.Mutex

	now    time.Time
	nextID int64

	users         map[string]*model.User
	courses       map[string]*model.Course
	enrollments   []*model.Enrollment
	assignments   map[int64]*model.Assignment
	materials     map[int64]*model.CourseMaterial
	announcements []*model.Announcement
	submissions   map[int64]*model.Submission
	watermarks    map[string]time.Time
}

func newMemDB() *memDB {
	return &memDB{
		now:         time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		users:       make(map[string]*model.User),
		courses:     make(map[string]*model.Course),
		assignments: make(map[int64]*model.Assignment),
		materials:   make(map[int64]*model.CourseMaterial),
		submissions: make(map[int64]*model.Submission),
		watermarks:  make(map[string]time.Time),
	}
}

// tick advances the clock one second; callers hold mu
func (m *memDB) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) enrolled(studentID, courseCode string) bool {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.CourseCode == courseCode {
			return true
		}
	}
	return false
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func newMockRepository(db *memDB) *repository.Repository {
	return &repository.Repository{
		User:         &mockUserRepo{db},
		Course:       &mockCourseRepo{db},
		Enrollment:   &mockEnrollmentRepo{db},
		Assignment:   &mockAssignmentRepo{db},
		Material:     &mockMaterialRepo{db: db},
		Announcement: &mockAnnouncementRepo{db},
		Submission:   &mockSubmissionRepo{db: db},
		Notification: &mockNotificationRepo{db},
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct{ db *memDB }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, u := range m.db.users {
		if u.Username == user.Username {
			return uniqueViolation("users_username_key")
		}
		if u.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", m.db.id())
	}
	m.db.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if u, ok := m.db.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, u := range m.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, u := range m.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock CourseRepository ──

type mockCourseRepo struct{ db *memDB }

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.courses[course.CourseCode]; ok {
		return uniqueViolation("courses_pkey")
	}
	c := *course
	m.db.courses[c.CourseCode] = &c
	return nil
}

func (m *mockCourseRepo) CreateIfAbsent(_ context.Context, course *model.Course) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.courses[course.CourseCode]; ok {
		return false, nil
	}
	c := *course
	m.db.courses[c.CourseCode] = &c
	return true, nil
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if c, ok := m.db.courses[code]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) sorted(keep func(*model.Course) bool) []model.Course {
	var result []model.Course
	for _, c := range m.db.courses {
		if keep(c) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseCode < result[j].CourseCode })
	return result
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.sorted(func(*model.Course) bool { return true }), nil
}

func (m *mockCourseRepo) ListByTeacher(_ context.Context, teacher string) ([]model.Course, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.sorted(func(c *model.Course) bool { return c.Teacher == teacher }), nil
}

func (m *mockCourseRepo) ListAvailableForStudent(_ context.Context, studentID string) ([]model.Course, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.sorted(func(c *model.Course) bool { return !m.db.enrolled(studentID, c.CourseCode) }), nil
}

func (m *mockCourseRepo) CountStudentsByTeacher(_ context.Context, teacher string) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	seen := make(map[string]bool)
	for _, e := range m.db.enrollments {
		if c, ok := m.db.courses[e.CourseCode]; ok && c.Teacher == teacher {
			seen[e.StudentID] = true
		}
	}
	return int64(len(seen)), nil
}

func (m *mockCourseRepo) UpdateProgress(_ context.Context, code string, progress int) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if c, ok := m.db.courses[code]; ok {
		c.Progress = progress
	}
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct{ db *memDB }

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.db.enrolled(enrollment.StudentID, enrollment.CourseCode) {
		return uniqueViolation("uq_enrollments_student_course")
	}
	enrollment.ID = m.db.id()
	e := *enrollment
	m.db.enrollments = append(m.db.enrollments, &e)
	return nil
}

func (m *mockEnrollmentRepo) Exists(_ context.Context, studentID, courseCode string) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.db.enrolled(studentID, courseCode), nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var result []model.Enrollment
	for _, e := range m.db.enrollments {
		if e.StudentID != studentID {
			continue
		}
		row := *e
		if c, ok := m.db.courses[e.CourseCode]; ok {
			cp := *c
			row.Course = &cp
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseCode < result[j].CourseCode })
	return result, nil
}

func (m *mockEnrollmentRepo) ListStudentIDsByCourse(_ context.Context, courseCode string) ([]string, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var ids []string
	for _, e := range m.db.enrollments {
		if e.CourseCode == courseCode {
			ids = append(ids, e.StudentID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct{ db *memDB }

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.courses[assignment.CourseCode]; !ok {
		return &pgconn.PgError{Code: "23503", ConstraintName: "fk_assignments_course"}
	}
	assignment.ID = m.db.id()
	assignment.CreatedAt = m.db.tick()
	a := *assignment
	m.db.assignments[a.ID] = &a
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id int64) (*model.Assignment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if a, ok := m.db.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) filter(keep func(*model.Assignment) bool) []model.Assignment {
	var result []model.Assignment
	for _, a := range m.db.assignments {
		if keep(a) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DueDate.Equal(result[j].DueDate) {
			return result[i].DueDate.Before(result[j].DueDate)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (m *mockAssignmentRepo) ListByCourse(_ context.Context, courseCode string) ([]model.Assignment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.filter(func(a *model.Assignment) bool { return a.CourseCode == courseCode }), nil
}

func (m *mockAssignmentRepo) ListForStudent(_ context.Context, studentID string) ([]model.Assignment, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.filter(func(a *model.Assignment) bool { return m.db.enrolled(studentID, a.CourseCode) }), nil
}

// ── Mock MaterialRepository ──

type mockMaterialRepo struct {
	db *memDB

	failCreate error
}

func (m *mockMaterialRepo) Create(_ context.Context, material *model.CourseMaterial) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	material.ID = m.db.id()
	material.UploadDate = m.db.tick()
	cp := *material
	m.db.materials[cp.ID] = &cp
	return nil
}

func (m *mockMaterialRepo) GetByID(_ context.Context, id int64) (*model.CourseMaterial, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if mat, ok := m.db.materials[id]; ok {
		cp := *mat
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMaterialRepo) ListByCourse(_ context.Context, courseCode string) ([]model.CourseMaterial, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var result []model.CourseMaterial
	for _, mat := range m.db.materials {
		if mat.CourseCode == courseCode {
			result = append(result, *mat)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockMaterialRepo) Delete(_ context.Context, id int64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.materials, id)
	return nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct{ db *memDB }

func (m *mockAnnouncementRepo) Create(_ context.Context, announcement *model.Announcement) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	announcement.ID = m.db.id()
	announcement.CreatedAt = m.db.tick()
	cp := *announcement
	m.db.announcements = append(m.db.announcements, &cp)
	return nil
}

func (m *mockAnnouncementRepo) visible(studentID string, a *model.Announcement) bool {
	return a.CourseCode == nil || m.db.enrolled(studentID, *a.CourseCode)
}

func newestFirst(list []model.Announcement) {
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

func (m *mockAnnouncementRepo) ListForStudent(_ context.Context, studentID string) ([]model.Announcement, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var result []model.Announcement
	for _, a := range m.db.announcements {
		if m.visible(studentID, a) {
			result = append(result, *a)
		}
	}
	newestFirst(result)
	return result, nil
}

func (m *mockAnnouncementRepo) ListByCourse(_ context.Context, courseCode string) ([]model.Announcement, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var result []model.Announcement
	for _, a := range m.db.announcements {
		if a.CourseCode != nil && *a.CourseCode == courseCode {
			result = append(result, *a)
		}
	}
	newestFirst(result)
	return result, nil
}

func (m *mockAnnouncementRepo) CountForStudentBetween(_ context.Context, studentID string, after, upTo time.Time) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var n int64
	for _, a := range m.db.announcements {
		if m.visible(studentID, a) && a.CreatedAt.After(after) && !a.CreatedAt.After(upTo) {
			n++
		}
	}
	return n, nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	db *memDB

	// staleReads hides existing rows from the pre-insert check, as a concurrent Submit would see them
	staleReads bool
}

// view copies a row and fills the preloaded relations
func (m *mockSubmissionRepo) view(s *model.Submission) model.Submission {
	row := *s
	if a, ok := m.db.assignments[s.AssignmentID]; ok {
		cp := *a
		row.Assignment = &cp
	}
	if u, ok := m.db.users[s.StudentID]; ok {
		cp := *u
		row.Student = &cp
	}
	return row
}

func (m *mockSubmissionRepo) list(keep func(*model.Submission) bool) []model.Submission {
	var result []model.Submission
	for _, s := range m.db.submissions {
		if keep(s) {
			result = append(result, m.view(s))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *mockSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, s := range m.db.submissions {
		if s.AssignmentID == submission.AssignmentID && s.StudentID == submission.StudentID {
			return uniqueViolation("uq_submissions_assignment_student")
		}
	}
	submission.ID = m.db.id()
	cp := *submission
	m.db.submissions[cp.ID] = &cp
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id int64) (*model.Submission, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if s, ok := m.db.submissions[id]; ok {
		row := m.view(s)
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByAssignmentAndStudent(_ context.Context, assignmentID int64, studentID string) (*model.Submission, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if m.staleReads {
		return nil, gorm.ErrRecordNotFound
	}
	for _, s := range m.db.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) DeleteByAssignmentAndStudent(_ context.Context, assignmentID int64, studentID string) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var n int64
	for id, s := range m.db.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			delete(m.db.submissions, id)
			n++
		}
	}
	return n, nil
}

func (m *mockSubmissionRepo) ListByAssignment(_ context.Context, assignmentID int64) ([]model.Submission, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.list(func(s *model.Submission) bool { return s.AssignmentID == assignmentID }), nil
}

func (m *mockSubmissionRepo) ListByCourse(_ context.Context, courseCode string) ([]model.Submission, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.list(func(s *model.Submission) bool {
		a, ok := m.db.assignments[s.AssignmentID]
		return ok && a.CourseCode == courseCode
	}), nil
}

func (m *mockSubmissionRepo) ListByStudent(_ context.Context, studentID string) ([]model.Submission, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.list(func(s *model.Submission) bool { return s.StudentID == studentID }), nil
}

func (m *mockSubmissionRepo) ListPublishedByStudent(_ context.Context, studentID string) ([]model.Submission, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.list(func(s *model.Submission) bool {
		return s.StudentID == studentID && s.Published && s.Grade != nil
	}), nil
}

func (m *mockSubmissionRepo) UpdateGrade(_ context.Context, id int64, grade int, feedback *string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if s, ok := m.db.submissions[id]; ok {
		g := grade
		s.Grade = &g
		s.Feedback = feedback
	}
	return nil
}

// Publish mirrors the guarded UPDATE: only graded, unpublished rows change
func (m *mockSubmissionRepo) Publish(_ context.Context, ids []int64) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	at := m.db.tick()
	var n int64
	for _, id := range ids {
		s, ok := m.db.submissions[id]
		if !ok || s.Published || s.Grade == nil {
			continue
		}
		t := at
		s.Published = true
		s.PublishDate = &t
		n++
	}
	return n, nil
}

func (m *mockSubmissionRepo) ListPublishableIDsByCourse(_ context.Context, courseCode string) ([]int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var ids []int64
	for _, s := range m.list(func(s *model.Submission) bool {
		a, ok := m.db.assignments[s.AssignmentID]
		return ok && a.CourseCode == courseCode && s.Grade != nil && !s.Published
	}) {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (m *mockSubmissionRepo) ListPendingNotificationIDs(_ context.Context, studentID string) ([]int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	var ids []int64
	for _, s := range m.list(func(s *model.Submission) bool {
		return s.StudentID == studentID && s.PendingNotification()
	}) {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (m *mockSubmissionRepo) MarkNotified(_ context.Context, studentID string, ids []int64) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	at := m.db.tick()
	var n int64
	for _, id := range ids {
		s, ok := m.db.submissions[id]
		if !ok || s.StudentID != studentID || !s.PendingNotification() {
			continue
		}
		t := at
		s.LastNotified = &t
		n++
	}
	return n, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct{ db *memDB }

func (m *mockNotificationRepo) GetLastChecked(_ context.Context, studentID string) (time.Time, bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	t, ok := m.db.watermarks[studentID]
	return t, ok, nil
}

func (m *mockNotificationRepo) UpsertLastChecked(_ context.Context, studentID string, at time.Time) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if cur, ok := m.db.watermarks[studentID]; !ok || at.After(cur) {
		m.db.watermarks[studentID] = at
	}
	return nil
}

func (m *mockNotificationRepo) Now(_ context.Context) (time.Time, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.db.tick(), nil
}

// ── fakes for the optional collaborators ──

type fakeFiles struct {
	mu      sync.Mutex
	saved   map[string]string // stored path -> source
	removed []string
	fetched []string
	failErr error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{saved: make(map[string]string)}
}

func (f *fakeFiles) Save(src, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return "", f.failErr
	}
	path := "store/" + name
	f.saved[path] = src
	return path, nil
}

func (f *fakeFiles) Fetch(path, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	if _, ok := f.saved[path]; !ok {
		return fmt.Errorf("no stored file %s", path)
	}
	f.fetched = append(f.fetched, dst)
	return nil
}

func (f *fakeFiles) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, path)
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeFiles) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.saved[path]
	return ok
}

type fakeBlacklist struct {
	revoked map[string]time.Duration
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]time.Duration)}
}

func (b *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	b.revoked[jti] = ttl
	return nil
}

func (b *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := b.revoked[jti]
	return ok, nil
}

type fakeLocker struct {
	held     map[string]bool
	released int
	err      error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (l *fakeLocker) Lock(_ context.Context, name string, _ time.Duration) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.held[name] = true
	return func() {
		delete(l.held, name)
		l.released++
	}, nil
}

// ── fixtures ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-key-for-unit-tests",
			SessionTTL: time.Hour,
		},
	}
}

type fixture struct {
	db    *memDB
	repo  *repository.Repository
	svc   *Service
	files *fakeFiles
}

// newFixture wires every service over one memDB. blacklist and locker may be nil.
func newFixture(blacklist TokenBlacklist, locker Locker) *fixture {
	db := newMemDB()
	repo := newMockRepository(db)
	cfg := testConfig()
	logger := zap.NewNop()
	files := newFakeFiles()

	svc := &Service{
		Auth:         NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), blacklist, logger),
		Course:       NewCourseService(repo, logger),
		Enrollment:   NewEnrollmentService(repo, logger),
		Announcement: NewAnnouncementService(repo, logger),
		Assignment:   NewAssignmentService(repo, logger),
		Material:     NewMaterialService(repo, files, logger),
		Submission:   NewSubmissionService(repo, files, logger),
		Grading:      NewGradingService(repo, locker, logger),
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(repo, logger),
		Calendar:     NewCalendarService(repo, logger),
		Seed:         NewSeedService(repo, logger),
	}
	return &fixture{db: db, repo: repo, svc: svc, files: files}
}

func (f *fixture) addCourse(code, name, teacher string) {
	f.db.courses[code] = &model.Course{CourseCode: code, CourseName: name, Teacher: teacher}
}

func (f *fixture) addStudent(id, fullName string) {
	f.db.users[id] = &model.User{
		ID:       id,
		FullName: fullName,
		Username: id,
		Email:    id + "@campus.test",
		Role:     model.RoleStudent,
	}
}

func (f *fixture) enroll(studentID, courseCode string) {
	f.db.enrollments = append(f.db.enrollments, &model.Enrollment{
		ID:         f.db.id(),
		StudentID:  studentID,
		CourseCode: courseCode,
	})
}

func (f *fixture) addAssignment(courseCode, title string, maxPoints int) int64 {
	id := f.db.id()
	f.db.assignments[id] = &model.Assignment{
		ID:         id,
		Title:      title,
		CourseCode: courseCode,
		DueDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		MaxPoints:  maxPoints,
	}
	return id
}

func (f *fixture) addSubmission(assignmentID int64, studentID string) int64 {
	id := f.db.id()
	f.db.submissions[id] = &model.Submission{
		ID:             id,
		AssignmentID:   assignmentID,
		StudentID:      studentID,
		FilePath:       fmt.Sprintf("submissions/%d_%s_work.pdf", assignmentID, studentID),
		SubmissionDate: f.db.tick(),
	}
	return id
}

func (f *fixture) submission(id int64) *model.Submission {
	return f.db.submissions[id]
}
