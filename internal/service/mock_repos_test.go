package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/config"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[string]*model.User // key: user_id
	getErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	entries      map[string][]model.TimetableEntry // key: faculty_id
	replaceErr   error
	listErr      error
	replaceCalls int
	dayCalls     int
	// afterDayRead runs once a day listing is read, before it is returned
	afterDayRead func()
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{entries: make(map[string][]model.TimetableEntry)}
}

func (m *mockTimetableRepo) ListByFaculty(_ context.Context, facultyID string) ([]model.TimetableEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := append([]model.TimetableEntry{}, m.entries[facultyID]...)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Day != result[j].Day {
			return result[i].Day.Index() < result[j].Day.Index()
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockTimetableRepo) ListByFacultyAndDay(_ context.Context, facultyID string, day model.DayOfWeek) ([]model.TimetableEntry, error) {
	m.dayCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.TimetableEntry
	for _, e := range m.entries[facultyID] {
		if e.Day == day {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	if hook := m.afterDayRead; hook != nil {
		m.afterDayRead = nil
		hook()
	}
	return result, nil
}

// ReplaceByFaculty mirrors the transactional contract: on error nothing changes
func (m *mockTimetableRepo) ReplaceByFaculty(_ context.Context, facultyID string, entries []model.TimetableEntry) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	stored := make([]model.TimetableEntry, len(entries))
	for i := range entries {
		entries[i].EntryID = fmt.Sprintf("entry-%s-%d", facultyID, i)
		stored[i] = entries[i]
	}
	m.entries[facultyID] = stored
	return nil
}

// ── Mock MeetingRepository ──

type mockMeetingRepo struct {
	requests map[string]*model.MeetingRequest
	users    *mockUserRepo
	seq      int
}

func newMockMeetingRepo(users *mockUserRepo) *mockMeetingRepo {
	return &mockMeetingRepo{requests: make(map[string]*model.MeetingRequest), users: users}
}

func (m *mockMeetingRepo) Create(_ context.Context, req *model.MeetingRequest) error {
	m.seq++
	req.RequestID = fmt.Sprintf("meeting-%d", m.seq)
	req.CreatedAt = time.Date(2026, 3, 2, 9, 0, m.seq, 0, time.UTC)
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockMeetingRepo) withUsers(req *model.MeetingRequest) model.MeetingRequest {
	out := *req
	out.Student = m.users.users[req.StudentID]
	out.Faculty = m.users.users[req.FacultyID]
	return out
}

func (m *mockMeetingRepo) GetByID(_ context.Context, id string) (*model.MeetingRequest, error) {
	if r, ok := m.requests[id]; ok {
		out := m.withUsers(r)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMeetingRepo) list(match func(r *model.MeetingRequest) bool) []model.MeetingRequest {
	var result []model.MeetingRequest
	for _, r := range m.requests {
		if match(r) {
			result = append(result, m.withUsers(r))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *mockMeetingRepo) ListByStudent(_ context.Context, studentID string) ([]model.MeetingRequest, error) {
	return m.list(func(r *model.MeetingRequest) bool { return r.StudentID == studentID }), nil
}

func (m *mockMeetingRepo) ListByFaculty(_ context.Context, facultyID, status string) ([]model.MeetingRequest, error) {
	return m.list(func(r *model.MeetingRequest) bool {
		return r.FacultyID == facultyID && (status == "" || r.Status == status)
	}), nil
}

func (m *mockMeetingRepo) Update(_ context.Context, req *model.MeetingRequest) error {
	stored := *req
	stored.Student, stored.Faculty = nil, nil
	m.requests[req.RequestID] = &stored
	return nil
}

func (m *mockMeetingRepo) Delete(_ context.Context, id string) error {
	delete(m.requests, id)
	return nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	items map[string]*model.Announcement
	now   func() time.Time
	seq   int
}

func newMockAnnouncementRepo(now func() time.Time) *mockAnnouncementRepo {
	return &mockAnnouncementRepo{items: make(map[string]*model.Announcement), now: now}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	m.seq++
	a.AnnouncementID = fmt.Sprintf("ann-%d", m.seq)
	a.CreatedAt = m.now()
	a.UpdatedAt = a.CreatedAt
	m.items[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.items[id]; ok {
		out := *a
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) List(_ context.Context) ([]model.Announcement, error) {
	var result []model.Announcement
	for _, a := range m.items {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	out := *a
	m.items[a.AnnouncementID] = &out
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	items     map[string]*model.Notification
	createErr error
	seq       int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{items: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	n.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	n.CreatedAt = time.Date(2026, 3, 2, 9, 0, m.seq, 0, time.UTC)
	m.items[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.items[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListUnreadByUser(_ context.Context, userID string) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.items {
		if n.UserID == userID && !n.IsRead {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := m.items[id]; ok {
		n.IsRead = true
	}
	return nil
}

// ── infrastructure fakes ──

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type mockPublisher struct {
	mu       sync.Mutex
	messages [][]byte
	err      error
}

func (p *mockPublisher) Publish(_ context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, body)
	return nil
}

func (p *mockPublisher) Close() error { return nil }

type mockBlacklist struct {
	revoked map[string]time.Duration
}

func (b *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if b.revoked == nil {
		b.revoked = make(map[string]time.Duration)
	}
	b.revoked[jti] = ttl
	return nil
}

type mockStorage struct {
	objects map[string][]byte
	removed []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{objects: make(map[string][]byte)}
}

func (s *mockStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[key] = data
	return "http://cdn.test/" + key, nil
}

func (s *mockStorage) Remove(_ context.Context, key string) error {
	delete(s.objects, key)
	s.removed = append(s.removed, key)
	return nil
}

func (s *mockStorage) KeyFromURL(url string) (string, bool) {
	const prefix = "http://cdn.test/"
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return "", false
	}
	return url[len(prefix):], true
}

// ── fixtures ──

type testEnv struct {
	repo          *repository.Repository
	users         *mockUserRepo
	timetables    *mockTimetableRepo
	meetings      *mockMeetingRepo
	announcements *mockAnnouncementRepo
	notifications *mockNotificationRepo
	clock         *fixedClock
	hours         *BusinessHours
	days          *DayTimetables
	logger        *zap.Logger
}

// monday0930 2026-03-02 is a Monday; the campus timezone is Asia/Kolkata
var monday0930 = time.Date(2026, 3, 2, 9, 30, 0, 0, mustLoadLocation("Asia/Kolkata"))

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func testCampusConfig() *config.CampusConfig {
	return &config.CampusConfig{
		Timezone:   "Asia/Kolkata",
		OpenTime:   "8:10",
		CloseTime:  "17:00",
		ClosedDays: []string{"SATURDAY", "SUNDAY"},
	}
}

func newTestEnv() *testEnv {
	users := newMockUserRepo()
	clock := &fixedClock{t: monday0930}
	env := &testEnv{
		users:         users,
		timetables:    newMockTimetableRepo(),
		meetings:      newMockMeetingRepo(users),
		notifications: newMockNotificationRepo(),
		clock:         clock,
		logger:        zap.NewNop(),
	}
	env.announcements = newMockAnnouncementRepo(func() time.Time { return clock.t })
	env.repo = &repository.Repository{
		User:         env.users,
		Timetable:    env.timetables,
		Meeting:      env.meetings,
		Announcement: env.announcements,
		Notification: env.notifications,
	}

	hours, err := NewBusinessHours(testCampusConfig())
	if err != nil {
		panic(err)
	}
	env.hours = hours
	env.days = NewDayTimetables(env.timetables, nil, time.Minute, env.logger)
	return env
}

func (e *testEnv) availability() AvailabilityService {
	return NewAvailabilityService(e.repo, e.days, e.hours, e.clock, e.logger)
}

func (e *testEnv) addUser(username, role string) *model.User {
	u := &model.User{
		UserID:   "id-" + username,
		Username: username,
		Email:    username + "@college.edu",
		Role:     role,
	}
	e.users.users[u.UserID] = u
	return u
}

func strPtr(s string) *string { return &s }
