package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"opsboard/backend/internal/model"
	"opsboard/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Slug == user.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, u := range m.users {
		if u.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock BoardRepository ──

type mockBoardRepo struct {
	boards map[string]*model.Board
	access map[string]*model.BoardAccess // key: boardID+"/"+userID
	seq    int
}

func newMockBoardRepo() *mockBoardRepo {
	return &mockBoardRepo{
		boards: make(map[string]*model.Board),
		access: make(map[string]*model.BoardAccess),
	}
}

func (m *mockBoardRepo) Create(_ context.Context, board *model.Board) error {
	for _, b := range m.boards {
		if b.Slug == board.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	if board.BoardID == "" {
		m.seq++
		board.BoardID = fmt.Sprintf("board-%d", m.seq)
	}
	m.boards[board.BoardID] = board
	return nil
}

func (m *mockBoardRepo) GetByID(_ context.Context, id string) (*model.Board, error) {
	if b, ok := m.boards[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBoardRepo) List(_ context.Context, offset, limit int) ([]model.Board, int64, error) {
	var all []model.Board
	for _, b := range m.boards {
		all = append(all, *b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].BoardID < all[j].BoardID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockBoardRepo) Delete(_ context.Context, id string) error {
	delete(m.boards, id)
	return nil
}

func (m *mockBoardRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, b := range m.boards {
		if b.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBoardRepo) GrantAccess(_ context.Context, access *model.BoardAccess) error {
	key := access.BoardID + "/" + access.UserID
	if _, ok := m.access[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.access[key] = access
	return nil
}

func (m *mockBoardRepo) GetAccess(_ context.Context, boardID, userID string) (*model.BoardAccess, error) {
	if a, ok := m.access[boardID+"/"+userID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBoardRepo) ListAccess(_ context.Context, boardID string) ([]model.BoardAccess, error) {
	var result []model.BoardAccess
	for _, a := range m.access {
		if a.BoardID == boardID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockBoardRepo) DeleteAccessByBoard(_ context.Context, boardID string) error {
	for key, a := range m.access {
		if a.BoardID == boardID {
			delete(m.access, key)
		}
	}
	return nil
}

// ── Mock PlanRepository ──

type mockPlanRepo struct {
	plans map[string]*model.Plan
	seq   int
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[string]*model.Plan)}
}

func (m *mockPlanRepo) Create(_ context.Context, plan *model.Plan) error {
	if plan.PlanID == "" {
		m.seq++
		plan.PlanID = fmt.Sprintf("plan-%d", m.seq)
	}
	m.plans[plan.PlanID] = plan
	return nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id string) (*model.Plan, error) {
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanRepo) ListByBoard(_ context.Context, boardID string) ([]model.Plan, error) {
	var result []model.Plan
	for _, p := range m.plans {
		if p.BoardID == boardID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPlanRepo) Update(_ context.Context, plan *model.Plan) error {
	m.plans[plan.PlanID] = plan
	return nil
}

func (m *mockPlanRepo) DeleteByBoard(_ context.Context, boardID string) error {
	for id, p := range m.plans {
		if p.BoardID == boardID {
			delete(m.plans, id)
		}
	}
	return nil
}

// ── Mock MilestoneRepository ──

type mockMilestoneRepo struct {
	milestones map[string]*model.Milestone
	plans      *mockPlanRepo
	seq        int
}

func newMockMilestoneRepo(plans *mockPlanRepo) *mockMilestoneRepo {
	return &mockMilestoneRepo{milestones: make(map[string]*model.Milestone), plans: plans}
}

func (m *mockMilestoneRepo) Create(_ context.Context, milestone *model.Milestone) error {
	if milestone.MilestoneID == "" {
		m.seq++
		milestone.MilestoneID = fmt.Sprintf("ms-%d", m.seq)
	}
	m.milestones[milestone.MilestoneID] = milestone
	return nil
}

func (m *mockMilestoneRepo) GetByID(_ context.Context, id string) (*model.Milestone, error) {
	if ms, ok := m.milestones[id]; ok {
		return ms, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMilestoneRepo) ListByPlan(_ context.Context, planID string) ([]model.Milestone, error) {
	var result []model.Milestone
	for _, ms := range m.milestones {
		if ms.PlanID == planID {
			result = append(result, *ms)
		}
	}
	return result, nil
}

func (m *mockMilestoneRepo) Delete(_ context.Context, id string) error {
	delete(m.milestones, id)
	return nil
}

func (m *mockMilestoneRepo) DeleteByBoard(_ context.Context, boardID string) error {
	for id, ms := range m.milestones {
		if p, ok := m.plans.plans[ms.PlanID]; ok && p.BoardID == boardID {
			delete(m.milestones, id)
		}
	}
	return nil
}

// ── Mock EpicRepository ──

type mockEpicRepo struct {
	epics map[string]*model.Epic
	seq   int
}

func newMockEpicRepo() *mockEpicRepo {
	return &mockEpicRepo{epics: make(map[string]*model.Epic)}
}

func (m *mockEpicRepo) Create(_ context.Context, epic *model.Epic) error {
	if epic.EpicID == "" {
		m.seq++
		epic.EpicID = fmt.Sprintf("epic-%d", m.seq)
	}
	m.epics[epic.EpicID] = epic
	return nil
}

func (m *mockEpicRepo) GetByID(_ context.Context, id string) (*model.Epic, error) {
	if e, ok := m.epics[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEpicRepo) ListByBoard(_ context.Context, boardID string) ([]model.Epic, error) {
	var result []model.Epic
	for _, e := range m.epics {
		if e.BoardID == boardID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEpicRepo) Delete(_ context.Context, id string) error {
	delete(m.epics, id)
	return nil
}

func (m *mockEpicRepo) DeleteByBoard(_ context.Context, boardID string) error {
	for id, e := range m.epics {
		if e.BoardID == boardID {
			delete(m.epics, id)
		}
	}
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks   map[string]*model.Task
	details *mockTaskDetailRepo
	seq     int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	cp.Assignments = m.details.assignmentsOf(id)
	return &cp, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	if _, ok := m.tasks[task.TaskID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *task
	cp.Assignments = nil
	m.tasks[task.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) UpdateStatus(_ context.Context, taskID, status string, updatedBy string) error {
	t, ok := m.tasks[taskID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	t.UpdatedBy = &updatedBy
	return nil
}

func (m *mockTaskRepo) ListWithFilters(_ context.Context, filters *repository.TaskListFilters, offset, limit int) ([]model.Task, int64, error) {
	var matched []model.Task
	for _, t := range m.tasks {
		if filters.BoardID != "" && t.BoardID != filters.BoardID {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		if filters.Priority != "" && t.Priority != filters.Priority {
			continue
		}
		if filters.PlanID != "" && (t.PlanID == nil || *t.PlanID != filters.PlanID) {
			continue
		}
		if filters.MilestoneID != "" && (t.MilestoneID == nil || *t.MilestoneID != filters.MilestoneID) {
			continue
		}
		if filters.AssigneeID != "" && !m.details.hasAssignment(t.TaskID, filters.AssigneeID) {
			continue
		}
		if filters.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*filters.DueFrom)) {
			continue
		}
		if filters.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*filters.DueTo)) {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		cp := *t
		cp.Assignments = m.details.assignmentsOf(t.TaskID)
		matched = append(matched, cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].TaskID < matched[j].TaskID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) DeleteByBoard(_ context.Context, boardID string) error {
	for id, t := range m.tasks {
		if t.BoardID == boardID {
			delete(m.tasks, id)
		}
	}
	return nil
}

func (m *mockTaskRepo) ClearEpic(_ context.Context, epicID string) error {
	for _, t := range m.tasks {
		if t.EpicID != nil && *t.EpicID == epicID {
			t.EpicID = nil
		}
	}
	return nil
}

func (m *mockTaskRepo) ClearMilestone(_ context.Context, milestoneID string) error {
	for _, t := range m.tasks {
		if t.MilestoneID != nil && *t.MilestoneID == milestoneID {
			t.MilestoneID = nil
		}
	}
	return nil
}

// ── Mock TaskDetailRepository ──

type mockTaskDetailRepo struct {
	assignments map[string]*model.TaskAssignment // key: taskID+"/"+userID
	comments    map[string]*model.TaskComment
	attachments map[string]*model.TaskAttachment
	activities  []model.TaskActivity
	tasks       *mockTaskRepo
	seq         int
}

func newMockTaskDetailRepo() *mockTaskDetailRepo {
	return &mockTaskDetailRepo{
		assignments: make(map[string]*model.TaskAssignment),
		comments:    make(map[string]*model.TaskComment),
		attachments: make(map[string]*model.TaskAttachment),
	}
}

func (m *mockTaskDetailRepo) assignmentsOf(taskID string) []model.TaskAssignment {
	var result []model.TaskAssignment
	for _, a := range m.assignments {
		if a.TaskID == taskID {
			result = append(result, *a)
		}
	}
	return result
}

func (m *mockTaskDetailRepo) hasAssignment(taskID, userID string) bool {
	_, ok := m.assignments[taskID+"/"+userID]
	return ok
}

func (m *mockTaskDetailRepo) CreateAssignment(_ context.Context, assignment *model.TaskAssignment) error {
	key := assignment.TaskID + "/" + assignment.UserID
	if _, ok := m.assignments[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("asg-%d", m.seq)
	}
	m.assignments[key] = assignment
	return nil
}

func (m *mockTaskDetailRepo) GetAssignment(_ context.Context, taskID, userID string) (*model.TaskAssignment, error) {
	if a, ok := m.assignments[taskID+"/"+userID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskDetailRepo) ListAssignments(_ context.Context, taskID string) ([]model.TaskAssignment, error) {
	return m.assignmentsOf(taskID), nil
}

func (m *mockTaskDetailRepo) DeleteAssignment(_ context.Context, taskID, userID string) error {
	delete(m.assignments, taskID+"/"+userID)
	return nil
}

func (m *mockTaskDetailRepo) CreateComment(_ context.Context, comment *model.TaskComment) error {
	if comment.CommentID == "" {
		m.seq++
		comment.CommentID = fmt.Sprintf("cmt-%d", m.seq)
	}
	m.comments[comment.CommentID] = comment
	return nil
}

func (m *mockTaskDetailRepo) GetComment(_ context.Context, id string) (*model.TaskComment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskDetailRepo) ListComments(_ context.Context, taskID string) ([]model.TaskComment, error) {
	var result []model.TaskComment
	for _, c := range m.comments {
		if c.TaskID == taskID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockTaskDetailRepo) DeleteComment(_ context.Context, id string) error {
	delete(m.comments, id)
	return nil
}

func (m *mockTaskDetailRepo) CreateAttachment(_ context.Context, attachment *model.TaskAttachment) error {
	if attachment.AttachmentID == "" {
		m.seq++
		attachment.AttachmentID = fmt.Sprintf("att-%d", m.seq)
	}
	m.attachments[attachment.AttachmentID] = attachment
	return nil
}

func (m *mockTaskDetailRepo) GetAttachment(_ context.Context, id string) (*model.TaskAttachment, error) {
	if a, ok := m.attachments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskDetailRepo) ListAttachments(_ context.Context, taskID string) ([]model.TaskAttachment, error) {
	var result []model.TaskAttachment
	for _, a := range m.attachments {
		if a.TaskID == taskID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockTaskDetailRepo) DeleteAttachment(_ context.Context, id string) error {
	delete(m.attachments, id)
	return nil
}

func (m *mockTaskDetailRepo) AppendActivity(_ context.Context, activity *model.TaskActivity) error {
	if activity.ActivityID == "" {
		m.seq++
		activity.ActivityID = fmt.Sprintf("act-%d", m.seq)
	}
	m.activities = append(m.activities, *activity)
	return nil
}

func (m *mockTaskDetailRepo) ListActivities(_ context.Context, taskID string, offset, limit int) ([]model.TaskActivity, int64, error) {
	var matched []model.TaskActivity
	for i := len(m.activities) - 1; i >= 0; i-- {
		if m.activities[i].TaskID == taskID {
			matched = append(matched, m.activities[i])
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockTaskDetailRepo) activitiesOf(taskID string) []model.TaskActivity {
	var result []model.TaskActivity
	for _, a := range m.activities {
		if a.TaskID == taskID {
			result = append(result, a)
		}
	}
	return result
}

func (m *mockTaskDetailRepo) DeleteChildrenByTask(_ context.Context, taskID string) error {
	for key, a := range m.assignments {
		if a.TaskID == taskID {
			delete(m.assignments, key)
		}
	}
	for id, c := range m.comments {
		if c.TaskID == taskID {
			delete(m.comments, id)
		}
	}
	for id, a := range m.attachments {
		if a.TaskID == taskID {
			delete(m.attachments, id)
		}
	}
	var kept []model.TaskActivity
	for _, a := range m.activities {
		if a.TaskID != taskID {
			kept = append(kept, a)
		}
	}
	m.activities = kept
	return nil
}

func (m *mockTaskDetailRepo) DeleteChildrenByBoard(ctx context.Context, boardID string) error {
	for id, t := range m.tasks.tasks {
		if t.BoardID == boardID {
			if err := m.DeleteChildrenByTask(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.AttendanceRecord
	seq     int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	for _, r := range m.records {
		if r.UserID == record.UserID && sameDay(r.WorkDate, record.WorkDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	if record.RecordID == "" {
		m.seq++
		record.RecordID = fmt.Sprintf("rec-%d", m.seq)
	}
	m.records[record.RecordID] = record
	return nil
}

func (m *mockAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, workDate time.Time) (*model.AttendanceRecord, error) {
	for _, r := range m.records {
		if r.UserID == userID && sameDay(r.WorkDate, workDate) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByUser(_ context.Context, userID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.UserID == userID && !r.WorkDate.Before(from) && !r.WorkDate.After(to) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) CloseRecord(_ context.Context, recordID string, checkOut time.Time, source string) (int64, error) {
	r, ok := m.records[recordID]
	if !ok || r.CheckOutTime != nil {
		return 0, nil
	}
	r.CheckOutTime = &checkOut
	r.CheckOutSource = &source
	return 1, nil
}

func (m *mockAttendanceRepo) CountOpenBefore(_ context.Context, dayStart time.Time) (int64, error) {
	var count int64
	for _, r := range m.records {
		if r.CheckOutTime == nil && r.CheckInTime.Before(dayStart) {
			count++
		}
	}
	return count, nil
}

func (m *mockAttendanceRepo) CloseOpenBefore(_ context.Context, dayStart, cutoff time.Time) (int64, error) {
	var closed int64
	source := model.CheckOutSourceSystem
	for _, r := range m.records {
		if r.CheckOutTime == nil && r.CheckInTime.Before(dayStart) {
			co := cutoff
			r.CheckOutTime = &co
			r.CheckOutSource = &source
			r.Status = model.AttendanceStatusPresent
			closed++
		}
	}
	return closed, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	createErr     error
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	notification.NotificationID = fmt.Sprintf("ntf-%d", m.seq)
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Notification, int64, error) {
	var matched []model.Notification
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			matched = append(matched, *m.notifications[i])
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) (int64, error) {
	for _, n := range m.notifications {
		if n.NotificationID == id && n.UserID == userID {
			n.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

// ── Mock EventPublisher ──

type mockPublisher struct {
	payloads [][]byte
	failWith error
}

func (m *mockPublisher) Publish(_ context.Context, payload []byte) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.payloads = append(m.payloads, payload)
	return nil
}

// ── 测试用 Repository 装配 ──

type testMocks struct {
	users         *mockUserRepo
	boards        *mockBoardRepo
	plans         *mockPlanRepo
	milestones    *mockMilestoneRepo
	epics         *mockEpicRepo
	tasks         *mockTaskRepo
	details       *mockTaskDetailRepo
	attendance    *mockAttendanceRepo
	notifications *mockNotificationRepo
}

func newTestRepo() (*repository.Repository, *testMocks) {
	plans := newMockPlanRepo()
	tasks := newMockTaskRepo()
	details := newMockTaskDetailRepo()
	tasks.details = details
	details.tasks = tasks

	mocks := &testMocks{
		users:         newMockUserRepo(),
		boards:        newMockBoardRepo(),
		plans:         plans,
		milestones:    newMockMilestoneRepo(plans),
		epics:         newMockEpicRepo(),
		tasks:         tasks,
		details:       details,
		attendance:    newMockAttendanceRepo(),
		notifications: newMockNotificationRepo(),
	}
	repo := &repository.Repository{
		User:         mocks.users,
		Board:        mocks.boards,
		Plan:         mocks.plans,
		Milestone:    mocks.milestones,
		Epic:         mocks.epics,
		Task:         mocks.tasks,
		TaskDetail:   mocks.details,
		Attendance:   mocks.attendance,
		Notification: mocks.notifications,
	}
	return repo, mocks
}

func strPtr(s string) *string { return &s }

// ── 通用测试夹具 ──

func userFixture(id string) *model.User {
	return &model.User{
		UserID: id,
		Name:   "测试用户 " + id,
		Email:  id + "@example.com",
		Slug:   "u-" + id,
		Role:   "member",
	}
}

func boardFixture(id, slug string) *model.Board {
	return &model.Board{
		BoardID: id,
		Name:    "看板 " + id,
		Slug:    slug,
		OwnerID: "user-1",
	}
}
