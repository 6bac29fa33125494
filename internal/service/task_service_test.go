package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/model"
	pkgerrors "opsboard/backend/pkg/errors"
)

// ── 测试辅助 ──

func setupTestTaskService() (TaskService, *testMocks) {
	repo, mocks := newTestRepo()
	notifier := NewNotificationService(repo, nil, zap.NewNop())
	svc := NewTaskService(repo, notifier, zap.NewNop())
	return svc, mocks
}

func seedHierarchy(mocks *testMocks) {
	mocks.users.users["user-1"] = userFixture("user-1")
	mocks.users.users["user-2"] = userFixture("user-2")
	mocks.boards.boards["board-1"] = boardFixture("board-1", "ops")
	mocks.boards.boards["board-2"] = boardFixture("board-2", "dev")
	mocks.plans.plans["plan-1"] = &model.Plan{PlanID: "plan-1", BoardID: "board-1", Name: "Q3"}
	mocks.plans.plans["plan-2"] = &model.Plan{PlanID: "plan-2", BoardID: "board-1", Name: "Q4"}
	mocks.epics.epics["epic-1"] = &model.Epic{EpicID: "epic-1", BoardID: "board-1", PlanID: strPtr("plan-1"), Title: "平台迁移"}
	mocks.epics.epics["epic-other"] = &model.Epic{EpicID: "epic-other", BoardID: "board-2", Title: "别处的史诗"}
	mocks.milestones.milestones["ms-1"] = &model.Milestone{MilestoneID: "ms-1", PlanID: "plan-1", Name: "Beta"}
	mocks.milestones.milestones["ms-2"] = &model.Milestone{MilestoneID: "ms-2", PlanID: "plan-2", Name: "GA"}
}

// ── Create 结构不变量测试 ──

func TestTaskService_Create_Success(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)

	task, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		BoardID: "board-1",
		PlanID:  "plan-1",
		EpicID:  "epic-1",
		Title:   "迁移脚本",
	}, "user-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if task.Status != model.TaskStatusTodo {
		t.Errorf("期望初始状态TODO，实际=%s", task.Status)
	}
	if task.Type != model.TaskTypeTask || task.Priority != model.TaskPriorityMedium {
		t.Errorf("期望默认 TASK/MEDIUM，实际=%s/%s", task.Type, task.Priority)
	}

	// 创建应追加一条 created 活动
	acts := mocks.details.activitiesOf(task.ID)
	if len(acts) != 1 || acts[0].Kind != model.ActivityCreated {
		t.Errorf("期望1条created活动，实际=%v", acts)
	}
}

func TestTaskService_Create_EpicBoardMismatch(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)

	_, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		BoardID: "board-1",
		EpicID:  "epic-other",
		Title:   "非法任务",
	}, "user-1")
	if !pkgerrors.IsValidation(err) {
		t.Errorf("史诗跨看板期望 ValidationError，实际: %v", err)
	}
}

func TestTaskService_Create_EpicPlanMismatch(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)

	// epic-1 归入 plan-1，任务却声明 plan-2
	_, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		BoardID: "board-1",
		PlanID:  "plan-2",
		EpicID:  "epic-1",
		Title:   "计划不一致",
	}, "user-1")
	if !pkgerrors.IsValidation(err) {
		t.Errorf("史诗与任务计划不一致期望 ValidationError，实际: %v", err)
	}
}

func TestTaskService_Create_MilestoneWrongPlan(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)

	_, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		BoardID:     "board-1",
		PlanID:      "plan-1",
		MilestoneID: "ms-2",
		Title:       "里程碑错配",
	}, "user-1")
	if !pkgerrors.IsValidation(err) {
		t.Errorf("里程碑不属于计划期望 ValidationError，实际: %v", err)
	}
}

func TestTaskService_Create_MilestoneWithoutPlan(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)

	_, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		BoardID:     "board-1",
		MilestoneID: "ms-1",
		Title:       "缺计划",
	}, "user-1")
	if !pkgerrors.IsValidation(err) {
		t.Errorf("里程碑缺计划期望 ValidationError，实际: %v", err)
	}
}

// ── Update 移动重校验 ──

func TestTaskService_Update_MoveRevalidates(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	mocks.tasks.tasks["task-1"] = &model.Task{
		TaskID:  "task-1",
		BoardID: "board-1",
		Title:   "迁移脚本",
		Type:    model.TaskTypeTask,
		Status:  model.TaskStatusTodo,
	}

	// 移动到跨看板的史诗应被拒绝
	epicID := "epic-other"
	_, err := svc.Update(context.Background(), "task-1", &dto.UpdateTaskRequest{EpicID: &epicID}, "user-1")
	if !pkgerrors.IsValidation(err) {
		t.Errorf("期望 ValidationError，实际: %v", err)
	}

	// 合法移动
	epicID = "epic-1"
	planID := "plan-1"
	task, err := svc.Update(context.Background(), "task-1", &dto.UpdateTaskRequest{EpicID: &epicID, PlanID: &planID}, "user-1")
	if err != nil {
		t.Fatalf("合法移动应成功: %v", err)
	}
	if task.EpicID != "epic-1" || task.PlanID != "plan-1" {
		t.Errorf("移动未生效: epic=%s plan=%s", task.EpicID, task.PlanID)
	}
}

func TestTaskService_Update_ClearReference(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	mocks.tasks.tasks["task-1"] = &model.Task{
		TaskID:  "task-1",
		BoardID: "board-1",
		EpicID:  strPtr("epic-1"),
		Title:   "迁移脚本",
		Status:  model.TaskStatusTodo,
	}

	empty := ""
	task, err := svc.Update(context.Background(), "task-1", &dto.UpdateTaskRequest{EpicID: &empty}, "user-1")
	if err != nil {
		t.Fatalf("清除引用应成功: %v", err)
	}
	if task.EpicID != "" {
		t.Errorf("史诗引用应被清空，实际=%s", task.EpicID)
	}
}

// ── 指派测试 ──

func TestTaskService_Assign_Idempotent(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	mocks.tasks.tasks["task-1"] = &model.Task{TaskID: "task-1", BoardID: "board-1", Title: "迁移脚本", Status: model.TaskStatusTodo}

	if err := svc.Assign(context.Background(), "task-1", "user-2", "user-1"); err != nil {
		t.Fatalf("首次指派应成功: %v", err)
	}
	if err := svc.Assign(context.Background(), "task-1", "user-2", "user-1"); err != nil {
		t.Fatalf("重复指派应为 no-op: %v", err)
	}

	if len(mocks.details.assignmentsOf("task-1")) != 1 {
		t.Error("重复指派不应产生第二行")
	}

	// 只有首次指派记活动与通知
	var assignedActs int
	for _, a := range mocks.details.activitiesOf("task-1") {
		if a.Kind == model.ActivityAssigned {
			assignedActs++
		}
	}
	if assignedActs != 1 {
		t.Errorf("期望1条assigned活动，实际=%d", assignedActs)
	}
	if len(mocks.notifications.notifications) != 1 {
		t.Errorf("期望1条指派通知，实际=%d", len(mocks.notifications.notifications))
	}
}

func TestTaskService_Assign_UserNotFound(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	mocks.tasks.tasks["task-1"] = &model.Task{TaskID: "task-1", BoardID: "board-1", Title: "迁移脚本", Status: model.TaskStatusTodo}

	err := svc.Assign(context.Background(), "task-1", "ghost", "user-1")
	if !pkgerrors.IsNotFound(err) {
		t.Errorf("期望 NotFoundError，实际: %v", err)
	}
}

func TestTaskService_Unassign_Success(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	mocks.tasks.tasks["task-1"] = &model.Task{TaskID: "task-1", BoardID: "board-1", Title: "迁移脚本", Status: model.TaskStatusTodo}
	mocks.details.assignments["task-1/user-2"] = &model.TaskAssignment{TaskID: "task-1", UserID: "user-2"}

	if err := svc.Unassign(context.Background(), "task-1", "user-2", "user-1"); err != nil {
		t.Fatalf("Unassign 应成功: %v", err)
	}
	if len(mocks.details.assignmentsOf("task-1")) != 0 {
		t.Error("指派应被删除")
	}
}

// ── 评论测试 ──

func TestTaskService_DeleteComment_AuthorOnly(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	mocks.tasks.tasks["task-1"] = &model.Task{TaskID: "task-1", BoardID: "board-1", Title: "迁移脚本", Status: model.TaskStatusTodo}
	mocks.details.comments["cmt-1"] = &model.TaskComment{CommentID: "cmt-1", TaskID: "task-1", AuthorID: "user-1", Body: "进展?"}

	err := svc.DeleteComment(context.Background(), "cmt-1", "user-2")
	if !errors.Is(err, ErrNotCommentAuthor) {
		t.Errorf("非作者删除期望 ErrNotCommentAuthor，实际: %v", err)
	}

	if err := svc.DeleteComment(context.Background(), "cmt-1", "user-1"); err != nil {
		t.Fatalf("作者删除应成功: %v", err)
	}
	if _, ok := mocks.details.comments["cmt-1"]; ok {
		t.Error("评论应被删除")
	}
}

// ── Delete 级联测试 ──

func TestTaskService_Delete_Cascade(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	mocks.tasks.tasks["task-1"] = &model.Task{TaskID: "task-1", BoardID: "board-1", Title: "迁移脚本", Status: model.TaskStatusTodo}
	mocks.details.assignments["task-1/user-2"] = &model.TaskAssignment{TaskID: "task-1", UserID: "user-2"}
	mocks.details.comments["cmt-1"] = &model.TaskComment{CommentID: "cmt-1", TaskID: "task-1", AuthorID: "user-1", Body: "x"}
	mocks.details.attachments["att-1"] = &model.TaskAttachment{AttachmentID: "att-1", TaskID: "task-1", FileRef: "s3://x", Filename: "x.log"}

	if err := svc.Delete(context.Background(), "task-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if _, ok := mocks.tasks.tasks["task-1"]; ok {
		t.Error("任务应被删除")
	}
	if len(mocks.details.assignments) != 0 || len(mocks.details.comments) != 0 || len(mocks.details.attachments) != 0 {
		t.Error("任务子记录应被级联删除")
	}
}

// ── 过滤查询测试 ──

func TestTaskService_List_MilestoneRequiresPlan(t *testing.T) {
	svc, _ := setupTestTaskService()

	_, _, err := svc.List(context.Background(), &dto.TaskListRequest{
		MilestoneID: "ms-1",
		Page:        1,
		PageSize:    20,
	})
	if !pkgerrors.IsValidation(err) {
		t.Errorf("里程碑过滤缺计划期望 ValidationError，实际: %v", err)
	}
}

func TestTaskService_List_CombinedFilters(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	mocks.tasks.tasks["task-1"] = &model.Task{
		TaskID: "task-1", BoardID: "board-1", PlanID: strPtr("plan-1"),
		Title: "数据库迁移", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityHigh,
	}
	mocks.tasks.tasks["task-2"] = &model.Task{
		TaskID: "task-2", BoardID: "board-1", PlanID: strPtr("plan-1"),
		Title: "接口联调", Status: model.TaskStatusTodo, Priority: model.TaskPriorityHigh,
	}
	mocks.tasks.tasks["task-3"] = &model.Task{
		TaskID: "task-3", BoardID: "board-2",
		Title: "数据库备份", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityHigh,
	}
	mocks.details.assignments["task-1/user-2"] = &model.TaskAssignment{TaskID: "task-1", UserID: "user-2"}

	tasks, total, err := svc.List(context.Background(), &dto.TaskListRequest{
		BoardID:    "board-1",
		Status:     model.TaskStatusInProgress,
		AssigneeID: "user-2",
		Search:     "数据库",
		Page:       1,
		PageSize:   20,
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || len(tasks) != 1 || tasks[0].ID != "task-1" {
		t.Errorf("组合过滤期望唯一命中task-1，实际 total=%d tasks=%v", total, tasks)
	}
	if len(tasks[0].AssigneeIDs) != 1 || tasks[0].AssigneeIDs[0] != "user-2" {
		t.Errorf("期望assignee_ids=[user-2]，实际=%v", tasks[0].AssigneeIDs)
	}
}

func TestTaskService_List_ForeignMilestoneEmpty(t *testing.T) {
	svc, mocks := setupTestTaskService()
	seedHierarchy(mocks)
	// task-1 在 plan-1/ms-1 下；按 plan-1+ms-2（属于plan-2）过滤应得空集而非错误
	mocks.tasks.tasks["task-1"] = &model.Task{
		TaskID: "task-1", BoardID: "board-1", PlanID: strPtr("plan-1"), MilestoneID: strPtr("ms-1"),
		Title: "发布准备", Status: model.TaskStatusTodo,
	}

	tasks, total, err := svc.List(context.Background(), &dto.TaskListRequest{
		PlanID:      "plan-1",
		MilestoneID: "ms-2",
		Page:        1,
		PageSize:    20,
	})
	if err != nil {
		t.Fatalf("外部里程碑过滤不应报错: %v", err)
	}
	if total != 0 || len(tasks) != 0 {
		t.Errorf("期望空结果，实际 total=%d", total)
	}
}
