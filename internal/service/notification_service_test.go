package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestNotificationService(pub EventPublisher) (NotificationService, *testMocks) {
	repo, mocks := newTestRepo()
	svc := NewNotificationService(repo, pub, zap.NewNop())
	return svc, mocks
}

// ── Notify 测试 ──

func TestNotificationService_Notify_PersistsAndPublishes(t *testing.T) {
	pub := &mockPublisher{}
	svc, mocks := setupTestNotificationService(pub)

	svc.Notify(context.Background(), "user-1", "任务指派", "你被指派了任务「迁移脚本」",
		model.NotificationTypeAssigned, "task", "task-1")

	if len(mocks.notifications.notifications) != 1 {
		t.Fatalf("期望落库1条通知，实际=%d", len(mocks.notifications.notifications))
	}
	n := mocks.notifications.notifications[0]
	if n.RelatedType == nil || *n.RelatedType != "task" || n.RelatedID == nil || *n.RelatedID != "task-1" {
		t.Error("关联实体字段不符")
	}

	if len(pub.payloads) != 1 {
		t.Fatalf("期望发布1条事件，实际=%d", len(pub.payloads))
	}
	var evt notifyEvent
	if err := json.Unmarshal(pub.payloads[0], &evt); err != nil {
		t.Fatalf("事件应为合法JSON: %v", err)
	}
	if evt.UserID != "user-1" || evt.Type != model.NotificationTypeAssigned || evt.RelatedID != "task-1" {
		t.Errorf("事件内容不符: %+v", evt)
	}
	if evt.OccurredAt == "" {
		t.Error("事件应携带发生时刻")
	}
}

func TestNotificationService_Notify_NilPublisherPersistOnly(t *testing.T) {
	svc, mocks := setupTestNotificationService(nil)

	svc.Notify(context.Background(), "user-1", "任务指派", "内容", model.NotificationTypeAssigned, "", "")

	if len(mocks.notifications.notifications) != 1 {
		t.Fatalf("降级模式下仍应落库，实际=%d", len(mocks.notifications.notifications))
	}
	if mocks.notifications.notifications[0].RelatedType != nil {
		t.Error("无关联实体时 related_type 应为空")
	}
}

func TestNotificationService_Notify_FailuresSwallowed(t *testing.T) {
	pub := &mockPublisher{failWith: errors.New("redis down")}
	svc, mocks := setupTestNotificationService(pub)
	mocks.notifications.createErr = errors.New("db down")

	// 不 panic、不返回错误即为通过
	svc.Notify(context.Background(), "user-1", "任务指派", "内容", model.NotificationTypeAssigned, "task", "task-1")
}

// ── List / MarkRead 测试 ──

func TestNotificationService_List_NewestFirstPaged(t *testing.T) {
	svc, mocks := setupTestNotificationService(nil)
	for _, title := range []string{"第一条", "第二条", "第三条"} {
		mocks.notifications.Create(context.Background(), &model.Notification{
			UserID: "user-1", Type: model.NotificationTypeStatusChanged, Title: title,
		})
	}
	mocks.notifications.Create(context.Background(), &model.Notification{
		UserID: "user-2", Type: model.NotificationTypeStatusChanged, Title: "别人的",
	})

	page1, total, err := svc.List(context.Background(), "user-1", &dto.NotificationListRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 3 {
		t.Errorf("期望总数3，实际=%d", total)
	}
	if len(page1) != 2 || page1[0].Title != "第三条" || page1[1].Title != "第二条" {
		t.Errorf("首页应为最新在前: %+v", page1)
	}

	page2, _, err := svc.List(context.Background(), "user-1", &dto.NotificationListRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List 第二页应成功: %v", err)
	}
	if len(page2) != 1 || page2[0].Title != "第一条" {
		t.Errorf("第二页内容不符: %+v", page2)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	svc, mocks := setupTestNotificationService(nil)
	mocks.notifications.Create(context.Background(), &model.Notification{
		UserID: "user-1", Type: model.NotificationTypeAssigned, Title: "任务指派",
	})
	id := mocks.notifications.notifications[0].NotificationID

	if err := svc.MarkRead(context.Background(), id, "user-1"); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}
	if !mocks.notifications.notifications[0].IsRead {
		t.Error("通知应被标记为已读")
	}

	// 他人的通知对本人不可见
	if err := svc.MarkRead(context.Background(), id, "user-2"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("跨用户标记期望 ErrNotificationNotFound，实际: %v", err)
	}
	if err := svc.MarkRead(context.Background(), "ghost", "user-1"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("未知通知期望 ErrNotificationNotFound，实际: %v", err)
	}
}
