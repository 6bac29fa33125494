package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"opsboard/backend/internal/dto"
	"opsboard/backend/internal/model"
	"opsboard/backend/internal/repository"
)

// ── 通知模块业务错误 ──

var ErrNotificationNotFound = errors.New("通知不存在")

// EventPublisher 通知事件对外发布能力
// 由 pkg/redis 的客户端实现；为 nil 或发布失败时降级为仅落库
type EventPublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// NotificationService 通知业务接口
// Notify 为 fire-and-forget：任何失败只记日志，绝不向调用方传播
type NotificationService interface {
	Notify(ctx context.Context, userID, title, content, ntype string, relatedType, relatedID string)
	List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type notificationService struct {
	repo   *repository.Repository
	pub    EventPublisher
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, pub EventPublisher, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, pub: pub, logger: logger}
}

// notifyEvent 发布到事件通道的消息体
type notifyEvent struct {
	UserID      string `json:"user_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	RelatedType string `json:"related_type,omitempty"`
	RelatedID   string `json:"related_id,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}

func (s *notificationService) Notify(ctx context.Context, userID, title, content, ntype string, relatedType, relatedID string) {
	n := &model.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Content: content,
	}
	if relatedType != "" {
		n.RelatedType = &relatedType
		n.RelatedID = &relatedID
	}

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("通知落库失败", zap.String("user_id", userID), zap.Error(err))
	}

	if s.pub == nil {
		return
	}

	payload, err := json.Marshal(notifyEvent{
		UserID:      userID,
		Type:        ntype,
		Title:       title,
		Content:     content,
		RelatedType: relatedType,
		RelatedID:   relatedID,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Warn("通知事件序列化失败", zap.Error(err))
		return
	}
	if err := s.pub.Publish(ctx, payload); err != nil {
		s.logger.Warn("通知事件发布失败", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *notificationService) List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	offset := (req.Page - 1) * req.PageSize
	notifications, total, err := s.repo.Notification.ListByUser(ctx, userID, offset, req.PageSize)
	if err != nil {
		s.logger.Error("查询通知失败", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		resp := dto.NotificationResponse{
			ID:        n.NotificationID,
			Type:      n.Type,
			Title:     n.Title,
			Content:   n.Content,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.RelatedType != nil {
			resp.RelatedType = *n.RelatedType
		}
		if n.RelatedID != nil {
			resp.RelatedID = *n.RelatedID
		}
		result = append(result, resp)
	}
	return result, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	rows, err := s.repo.Notification.MarkRead(ctx, id, userID)
	if err != nil {
		s.logger.Error("标记通知已读失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
