package notification

import (
	"context"
	"time"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type NotificationService interface {
	Notify(ctx context.Context, n *Notification) error
	List(ctx context.Context, page models.Page) (*models.PagedResult[Notification], error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context) (int64, error)
}

type NotificationServiceImpl struct {
	Repo   NotificationRepository
	Hub    *Hub
	Logger *zap.Logger
}

func NewNotificationService(repo NotificationRepository, hub *Hub, logger *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		Repo:   repo,
		Hub:    hub,
		Logger: logger,
	}
}

// Notify persists n and pushes it to connected clients.
func (s *NotificationServiceImpl) Notify(ctx context.Context, n *Notification) error {
	n.ID = primitive.NewObjectID()
	n.IsRead = false
	n.ReadAt = nil
	if n.Type == "" {
		n.Type = NotificationTypeInfo
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}
	s.Hub.Broadcast(Event{Kind: "notification", Notification: n})
	return nil
}

func (s *NotificationServiceImpl) List(ctx context.Context, page models.Page) (*models.PagedResult[Notification], error) {
	items, total, err := s.Repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	return &models.PagedResult[Notification]{Data: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	return s.Repo.CountUnread(ctx)
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	return s.Repo.MarkAsRead(ctx, id, time.Now())
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context) (int64, error) {
	n, err := s.Repo.MarkAllAsRead(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	s.Logger.Debug("notifications marked read", zap.Int64("count", n))
	return n, nil
}
