package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pocket-crm/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryRepo struct {
	mu    sync.Mutex
	items []Notification
}

func (r *memoryRepo) Create(ctx context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *n)
	return nil
}

func (r *memoryRepo) List(ctx context.Context, page models.Page) ([]Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification{}, r.items...), int64(len(r.items)), nil
}

func (r *memoryRepo) CountUnread(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) MarkAsRead(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].IsRead = true
			r.items[i].ReadAt = &at
			return nil
		}
	}
	return fmt.Errorf("notification: %w", models.ErrNotFound)
}

func (r *memoryRepo) MarkAllAsRead(ctx context.Context, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.items {
		if !r.items[i].IsRead {
			r.items[i].IsRead = true
			n++
		}
	}
	return n, nil
}

type recordingConn struct {
	mu       sync.Mutex
	messages [][]byte
	err      error
}

func (c *recordingConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, data)
	return nil
}

func TestNotifyPersistsAndBroadcasts(t *testing.T) {
	repo := &memoryRepo{}
	hub := NewHub(zap.NewNop())
	svc := NewNotificationService(repo, hub, zap.NewNop())

	good := &recordingConn{}
	broken := &recordingConn{err: errors.New("closed")}
	hub.Register(good)
	hub.Register(broken)

	ref := models.LeadRef(primitive.NewObjectID())
	n := &Notification{Title: "Call Jane", Message: "due now", Type: NotificationTypeReminder, Ref: &ref}
	require.NoError(t, svc.Notify(context.Background(), n))

	assert.False(t, n.ID.IsZero())
	assert.Len(t, repo.items, 1)

	require.Len(t, good.messages, 1)
	var event Event
	require.NoError(t, json.Unmarshal(good.messages[0], &event))
	assert.Equal(t, "notification", event.Kind)
	assert.Equal(t, "Call Jane", event.Notification.Title)
	assert.Equal(t, ref, *event.Notification.Ref)

	assert.Equal(t, 1, hub.Clients(), "failed client is dropped")
}

func TestReadState(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	svc := NewNotificationService(repo, NewHub(zap.NewNop()), zap.NewNop())

	first := &Notification{Title: "a"}
	require.NoError(t, svc.Notify(ctx, first))
	require.NoError(t, svc.Notify(ctx, &Notification{Title: "b"}))
	require.NoError(t, svc.Notify(ctx, &Notification{Title: "c"}))

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, svc.MarkAsRead(ctx, first.ID))
	count, _ = svc.UnreadCount(ctx)
	assert.Equal(t, int64(2), count)

	assert.ErrorIs(t, svc.MarkAsRead(ctx, primitive.NewObjectID()), models.ErrNotFound)

	updated, err := svc.MarkAllAsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	count, _ = svc.UnreadCount(ctx)
	assert.Zero(t, count)
}
