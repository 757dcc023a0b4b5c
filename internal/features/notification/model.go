package notification

import (
	"time"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeReminder NotificationType = "reminder"
	NotificationTypeInfo     NotificationType = "info"
)

type Notification struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title      string              `bson:"title" json:"title"`
	Message    string              `bson:"message" json:"message"`
	Type       NotificationType    `bson:"type" json:"type"`
	Ref        *models.RecordRef   `bson:"ref,omitempty" json:"ref,omitempty"`
	FollowUpID *primitive.ObjectID `bson:"follow_up_id,omitempty" json:"follow_up_id,omitempty"`
	IsRead     bool                `bson:"is_read" json:"is_read"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
	ReadAt     *time.Time          `bson:"read_at,omitempty" json:"read_at,omitempty"`
}

// Event is what connected clients receive over the websocket.
type Event struct {
	Kind         string        `json:"kind"`
	Notification *Notification `json:"notification"`
}
