package followup

import (
	"fmt"
	"strings"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/reminder"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	Types      = []string{"Call", "Meeting", "Email", "WhatsApp", "Visit"}
	Priorities = []string{"Low", "Medium", "High"}
	Stages     = []string{"Pending", "In Progress", "Done", "Cancelled"}
)

type FollowUp struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Ref             models.RecordRef   `json:"ref" bson:"ref"`
	DueAt           *time.Time         `json:"due_at,omitempty" bson:"due_at,omitempty"`
	Stage           string             `json:"follow_up_stage,omitempty" bson:"follow_up_stage,omitempty"`
	Type            string             `json:"follow_up_type,omitempty" bson:"follow_up_type,omitempty"`
	Priority        string             `json:"priority,omitempty" bson:"priority,omitempty"`
	ReminderMinutes int                `json:"reminder_minutes" bson:"reminder_minutes"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

func (f *FollowUp) Validate() error {
	module, err := models.ParseModule(string(f.Ref.Module))
	if err != nil {
		return models.Invalid("ref.module", "must be one of Contact, Lead, Deal")
	}
	f.Ref.Module = module
	if f.Ref.RecordID.IsZero() {
		return models.Invalid("ref.record_id", "is required")
	}
	if f.ReminderMinutes < 0 || f.ReminderMinutes > reminder.MaxReminderMinutes {
		return models.Invalid("reminder_minutes", fmt.Sprintf("must be between 0 and %d", reminder.MaxReminderMinutes))
	}
	f.Notes = strings.TrimSpace(f.Notes)
	if f.Priority == "" {
		f.Priority = "Medium"
	}
	return nil
}
