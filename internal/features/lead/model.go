package lead

import (
	"strings"
	"time"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusQualified = "Qualified"
	StatusLost      = "Lost"
	StatusConverted = "Converted"
)

// Statuses are the suggested lead statuses. Other values are accepted.
var Statuses = []string{StatusNew, StatusContacted, StatusQualified, StatusLost, StatusConverted}

var Sources = []string{"Website", "Referral", "Walk-in", "Phone", "Social Media", "Advertisement", "Other"}

type Lead struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name            string              `json:"name" bson:"name"`
	Email           string              `json:"email,omitempty" bson:"email,omitempty"`
	Mobile          string              `json:"mobile,omitempty" bson:"mobile,omitempty"`
	WhatsApp        string              `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	Status          string              `json:"status" bson:"status"`
	LeadSource      string              `json:"lead_source,omitempty" bson:"lead_source,omitempty"`
	IsConverted     bool                `json:"is_converted" bson:"is_converted"`
	ContactID       *primitive.ObjectID `json:"contact_id,omitempty" bson:"contact_id,omitempty"`
	ConvertedDealID *primitive.ObjectID `json:"converted_deal_id,omitempty" bson:"converted_deal_id,omitempty"`
	ConvertedAt     *time.Time          `json:"converted_at,omitempty" bson:"converted_at,omitempty"`
	Slots           models.SlotValues   `json:"custom_fields" bson:"custom_fields"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}

func (l *Lead) Validate() error {
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	l.Mobile = strings.TrimSpace(l.Mobile)
	l.WhatsApp = strings.TrimSpace(l.WhatsApp)
	l.Status = strings.TrimSpace(l.Status)
	if l.Name == "" {
		return models.Invalid("name", "is required")
	}
	if l.Status == "" {
		l.Status = StatusNew
	}
	return nil
}
