package contact

import (
	"strings"
	"time"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Contact struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Mobile    string             `json:"mobile" bson:"mobile"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	Company   string             `json:"company,omitempty" bson:"company,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	City      string             `json:"city,omitempty" bson:"city,omitempty"`
	State     string             `json:"state,omitempty" bson:"state,omitempty"`
	Country   string             `json:"country,omitempty" bson:"country,omitempty"`
	PhotoPath string             `json:"photo_path,omitempty" bson:"photo_path,omitempty"`
	Slots     models.SlotValues  `json:"custom_fields" bson:"custom_fields"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

func (c *Contact) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Mobile = strings.TrimSpace(c.Mobile)
	c.Email = strings.TrimSpace(c.Email)
	c.Company = strings.TrimSpace(c.Company)
}

// Validate enforces the required fields.
func (c *Contact) Validate() error {
	c.normalize()
	if c.Name == "" {
		return models.Invalid("name", "is required")
	}
	if c.Mobile == "" {
		return models.Invalid("mobile", "is required")
	}
	return nil
}
