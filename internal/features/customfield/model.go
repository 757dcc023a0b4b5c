package customfield

import (
	"strings"
	"time"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeDropdown FieldType = "DROPDOWN"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDropdown:
		return true
	}
	return false
}

// CustomField binds a user-defined field of a module to one physical slot.
type CustomField struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Module     models.Module      `json:"module" bson:"module"`
	FieldName  string             `json:"field_name" bson:"field_name"`
	FieldType  FieldType          `json:"field_type" bson:"field_type"`
	ColumnName string             `json:"column_name" bson:"column_name"` // "cf1".."cf20"
	Options    []string           `json:"options,omitempty" bson:"options,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// Slot resolves the bound column name.
func (f *CustomField) Slot() (models.Slot, error) {
	return models.ParseSlot(f.ColumnName)
}

func (f *CustomField) HasOption(value string) bool {
	for _, o := range f.Options {
		if o == value {
			return true
		}
	}
	return false
}

func cleanOptions(options []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}
