package deal

import (
	"math"
	"strings"
	"time"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StageProspecting   = "Prospecting"
	StageQualification = "Qualification"
	StageProposal      = "Proposal"
	StageNegotiation   = "Negotiation"
	StageClosedWon     = "Closed Won"
	StageClosedLost    = "Closed Lost"
)

// Stages are the suggested pipeline stages, in pipeline order. Other values
// are accepted.
var Stages = []string{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

type Deal struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Amount      *float64            `json:"amount,omitempty" bson:"amount,omitempty"`
	Stage       string              `json:"stage" bson:"stage"`
	Probability *int                `json:"probability,omitempty" bson:"probability,omitempty"`
	ClosingDate *time.Time          `json:"closing_date,omitempty" bson:"closing_date,omitempty"`
	ContactID   *primitive.ObjectID `json:"contact_id,omitempty" bson:"contact_id,omitempty"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Slots       models.SlotValues   `json:"custom_fields" bson:"custom_fields"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}

func (d *Deal) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Stage = strings.TrimSpace(d.Stage)
	if d.Title == "" {
		return models.Invalid("title", "is required")
	}
	if a := d.Amount; a != nil && (*a < 0 || math.IsNaN(*a) || math.IsInf(*a, 0)) {
		return models.Invalid("amount", "must be zero or more")
	}
	if p := d.Probability; p != nil && (*p < 0 || *p > 100) {
		return models.Invalid("probability", "must be between 0 and 100")
	}
	if d.Stage == "" {
		d.Stage = StageProspecting
	}
	return nil
}

// Optional returns *p, or an untyped nil when p is unset.
func Optional[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func sameOptional[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
