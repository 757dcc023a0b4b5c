package reminder

import (
	"time"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind tells the two fire times of a follow-up apart.
type Kind string

const (
	KindDue      Kind = "due"
	KindReminder Kind = "reminder"
)

// Job is a follow-up as the scheduler sees it.
type Job struct {
	FollowUpID      primitive.ObjectID
	Ref             models.RecordRef
	DueAt           time.Time
	ReminderMinutes int
	Type            string
	Notes           string
}

// Fire is one scheduled activation of a job.
type Fire struct {
	Kind Kind      `json:"kind"`
	At   time.Time `json:"at"`
}

// Entry describes a registered activation.
type Entry struct {
	FollowUpID primitive.ObjectID `json:"follow_up_id"`
	Kind       Kind               `json:"kind"`
	At         time.Time          `json:"at"`
}
