package activity

import (
	"context"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/followup"
)

// CalendarEvent is one scheduled follow-up on the calendar.
type CalendarEvent struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Start    time.Time        `json:"start"`
	Type     string           `json:"type"`
	Priority string           `json:"priority"`
	Stage    string           `json:"stage,omitempty"`
	Ref      models.RecordRef `json:"ref"`
}

// FollowUpSource lists follow-ups due at or after from, soonest first.
type FollowUpSource interface {
	ListUpcoming(ctx context.Context, from time.Time, limit int64) ([]followup.FollowUp, error)
}

type ActivityService interface {
	GetCalendarEvents(ctx context.Context, start, end time.Time) ([]CalendarEvent, error)
}

type ActivityServiceImpl struct {
	FollowUps FollowUpSource
}

func NewActivityService(followUps FollowUpSource) ActivityService {
	return &ActivityServiceImpl{FollowUps: followUps}
}

// GetCalendarEvents returns follow-ups due in [start, end).
func (s *ActivityServiceImpl) GetCalendarEvents(ctx context.Context, start, end time.Time) ([]CalendarEvent, error) {
	if !end.After(start) {
		return nil, models.Invalid("end", "must be after start")
	}
	items, err := s.FollowUps.ListUpcoming(ctx, start, 0)
	if err != nil {
		return nil, err
	}

	events := []CalendarEvent{}
	for _, f := range items {
		if f.DueAt == nil || !f.DueAt.Before(end) {
			break
		}
		title := f.Type
		if f.Notes != "" {
			title += ": " + f.Notes
		}
		events = append(events, CalendarEvent{
			ID:       f.ID.Hex(),
			Title:    title,
			Start:    *f.DueAt,
			Type:     f.Type,
			Priority: f.Priority,
			Stage:    f.Stage,
			Ref:      f.Ref,
		})
	}
	return events, nil
}
