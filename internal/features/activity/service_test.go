package activity

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/config"
	"pocket-crm/internal/features/followup"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubFollowUps []followup.FollowUp

func (s stubFollowUps) ListUpcoming(ctx context.Context, from time.Time, limit int64) ([]followup.FollowUp, error) {
	out := []followup.FollowUp{}
	for _, f := range s {
		if f.DueAt != nil && !f.DueAt.Before(from) {
			out = append(out, f)
		}
	}
	return out, nil
}

func at(s string) *time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return &t
}

func TestGetCalendarEvents(t *testing.T) {
	ref := models.LeadRef(primitive.NewObjectID())
	svc := NewActivityService(stubFollowUps{
		{ID: primitive.NewObjectID(), Ref: ref, DueAt: at("2026-03-01T09:00:00Z"), Type: "Call", Notes: "intro"},
		{ID: primitive.NewObjectID(), Ref: ref, DueAt: at("2026-03-02T23:59:00Z"), Type: "Meeting"},
		{ID: primitive.NewObjectID(), Ref: ref, DueAt: at("2026-03-03T00:00:00Z"), Type: "Email"},
	})

	start := *at("2026-03-01T00:00:00Z")
	events, err := svc.GetCalendarEvents(context.Background(), start, start.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Call: intro", events[0].Title)
	assert.Equal(t, "Meeting", events[1].Title)
	assert.Equal(t, ref, events[1].Ref)
}

func TestGetCalendarEventsRejectsEmptyRange(t *testing.T) {
	svc := NewActivityService(stubFollowUps{})
	start := time.Now()

	_, err := svc.GetCalendarEvents(context.Background(), start, start)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCalendarEndpointValidatesDates(t *testing.T) {
	app := fiber.New()
	NewActivityApi(NewActivityController(NewActivityService(stubFollowUps{})), &config.Config{SkipAuth: true}).Setup(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/activities/calendar?start=2026-03-01", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/activities/calendar?start=2026-03-01&end=2026-03-07", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
