package followup

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/reminder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryRepo struct {
	mu    sync.Mutex
	items []FollowUp
}

func (r *memoryRepo) Create(ctx context.Context, f *FollowUp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *f)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id primitive.ObjectID) (*FollowUp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.items {
		if f.ID == id {
			f := f
			return &f, nil
		}
	}
	return nil, fmt.Errorf("follow-up: %w", models.ErrNotFound)
}

func (r *memoryRepo) List(ctx context.Context, page models.Page) ([]FollowUp, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FollowUp{}, r.items...), int64(len(r.items)), nil
}

func (r *memoryRepo) ListByRecord(ctx context.Context, ref models.RecordRef) ([]FollowUp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []FollowUp{}
	for _, f := range r.items {
		if f.Ref == ref {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListUpcoming(ctx context.Context, from time.Time, limit int64) ([]FollowUp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []FollowUp{}
	for _, f := range r.items {
		if f.DueAt != nil && !f.DueAt.Before(from) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, f *FollowUp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == f.ID {
			r.items[i] = *f
			return nil
		}
	}
	return fmt.Errorf("follow-up: %w", models.ErrNotFound)
}

func (r *memoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("follow-up: %w", models.ErrNotFound)
}

func (r *memoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeScheduler records the latest job per follow-up.
type fakeScheduler struct {
	jobs      map[primitive.ObjectID]reminder.Job
	cancelled []primitive.ObjectID
}

func (s *fakeScheduler) Schedule(job reminder.Job) []reminder.Fire {
	s.jobs[job.FollowUpID] = job
	return reminder.FireTimes(job.DueAt, job.ReminderMinutes, time.Now())
}

func (s *fakeScheduler) Cancel(id primitive.ObjectID) {
	delete(s.jobs, id)
	s.cancelled = append(s.cancelled, id)
}

type MockAuditService struct{}

func (MockAuditService) LogChange(ctx context.Context, action models.AuditAction, module string, recordID string, changes map[string]models.Change) error {
	return nil
}

func (MockAuditService) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]models.AuditLog, error) {
	return nil, nil
}

func newTestService() (FollowUpService, *memoryRepo, *fakeScheduler) {
	repo := &memoryRepo{}
	sched := &fakeScheduler{jobs: map[primitive.ObjectID]reminder.Job{}}
	return NewFollowUpService(repo, sched, MockAuditService{}, zap.NewNop()), repo, sched
}

func due(d time.Duration) *time.Time {
	t := time.Now().Add(d)
	return &t
}

func TestFollowUpValidate(t *testing.T) {
	id := primitive.NewObjectID()
	tests := []struct {
		name  string
		f     FollowUp
		field string
	}{
		{"ok", FollowUp{Ref: models.LeadRef(id)}, ""},
		{"lowercase module", FollowUp{Ref: models.RecordRef{Module: "deal", RecordID: id}}, ""},
		{"bad module", FollowUp{Ref: models.RecordRef{Module: "Ticket", RecordID: id}}, "ref.module"},
		{"missing record", FollowUp{Ref: models.RecordRef{Module: models.ModuleLead}}, "ref.record_id"},
		{"negative minutes", FollowUp{Ref: models.LeadRef(id), ReminderMinutes: -1}, "reminder_minutes"},
		{"one year ahead", FollowUp{Ref: models.LeadRef(id), ReminderMinutes: reminder.MaxReminderMinutes}, ""},
		{"more than a year ahead", FollowUp{Ref: models.LeadRef(id), ReminderMinutes: reminder.MaxReminderMinutes + 1}, "reminder_minutes"},
		{"duration overflow", FollowUp{Ref: models.LeadRef(id), ReminderMinutes: 200_000_000}, "reminder_minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				assert.Contains(t, models.Modules(), tt.f.Ref.Module)
				return
			}
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCreateFollowUpSchedulesReminders(t *testing.T) {
	svc, _, sched := newTestService()
	ref := models.ContactRef(primitive.NewObjectID())

	f := &FollowUp{Ref: ref, DueAt: due(2 * time.Hour), ReminderMinutes: 15, Type: "Call"}
	fires, err := svc.CreateFollowUp(context.Background(), f)
	require.NoError(t, err)
	assert.Len(t, fires, 2)

	job, ok := sched.jobs[f.ID]
	require.True(t, ok)
	assert.Equal(t, ref, job.Ref)
	assert.Equal(t, 15, job.ReminderMinutes)
}

func TestUpdateFollowUpReschedules(t *testing.T) {
	ctx := context.Background()
	svc, _, sched := newTestService()
	ref := models.LeadRef(primitive.NewObjectID())

	f := &FollowUp{Ref: ref, DueAt: due(time.Hour)}
	_, err := svc.CreateFollowUp(ctx, f)
	require.NoError(t, err)

	later := due(5 * time.Hour)
	_, err = svc.UpdateFollowUp(ctx, f.ID, &FollowUp{Ref: ref, DueAt: later})
	require.NoError(t, err)
	assert.True(t, sched.jobs[f.ID].DueAt.Equal(*later))

	// clearing the due time cancels
	fires, err := svc.UpdateFollowUp(ctx, f.ID, &FollowUp{Ref: ref})
	require.NoError(t, err)
	assert.Empty(t, fires)
	assert.NotContains(t, sched.jobs, f.ID)
}

func TestDeleteFollowUpCancels(t *testing.T) {
	ctx := context.Background()
	svc, repo, sched := newTestService()

	f := &FollowUp{Ref: models.DealRef(primitive.NewObjectID()), DueAt: due(time.Hour)}
	_, err := svc.CreateFollowUp(ctx, f)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFollowUp(ctx, f.ID))
	assert.Empty(t, repo.items)
	assert.Contains(t, sched.cancelled, f.ID)
}

func TestListByRecordAndUpcomingReminders(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	lead := models.LeadRef(primitive.NewObjectID())
	deal := models.DealRef(lead.RecordID)

	for _, f := range []*FollowUp{
		{Ref: lead, DueAt: due(time.Hour)},
		{Ref: lead, DueAt: due(-time.Hour)},
		{Ref: deal},
	} {
		_, err := svc.CreateFollowUp(ctx, f)
		require.NoError(t, err)
	}

	byLead, err := svc.ListByRecord(ctx, lead)
	require.NoError(t, err)
	assert.Len(t, byLead, 2, "same id under another module is a different record")

	jobs, err := svc.UpcomingReminders(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
