package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/notification"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestFireTimes(t *testing.T) {
	tests := []struct {
		name    string
		due     time.Time
		minutes int
		now     time.Time
		want    []Fire
	}{
		{
			name:    "due and reminder",
			due:     base.Add(2*time.Hour + 30*time.Second),
			minutes: 15,
			now:     base,
			want: []Fire{
				{Kind: KindDue, At: base.Add(2 * time.Hour)},
				{Kind: KindReminder, At: base.Add(105 * time.Minute)},
			},
		},
		{
			name:    "no lead time",
			due:     base.Add(time.Hour),
			minutes: 0,
			now:     base,
			want:    []Fire{{Kind: KindDue, At: base.Add(time.Hour)}},
		},
		{
			name:    "reminder already past",
			due:     base.Add(10 * time.Minute),
			minutes: 30,
			now:     base,
			want:    []Fire{{Kind: KindDue, At: base.Add(10 * time.Minute)}},
		},
		{
			name:    "both past",
			due:     base.Add(-time.Minute),
			minutes: 5,
			now:     base,
			want:    []Fire{},
		},
		{
			name:    "one year lead time",
			due:     base.Add(400 * 24 * time.Hour),
			minutes: MaxReminderMinutes,
			now:     base,
			want: []Fire{
				{Kind: KindDue, At: base.Add(400 * 24 * time.Hour)},
				{Kind: KindReminder, At: base.Add(35 * 24 * time.Hour)},
			},
		},
		{
			name:    "lead time that would overflow gets no reminder",
			due:     base.Add(time.Hour),
			minutes: 200_000_000,
			now:     base,
			want:    []Fire{{Kind: KindDue, At: base.Add(time.Hour)}},
		},
		{
			name:    "truncation can move a fire into the past",
			due:     base.Add(45 * time.Second),
			minutes: 0,
			now:     base.Add(30 * time.Second),
			want:    []Fire{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FireTimes(tt.due, tt.minutes, tt.now))
		})
	}
}

func TestOnceSchedule(t *testing.T) {
	s := onceSchedule{at: base}
	assert.Equal(t, base, s.Next(base.Add(-time.Hour)))
	assert.True(t, s.Next(base).IsZero())
	assert.True(t, s.Next(base.Add(time.Second)).IsZero())
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*notification.Notification
	ch   chan struct{}
	err  error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan struct{}, 10)}
}

func (n *recordingNotifier) Notify(ctx context.Context, msg *notification.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	n.ch <- struct{}{}
	return nil
}

func newTestService(notifier Notifier) *ReminderServiceImpl {
	return newReminderService(notifier, zap.NewNop(), func() time.Time { return base })
}

// entryOf returns the cron entry registered for the activation.
func entryOf(svc *ReminderServiceImpl, id primitive.ObjectID, kind Kind) *cron.EntryID {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	e := svc.jobEntries[entryKey{id, kind}].id
	return &e
}

func TestScheduleReplacesPreviousEntries(t *testing.T) {
	svc := newTestService(newRecordingNotifier())
	id := primitive.NewObjectID()

	fires := svc.Schedule(Job{FollowUpID: id, DueAt: base.Add(time.Hour), ReminderMinutes: 10})
	require.Len(t, fires, 2)
	require.Len(t, svc.Pending(), 2)

	svc.Schedule(Job{FollowUpID: id, DueAt: base.Add(3 * time.Hour)})
	pending := svc.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, KindDue, pending[0].Kind)
	assert.Equal(t, base.Add(3*time.Hour), pending[0].At)
	assert.Len(t, svc.scheduler.Entries(), 1)

	other := primitive.NewObjectID()
	svc.Schedule(Job{FollowUpID: other, DueAt: base.Add(30 * time.Minute), ReminderMinutes: 5})
	pending = svc.Pending()
	require.Len(t, pending, 3)
	assert.Equal(t, other, pending[0].FollowUpID, "soonest first")

	svc.Cancel(id)
	assert.Len(t, svc.Pending(), 2)
	assert.Len(t, svc.scheduler.Entries(), 2)
}

func TestFireNotifiesAndForgetsEntry(t *testing.T) {
	notifier := newRecordingNotifier()
	svc := newTestService(notifier)
	id := primitive.NewObjectID()
	ref := models.DealRef(primitive.NewObjectID())

	job := Job{FollowUpID: id, Ref: ref, DueAt: base.Add(time.Hour), ReminderMinutes: 15, Type: "Call", Notes: "pricing"}
	svc.Schedule(job)
	svc.fire(job, KindReminder, entryOf(svc, id, KindReminder))

	require.Len(t, notifier.sent, 1)
	n := notifier.sent[0]
	assert.Equal(t, "Call in 15 minutes", n.Title)
	assert.Contains(t, n.Message, "pricing")
	assert.Equal(t, notification.NotificationTypeReminder, n.Type)
	assert.Equal(t, ref, *n.Ref)
	assert.Equal(t, id, *n.FollowUpID)

	pending := svc.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, KindDue, pending[0].Kind)
}

func TestReplacedActivationDoesNotFire(t *testing.T) {
	notifier := newRecordingNotifier()
	svc := newTestService(notifier)
	id := primitive.NewObjectID()

	old := Job{FollowUpID: id, DueAt: base.Add(time.Hour), Notes: "old"}
	svc.Schedule(old)
	stale := entryOf(svc, id, KindDue)

	next := Job{FollowUpID: id, DueAt: base.Add(24 * time.Hour), Notes: "new"}
	svc.Schedule(next)

	// the old cron job was already running when the follow-up was re-saved
	svc.fire(old, KindDue, stale)

	assert.Empty(t, notifier.sent)
	pending := svc.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, base.Add(24*time.Hour), pending[0].At)
	assert.Len(t, svc.scheduler.Entries(), 1)

	svc.fire(next, KindDue, entryOf(svc, id, KindDue))
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0].Message, "new")
	assert.Empty(t, svc.Pending())
}

func TestCancelledActivationDoesNotFire(t *testing.T) {
	notifier := newRecordingNotifier()
	svc := newTestService(notifier)
	job := Job{FollowUpID: primitive.NewObjectID(), DueAt: base.Add(time.Hour)}

	svc.Schedule(job)
	entry := entryOf(svc, job.FollowUpID, KindDue)
	svc.Cancel(job.FollowUpID)
	svc.fire(job, KindDue, entry)

	assert.Empty(t, notifier.sent)
}

func TestDueNowFiresImmediately(t *testing.T) {
	notifier := newRecordingNotifier()
	svc := newTestService(notifier)

	svc.Schedule(Job{FollowUpID: primitive.NewObjectID(), DueAt: base})

	select {
	case <-notifier.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification")
	}
	assert.Empty(t, svc.Pending())
}

func TestFireNotifierFailureIsLogged(t *testing.T) {
	notifier := newRecordingNotifier()
	notifier.err = errors.New("mongo down")
	svc := newTestService(notifier)

	job := Job{FollowUpID: primitive.NewObjectID(), DueAt: base.Add(time.Hour)}
	svc.Schedule(job)
	svc.fire(job, KindDue, entryOf(svc, job.FollowUpID, KindDue))
	assert.Empty(t, svc.Pending())
}

type staticSource struct {
	jobs []Job
	err  error
}

func (s *staticSource) UpcomingReminders(ctx context.Context, now time.Time) ([]Job, error) {
	return s.jobs, s.err
}

func TestInitializeAndReload(t *testing.T) {
	svc := newTestService(newRecordingNotifier())
	source := &staticSource{jobs: []Job{
		{FollowUpID: primitive.NewObjectID(), DueAt: base.Add(time.Hour), ReminderMinutes: 30},
		{FollowUpID: primitive.NewObjectID(), DueAt: base.Add(2 * time.Hour)},
	}}

	require.NoError(t, svc.InitializeScheduler(context.Background(), source))
	defer svc.StopScheduler()
	assert.Len(t, svc.Pending(), 3)

	source.jobs = source.jobs[1:]
	require.NoError(t, svc.Reload(context.Background()))
	assert.Len(t, svc.Pending(), 1)

	source.err = errors.New("boom")
	assert.Error(t, svc.Reload(context.Background()))
}
