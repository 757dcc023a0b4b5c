package reminder

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pocket-crm/internal/features/notification"
	"pocket-crm/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Source lists the follow-ups that still have a future activation.
type Source interface {
	UpcomingReminders(ctx context.Context, now time.Time) ([]Job, error)
}

type Notifier interface {
	Notify(ctx context.Context, n *notification.Notification) error
}

type ReminderService interface {
	// Schedule replaces every activation registered for job.FollowUpID.
	Schedule(job Job) []Fire
	Cancel(followUpID primitive.ObjectID)
	Pending() []Entry
	InitializeScheduler(ctx context.Context, source Source) error
	// Reload drops every activation and re-reads the source.
	Reload(ctx context.Context) error
	StopScheduler() error
}

type entryKey struct {
	followUpID primitive.ObjectID
	kind       Kind
}

type registered struct {
	id cron.EntryID
	at time.Time
}

type ReminderServiceImpl struct {
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	scheduler  *cron.Cron
	source     Source
	jobEntries map[entryKey]registered
	mu         sync.Mutex
}

func NewReminderService(notifier Notifier, logger *zap.Logger) ReminderService {
	return newReminderService(notifier, logger, time.Now)
}

func newReminderService(notifier Notifier, logger *zap.Logger, now func() time.Time) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		notifier:   notifier,
		logger:     logger,
		now:        now,
		scheduler:  cron.New(),
		jobEntries: make(map[entryKey]registered),
	}
}

func (s *ReminderServiceImpl) Schedule(job Job) []Fire {
	now := s.now()
	fires := FireTimes(job.DueAt, job.ReminderMinutes, now)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(job.FollowUpID)
	for _, f := range fires {
		if !f.At.After(now) {
			// due this very instant; cron would never activate it
			go s.fire(job, f.Kind, nil)
			continue
		}
		job, kind := job, f.Kind
		// id is assigned under s.mu and read by fire under s.mu
		var id cron.EntryID
		id = s.scheduler.Schedule(onceSchedule{at: f.At}, cron.FuncJob(func() {
			s.fire(job, kind, &id)
		}))
		s.jobEntries[entryKey{job.FollowUpID, f.Kind}] = registered{id: id, at: f.At}
	}
	metrics.RemindersScheduled.Set(float64(len(s.jobEntries)))

	if len(fires) > 0 {
		s.logger.Debug("reminders scheduled",
			zap.String("follow_up_id", job.FollowUpID.Hex()),
			zap.Int("count", len(fires)),
		)
	}
	return fires
}

func (s *ReminderServiceImpl) Cancel(followUpID primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(followUpID)
	metrics.RemindersScheduled.Set(float64(len(s.jobEntries)))
}

func (s *ReminderServiceImpl) cancelLocked(followUpID primitive.ObjectID) {
	for _, kind := range []Kind{KindDue, KindReminder} {
		key := entryKey{followUpID, kind}
		if e, ok := s.jobEntries[key]; ok {
			s.scheduler.Remove(e.id)
			delete(s.jobEntries, key)
		}
	}
}

// Pending lists registered activations, soonest first.
func (s *ReminderServiceImpl) Pending() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.jobEntries))
	for key, e := range s.jobEntries {
		entries = append(entries, Entry{FollowUpID: key.followUpID, Kind: key.kind, At: e.at})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})
	return entries
}

// fire sends the notification of one activation. entry is the cron entry
// that activated it, nil for activations that were never registered. An
// entry no longer registered under its key was cancelled or replaced and
// sends nothing.
func (s *ReminderServiceImpl) fire(job Job, kind Kind, entry *cron.EntryID) {
	s.mu.Lock()
	if entry != nil {
		key := entryKey{job.FollowUpID, kind}
		e, ok := s.jobEntries[key]
		if !ok || e.id != *entry {
			s.mu.Unlock()
			s.logger.Debug("stale reminder skipped",
				zap.String("follow_up_id", job.FollowUpID.Hex()),
				zap.String("kind", string(kind)),
			)
			return
		}
		s.scheduler.Remove(e.id)
		delete(s.jobEntries, key)
	}
	metrics.RemindersScheduled.Set(float64(len(s.jobEntries)))
	s.mu.Unlock()

	n := buildNotification(job, kind)
	if err := s.notifier.Notify(context.Background(), n); err != nil {
		s.logger.Error("reminder notification failed",
			zap.String("follow_up_id", job.FollowUpID.Hex()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return
	}
	metrics.RemindersFired.WithLabelValues(string(kind)).Inc()
}

func buildNotification(job Job, kind Kind) *notification.Notification {
	subject := job.Type
	if subject == "" {
		subject = "Follow-up"
	}

	var title string
	switch kind {
	case KindReminder:
		title = fmt.Sprintf("%s in %d minutes", subject, job.ReminderMinutes)
	default:
		title = fmt.Sprintf("%s due now", subject)
	}

	message := fmt.Sprintf("%s follow-up scheduled for %s", job.Ref.Module, job.DueAt.Format("02 Jan 2006 15:04"))
	if job.Notes != "" {
		message += ": " + job.Notes
	}

	ref := job.Ref
	id := job.FollowUpID
	return &notification.Notification{
		Title:      title,
		Message:    message,
		Type:       notification.NotificationTypeReminder,
		Ref:        &ref,
		FollowUpID: &id,
	}
}

// InitializeScheduler registers every upcoming follow-up from source and
// starts the scheduler.
func (s *ReminderServiceImpl) InitializeScheduler(ctx context.Context, source Source) error {
	s.mu.Lock()
	s.source = source
	s.mu.Unlock()

	if err := s.Reload(ctx); err != nil {
		return err
	}
	s.scheduler.Start()
	s.logger.Info("reminder scheduler started", zap.Int("pending", len(s.Pending())))
	return nil
}

func (s *ReminderServiceImpl) Reload(ctx context.Context) error {
	s.mu.Lock()
	source := s.source
	for key, e := range s.jobEntries {
		s.scheduler.Remove(e.id)
		delete(s.jobEntries, key)
	}
	s.mu.Unlock()

	if source == nil {
		return nil
	}
	jobs, err := source.UpcomingReminders(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to load upcoming follow-ups: %w", err)
	}
	for _, job := range jobs {
		s.Schedule(job)
	}
	return nil
}

func (s *ReminderServiceImpl) StopScheduler() error {
	ctx := s.scheduler.Stop()
	<-ctx.Done()
	return nil
}
