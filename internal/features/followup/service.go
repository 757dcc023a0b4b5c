package followup

import (
	"context"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/audit"
	"pocket-crm/internal/features/reminder"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Scheduler is the part of the reminder service follow-ups drive.
type Scheduler interface {
	Schedule(job reminder.Job) []reminder.Fire
	Cancel(followUpID primitive.ObjectID)
}

type FollowUpService interface {
	CreateFollowUp(ctx context.Context, followUp *FollowUp) ([]reminder.Fire, error)
	GetFollowUp(ctx context.Context, id primitive.ObjectID) (*FollowUp, error)
	ListFollowUps(ctx context.Context, page models.Page) (*models.PagedResult[FollowUp], error)
	ListByRecord(ctx context.Context, ref models.RecordRef) ([]FollowUp, error)
	ListUpcoming(ctx context.Context, limit int64) ([]FollowUp, error)
	UpdateFollowUp(ctx context.Context, id primitive.ObjectID, followUp *FollowUp) ([]reminder.Fire, error)
	DeleteFollowUp(ctx context.Context, id primitive.ObjectID) error
	UpcomingReminders(ctx context.Context, now time.Time) ([]reminder.Job, error)
}

type FollowUpServiceImpl struct {
	Repo         FollowUpRepository
	Scheduler    Scheduler
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewFollowUpService(repo FollowUpRepository, scheduler Scheduler, auditService audit.AuditService, logger *zap.Logger) FollowUpService {
	return &FollowUpServiceImpl{
		Repo:         repo,
		Scheduler:    scheduler,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (f *FollowUp) job() (reminder.Job, bool) {
	if f.DueAt == nil {
		return reminder.Job{}, false
	}
	return reminder.Job{
		FollowUpID:      f.ID,
		Ref:             f.Ref,
		DueAt:           *f.DueAt,
		ReminderMinutes: f.ReminderMinutes,
		Type:            f.Type,
		Notes:           f.Notes,
	}, true
}

// schedule replaces the follow-up's reminders; without a due time it only
// cancels.
func (s *FollowUpServiceImpl) schedule(f *FollowUp) []reminder.Fire {
	job, ok := f.job()
	if !ok {
		s.Scheduler.Cancel(f.ID)
		return []reminder.Fire{}
	}
	return s.Scheduler.Schedule(job)
}

func (s *FollowUpServiceImpl) CreateFollowUp(ctx context.Context, f *FollowUp) ([]reminder.Fire, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	f.ID = primitive.NewObjectID()
	f.CreatedAt = now
	f.UpdatedAt = now

	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, "FollowUp", f.ID.Hex(), map[string]models.Change{
		"ref": {New: f.Ref.String()},
	})
	return s.schedule(f), nil
}

func (s *FollowUpServiceImpl) GetFollowUp(ctx context.Context, id primitive.ObjectID) (*FollowUp, error) {
	return s.Repo.Get(ctx, id)
}

func (s *FollowUpServiceImpl) ListFollowUps(ctx context.Context, page models.Page) (*models.PagedResult[FollowUp], error) {
	items, total, err := s.Repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	return &models.PagedResult[FollowUp]{Data: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (s *FollowUpServiceImpl) ListByRecord(ctx context.Context, ref models.RecordRef) ([]FollowUp, error) {
	return s.Repo.ListByRecord(ctx, ref)
}

func (s *FollowUpServiceImpl) ListUpcoming(ctx context.Context, limit int64) ([]FollowUp, error) {
	return s.Repo.ListUpcoming(ctx, time.Now(), limit)
}

func (s *FollowUpServiceImpl) UpdateFollowUp(ctx context.Context, id primitive.ObjectID, f *FollowUp) ([]reminder.Fire, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	f.ID = existing.ID
	f.CreatedAt = existing.CreatedAt
	f.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, f); err != nil {
		return nil, err
	}

	changes := map[string]models.Change{}
	if existing.Stage != f.Stage {
		changes["follow_up_stage"] = models.Change{Old: existing.Stage, New: f.Stage}
	}
	if !sameTime(existing.DueAt, f.DueAt) {
		changes["due_at"] = models.Change{Old: existing.DueAt, New: f.DueAt}
	}
	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, "FollowUp", id.Hex(), changes)

	return s.schedule(f), nil
}

func (s *FollowUpServiceImpl) DeleteFollowUp(ctx context.Context, id primitive.ObjectID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Scheduler.Cancel(id)
	_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, "FollowUp", id.Hex(), nil)
	return nil
}

// UpcomingReminders feeds the reminder scheduler on startup and after a restore.
func (s *FollowUpServiceImpl) UpcomingReminders(ctx context.Context, now time.Time) ([]reminder.Job, error) {
	items, err := s.Repo.ListUpcoming(ctx, now, 0)
	if err != nil {
		return nil, err
	}
	jobs := make([]reminder.Job, 0, len(items))
	for i := range items {
		if job, ok := items[i].job(); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
