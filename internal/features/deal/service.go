package deal

import (
	"context"
	"fmt"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type SlotValidator interface {
	// WriteSlots validates values and runs write while no custom field of
	// module can be created or deleted.
	WriteSlots(ctx context.Context, module models.Module, values *models.SlotValues, write func() error) error
}

type DealService interface {
	CreateDeal(ctx context.Context, deal *Deal) error
	GetDeal(ctx context.Context, id primitive.ObjectID) (*Deal, error)
	ListDeals(ctx context.Context, page models.Page, stage string) (*models.PagedResult[Deal], error)
	UpdateDeal(ctx context.Context, id primitive.ObjectID, deal *Deal) (*Deal, error)
	DeleteDeal(ctx context.Context, id primitive.ObjectID) error
}

type DealServiceImpl struct {
	Repo         DealRepository
	Slots        SlotValidator
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewDealService(repo DealRepository, slots SlotValidator, auditService audit.AuditService, logger *zap.Logger) DealService {
	return &DealServiceImpl{
		Repo:         repo,
		Slots:        slots,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *DealServiceImpl) CreateDeal(ctx context.Context, d *Deal) error {
	if err := d.Validate(); err != nil {
		return err
	}

	now := time.Now()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = now
	d.UpdatedAt = now

	err := s.Slots.WriteSlots(ctx, models.ModuleDeal, &d.Slots, func() error {
		if err := s.Repo.Create(ctx, d); err != nil {
			return fmt.Errorf("insert deal: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, string(models.ModuleDeal), d.ID.Hex(), map[string]models.Change{
		"title":  {New: d.Title},
		"amount": {New: Optional(d.Amount)},
		"stage":  {New: d.Stage},
	})
	return nil
}

func (s *DealServiceImpl) GetDeal(ctx context.Context, id primitive.ObjectID) (*Deal, error) {
	return s.Repo.Get(ctx, id)
}

func (s *DealServiceImpl) ListDeals(ctx context.Context, page models.Page, stage string) (*models.PagedResult[Deal], error) {
	items, total, err := s.Repo.List(ctx, page, stage)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	return &models.PagedResult[Deal]{Data: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (s *DealServiceImpl) UpdateDeal(ctx context.Context, id primitive.ObjectID, d *Deal) (*Deal, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	d.ID = existing.ID
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now()
	err = s.Slots.WriteSlots(ctx, models.ModuleDeal, &d.Slots, func() error {
		return s.Repo.Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	changes := map[string]models.Change{}
	if existing.Stage != d.Stage {
		changes["stage"] = models.Change{Old: existing.Stage, New: d.Stage}
	}
	if !sameOptional(existing.Amount, d.Amount) {
		changes["amount"] = models.Change{Old: Optional(existing.Amount), New: Optional(d.Amount)}
	}
	if existing.Title != d.Title {
		changes["title"] = models.Change{Old: existing.Title, New: d.Title}
	}
	if !sameOptional(existing.Probability, d.Probability) {
		changes["probability"] = models.Change{Old: Optional(existing.Probability), New: Optional(d.Probability)}
	}
	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, string(models.ModuleDeal), id.Hex(), changes)

	if existing.Stage != d.Stage {
		s.Logger.Info("deal stage changed",
			zap.String("id", id.Hex()),
			zap.String("from", existing.Stage),
			zap.String("to", d.Stage),
		)
	}
	return d, nil
}

func (s *DealServiceImpl) DeleteDeal(ctx context.Context, id primitive.ObjectID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, string(models.ModuleDeal), id.Hex(), nil)
	return nil
}
