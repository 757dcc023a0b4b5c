package lead

import (
	"context"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/audit"
	"pocket-crm/internal/features/contact"
	"pocket-crm/internal/features/deal"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type SlotValidator interface {
	// WriteSlots validates values and runs write while no custom field of
	// module can be created or deleted.
	WriteSlots(ctx context.Context, module models.Module, values *models.SlotValues, write func() error) error
}

// ContactWriter is the part of the contact service conversion needs.
type ContactWriter interface {
	CreateContact(ctx context.Context, c *contact.Contact) error
	DeleteContact(ctx context.Context, id primitive.ObjectID) error
}

// DealWriter is the part of the deal service conversion needs.
type DealWriter interface {
	CreateDeal(ctx context.Context, d *deal.Deal) error
	DeleteDeal(ctx context.Context, id primitive.ObjectID) error
}

type LeadService interface {
	CreateLead(ctx context.Context, lead *Lead) error
	GetLead(ctx context.Context, id primitive.ObjectID) (*Lead, error)
	ListLeads(ctx context.Context, page models.Page, status string) (*models.PagedResult[Lead], error)
	UpdateLead(ctx context.Context, id primitive.ObjectID, lead *Lead) (*Lead, error)
	DeleteLead(ctx context.Context, id primitive.ObjectID) error
	ConvertLeadToDeal(ctx context.Context, id primitive.ObjectID, req ConvertRequest) (*ConversionResult, error)
}

type LeadServiceImpl struct {
	Repo         LeadRepository
	Slots        SlotValidator
	Contacts     ContactWriter
	Deals        DealWriter
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewLeadService(repo LeadRepository, slots SlotValidator, contacts ContactWriter, deals DealWriter, auditService audit.AuditService, logger *zap.Logger) LeadService {
	return &LeadServiceImpl{
		Repo:         repo,
		Slots:        slots,
		Contacts:     contacts,
		Deals:        deals,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *LeadServiceImpl) CreateLead(ctx context.Context, l *Lead) error {
	if err := l.Validate(); err != nil {
		return err
	}

	now := time.Now()
	l.ID = primitive.NewObjectID()
	l.IsConverted = false
	l.ConvertedDealID = nil
	l.ConvertedAt = nil
	l.CreatedAt = now
	l.UpdatedAt = now

	err := s.Slots.WriteSlots(ctx, models.ModuleLead, &l.Slots, func() error {
		return s.Repo.Create(ctx, l)
	})
	if err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, string(models.ModuleLead), l.ID.Hex(), map[string]models.Change{
		"name":   {New: l.Name},
		"status": {New: l.Status},
	})
	return nil
}

func (s *LeadServiceImpl) GetLead(ctx context.Context, id primitive.ObjectID) (*Lead, error) {
	return s.Repo.Get(ctx, id)
}

func (s *LeadServiceImpl) ListLeads(ctx context.Context, page models.Page, status string) (*models.PagedResult[Lead], error) {
	items, total, err := s.Repo.List(ctx, page, status)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	return &models.PagedResult[Lead]{Data: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// UpdateLead replaces the editable fields. Conversion state is owned by
// ConvertLeadToDeal and carried over unchanged.
func (s *LeadServiceImpl) UpdateLead(ctx context.Context, id primitive.ObjectID, l *Lead) (*Lead, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	l.ID = existing.ID
	l.IsConverted = existing.IsConverted
	l.ConvertedDealID = existing.ConvertedDealID
	l.ConvertedAt = existing.ConvertedAt
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = time.Now()
	if existing.IsConverted {
		l.Status = StatusConverted
		l.ContactID = existing.ContactID
	}

	err = s.Slots.WriteSlots(ctx, models.ModuleLead, &l.Slots, func() error {
		return s.Repo.Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	changes := map[string]models.Change{}
	if existing.Status != l.Status {
		changes["status"] = models.Change{Old: existing.Status, New: l.Status}
	}
	if existing.Name != l.Name {
		changes["name"] = models.Change{Old: existing.Name, New: l.Name}
	}
	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, string(models.ModuleLead), id.Hex(), changes)
	return l, nil
}

func (s *LeadServiceImpl) DeleteLead(ctx context.Context, id primitive.ObjectID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, string(models.ModuleLead), id.Hex(), nil)
	return nil
}
