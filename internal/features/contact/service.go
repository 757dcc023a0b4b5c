package contact

import (
	"context"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SlotValidator guards record writes that carry custom field values.
type SlotValidator interface {
	// WriteSlots validates values and runs write while no custom field of
	// module can be created or deleted.
	WriteSlots(ctx context.Context, module models.Module, values *models.SlotValues, write func() error) error
}

type ContactService interface {
	CreateContact(ctx context.Context, contact *Contact) error
	GetContact(ctx context.Context, id primitive.ObjectID) (*Contact, error)
	ListContacts(ctx context.Context, page models.Page) (*models.PagedResult[Contact], error)
	UpdateContact(ctx context.Context, id primitive.ObjectID, contact *Contact) (*Contact, error)
	DeleteContact(ctx context.Context, id primitive.ObjectID) error
}

type ContactServiceImpl struct {
	Repo         ContactRepository
	Slots        SlotValidator
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewContactService(repo ContactRepository, slots SlotValidator, auditService audit.AuditService, logger *zap.Logger) ContactService {
	return &ContactServiceImpl{
		Repo:         repo,
		Slots:        slots,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *ContactServiceImpl) CreateContact(ctx context.Context, c *Contact) error {
	if err := c.Validate(); err != nil {
		return err
	}

	now := time.Now()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now

	err := s.Slots.WriteSlots(ctx, models.ModuleContact, &c.Slots, func() error {
		return s.Repo.Create(ctx, c)
	})
	if err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, string(models.ModuleContact), c.ID.Hex(), map[string]models.Change{
		"name":   {New: c.Name},
		"mobile": {New: c.Mobile},
	})
	return nil
}

func (s *ContactServiceImpl) GetContact(ctx context.Context, id primitive.ObjectID) (*Contact, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ContactServiceImpl) ListContacts(ctx context.Context, page models.Page) (*models.PagedResult[Contact], error) {
	items, total, err := s.Repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	page.Normalize()
	return &models.PagedResult[Contact]{Data: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (s *ContactServiceImpl) UpdateContact(ctx context.Context, id primitive.ObjectID, c *Contact) (*Contact, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	err = s.Slots.WriteSlots(ctx, models.ModuleContact, &c.Slots, func() error {
		return s.Repo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, string(models.ModuleContact), id.Hex(), diff(existing, c))
	return c, nil
}

// DeleteContact removes the contact only. Leads, deals and follow-ups that
// reference it keep their (now dangling) reference.
func (s *ContactServiceImpl) DeleteContact(ctx context.Context, id primitive.ObjectID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, string(models.ModuleContact), id.Hex(), nil)
	s.Logger.Info("contact deleted", zap.String("id", id.Hex()))
	return nil
}

func diff(old, new *Contact) map[string]models.Change {
	changes := map[string]models.Change{}
	add := func(field, a, b string) {
		if a != b {
			changes[field] = models.Change{Old: a, New: b}
		}
	}
	add("name", old.Name, new.Name)
	add("mobile", old.Mobile, new.Mobile)
	add("email", old.Email, new.Email)
	add("company", old.Company, new.Company)
	add("address", old.Address, new.Address)
	for _, slot := range models.AllSlots() {
		a, _ := old.Slots.Get(slot)
		b, _ := new.Slots.Get(slot)
		add(slot.Name(), a, b)
	}
	return changes
}
