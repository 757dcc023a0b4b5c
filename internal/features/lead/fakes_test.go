package lead

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/contact"
	"pocket-crm/internal/features/deal"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepo struct {
	mu    sync.Mutex
	leads []Lead
}

func (r *memoryRepo) Create(ctx context.Context, lead *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, *lead)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id primitive.ObjectID) (*Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == id {
			l := l
			return &l, nil
		}
	}
	return nil, fmt.Errorf("lead: %w", models.ErrNotFound)
}

func (r *memoryRepo) List(ctx context.Context, page models.Page, status string) ([]Lead, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Lead{}
	for _, l := range r.leads {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]Lead, error) {
	items, _, err := r.List(ctx, models.Page{}, "")
	return items, err
}

func (r *memoryRepo) Update(ctx context.Context, lead *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		stored := &r.leads[i]
		if stored.ID != lead.ID {
			continue
		}
		if stored.IsConverted != lead.IsConverted {
			return ErrLeadConvertedConcurrently
		}
		stored.Name = lead.Name
		stored.Email = lead.Email
		stored.Mobile = lead.Mobile
		stored.WhatsApp = lead.WhatsApp
		stored.Status = lead.Status
		stored.LeadSource = lead.LeadSource
		stored.Slots = lead.Slots
		stored.UpdatedAt = lead.UpdatedAt
		if !lead.IsConverted {
			stored.ContactID = lead.ContactID
		}
		return nil
	}
	return fmt.Errorf("lead: %w", models.ErrNotFound)
}

// beforeUpdateRepo runs hook once, right before the first Update writes.
type beforeUpdateRepo struct {
	*memoryRepo
	once sync.Once
	hook func()
}

func (r *beforeUpdateRepo) Update(ctx context.Context, lead *Lead) error {
	r.once.Do(r.hook)
	return r.memoryRepo.Update(ctx, lead)
}

func (r *memoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("lead: %w", models.ErrNotFound)
}

func (r *memoryRepo) MarkConverted(ctx context.Context, id primitive.ObjectID, contactID *primitive.ObjectID, dealID primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.leads {
		l := &r.leads[i]
		if l.ID != id {
			continue
		}
		if l.IsConverted {
			return ErrLeadAlreadyConverted
		}
		l.IsConverted = true
		l.Status = StatusConverted
		if contactID != nil {
			l.ContactID = contactID
		}
		l.ConvertedDealID = &dealID
		l.ConvertedAt = &at
		return nil
	}
	return ErrLeadAlreadyConverted
}

func (r *memoryRepo) ClearSlot(ctx context.Context, slot models.Slot) (int64, error) {
	return 0, nil
}

func (r *memoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

type memoryContacts struct {
	mu       sync.Mutex
	contacts map[primitive.ObjectID]contact.Contact
	err      error
}

func (m *memoryContacts) CreateContact(ctx context.Context, c *contact.Contact) error {
	if m.err != nil {
		return m.err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	m.contacts[c.ID] = *c
	return nil
}

func (m *memoryContacts) DeleteContact(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contacts, id)
	return nil
}

type memoryDeals struct {
	mu    sync.Mutex
	deals map[primitive.ObjectID]deal.Deal
	err   error
}

func (m *memoryDeals) CreateDeal(ctx context.Context, d *deal.Deal) error {
	if m.err != nil {
		return m.err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = primitive.NewObjectID()
	m.deals[d.ID] = *d
	return nil
}

func (m *memoryDeals) DeleteDeal(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.deals, id)
	return nil
}

type anySlots struct{}

func (a anySlots) WriteSlots(ctx context.Context, module models.Module, values *models.SlotValues, write func() error) error {
	if err := a.ValidateSlots(ctx, module, values); err != nil {
		return err
	}
	return write()
}

func (a anySlots) ValidateSlots(ctx context.Context, module models.Module, values *models.SlotValues) error {
	return nil
}

type MockAuditService struct {
	mu      sync.Mutex
	Actions []models.AuditAction
}

func (m *MockAuditService) LogChange(ctx context.Context, action models.AuditAction, module string, recordID string, changes map[string]models.Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *MockAuditService) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]models.AuditLog, error) {
	return nil, nil
}

var errInsert = errors.New("disk full")
