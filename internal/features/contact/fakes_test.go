package contact

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepo struct {
	mu       sync.Mutex
	contacts []Contact
}

func (r *memoryRepo) Create(ctx context.Context, contact *Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts = append(r.contacts, *contact)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id primitive.ObjectID) (*Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.contacts {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("contact: %w", models.ErrNotFound)
}

func (r *memoryRepo) List(ctx context.Context, page models.Page) ([]Contact, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Contact{}
	for _, c := range r.contacts {
		if page.Search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(page.Search)) {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]Contact, error) {
	items, _, err := r.List(ctx, models.Page{})
	return items, err
}

func (r *memoryRepo) Update(ctx context.Context, contact *Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].ID == contact.ID {
			r.contacts[i] = *contact
			return nil
		}
	}
	return fmt.Errorf("contact: %w", models.ErrNotFound)
}

func (r *memoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contact: %w", models.ErrNotFound)
}

func (r *memoryRepo) ClearSlot(ctx context.Context, slot models.Slot) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.contacts {
		if r.contacts[i].Slots.IsSet(slot) {
			r.contacts[i].Slots.Clear(slot)
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

// boundSlots accepts values only in the listed slots.
type boundSlots map[models.Slot]bool

func (b boundSlots) WriteSlots(ctx context.Context, module models.Module, values *models.SlotValues, write func() error) error {
	if err := b.ValidateSlots(ctx, module, values); err != nil {
		return err
	}
	return write()
}

func (b boundSlots) ValidateSlots(ctx context.Context, module models.Module, values *models.SlotValues) error {
	values.Compact()
	for _, s := range values.Used() {
		if !b[s] {
			return models.Invalid(s.Name(), "no custom field is bound to this slot")
		}
	}
	return nil
}

type MockAuditService struct {
	mu      sync.Mutex
	Actions []models.AuditAction
	Changes []map[string]models.Change
}

func (m *MockAuditService) LogChange(ctx context.Context, action models.AuditAction, module string, recordID string, changes map[string]models.Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Actions = append(m.Actions, action)
	m.Changes = append(m.Changes, changes)
	return nil
}

func (m *MockAuditService) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]models.AuditLog, error) {
	return nil, nil
}
