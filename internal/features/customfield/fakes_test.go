package customfield

import (
	"context"
	"fmt"
	"sync"

	"pocket-crm/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryRepo behaves like the Mongo repository, including the unique
// (module, column_name) index.
type memoryRepo struct {
	mu     sync.Mutex
	fields []CustomField
}

func (r *memoryRepo) Create(ctx context.Context, field *CustomField) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.fields {
		if f.Module == field.Module && f.ColumnName == field.ColumnName {
			return fmt.Errorf("%s %s: %w", field.Module, field.ColumnName, ErrSlotTaken)
		}
	}
	r.fields = append(r.fields, *field)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id primitive.ObjectID) (*CustomField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.fields {
		if f.ID == id {
			f := f
			return &f, nil
		}
	}
	return nil, fmt.Errorf("custom field: %w", models.ErrNotFound)
}

func (r *memoryRepo) ListByModule(ctx context.Context, module models.Module) ([]CustomField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []CustomField{}
	for _, f := range r.fields {
		if f.Module == module {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, field *CustomField) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.fields {
		if r.fields[i].ID == field.ID {
			r.fields[i] = *field
			return nil
		}
	}
	return fmt.Errorf("custom field: %w", models.ErrNotFound)
}

func (r *memoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.fields {
		if r.fields[i].ID == id {
			r.fields = append(r.fields[:i], r.fields[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("custom field: %w", models.ErrNotFound)
}

func (r *memoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

// memoryRecords stands in for a module's record collection.
type memoryRecords struct {
	mu      sync.Mutex
	records []models.SlotValues
	err     error
}

func (s *memoryRecords) ClearSlot(ctx context.Context, slot models.Slot) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	var n int64
	for i := range s.records {
		if s.records[i].IsSet(slot) {
			s.records[i].Clear(slot)
			n++
		}
	}
	return n, nil
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
