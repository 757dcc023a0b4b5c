package customfield

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/audit"
	"pocket-crm/internal/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrCapacityExceeded = fmt.Errorf("all %d custom field slots are in use: %w", models.SlotCount, models.ErrConflict)
	ErrSlotTaken        = fmt.Errorf("custom field slot already bound: %w", models.ErrConflict)
)

// SlotStore is implemented by the record repositories of each module.
type SlotStore interface {
	// ClearSlot nulls slot on every record holding a value there.
	ClearSlot(ctx context.Context, slot models.Slot) (int64, error)
}

// SlotStores maps each module to the store holding its records.
type SlotStores map[models.Module]SlotStore

type CustomFieldService interface {
	GetNextAvailableColumnName(ctx context.Context, module models.Module) (string, error)
	CreateCustomField(ctx context.Context, field *CustomField) error
	GetCustomField(ctx context.Context, id primitive.ObjectID) (*CustomField, error)
	ListCustomFields(ctx context.Context, module models.Module) ([]CustomField, error)
	UpdateCustomField(ctx context.Context, id primitive.ObjectID, update *CustomField) (*CustomField, error)
	DeleteCustomField(ctx context.Context, id primitive.ObjectID) (int64, error)
	CleanupCustomFieldData(ctx context.Context, field *CustomField) (int64, error)
	ValidateSlots(ctx context.Context, module models.Module, values *models.SlotValues) error
	WriteSlots(ctx context.Context, module models.Module, values *models.SlotValues, write func() error) error
	FieldsBySlot(ctx context.Context, module models.Module) ([]CustomField, error)
	Labels(ctx context.Context, module models.Module) (map[models.Slot]string, error)
}

type CustomFieldServiceImpl struct {
	Repo         CustomFieldRepository
	Stores       SlotStores
	AuditService audit.AuditService
	Logger       *zap.Logger

	// allocation and cleanup of one module hold the write lock; record
	// writes carrying slot values hold the read lock
	locks map[models.Module]*sync.RWMutex
}

func NewCustomFieldService(repo CustomFieldRepository, stores SlotStores, auditService audit.AuditService, logger *zap.Logger) CustomFieldService {
	locks := make(map[models.Module]*sync.RWMutex)
	for _, m := range models.Modules() {
		locks[m] = &sync.RWMutex{}
	}
	return &CustomFieldServiceImpl{
		Repo:         repo,
		Stores:       stores,
		AuditService: auditService,
		Logger:       logger,
		locks:        locks,
	}
}

func (s *CustomFieldServiceImpl) lock(module models.Module) func() {
	mu := s.locks[module]
	mu.Lock()
	return mu.Unlock
}

// GetNextAvailableColumnName returns the first slot of module, in cf1..cf20
// order, not bound to a live field.
func (s *CustomFieldServiceImpl) GetNextAvailableColumnName(ctx context.Context, module models.Module) (string, error) {
	if _, err := models.ParseModule(string(module)); err != nil {
		return "", err
	}
	fields, err := s.Repo.ListByModule(ctx, module)
	if err != nil {
		return "", err
	}

	used := make(map[string]bool, len(fields))
	for _, f := range fields {
		used[f.ColumnName] = true
	}
	for _, slot := range models.AllSlots() {
		if !used[slot.Name()] {
			return slot.Name(), nil
		}
	}
	return "", fmt.Errorf("%s: %w", module, ErrCapacityExceeded)
}

func (s *CustomFieldServiceImpl) CreateCustomField(ctx context.Context, field *CustomField) error {
	module, err := models.ParseModule(string(field.Module))
	if err != nil {
		return models.Invalid("module", "must be one of Contact, Lead, Deal")
	}
	field.Module = module
	if err := s.validateDefinition(field); err != nil {
		return err
	}

	defer s.lock(module)()

	existing, err := s.Repo.ListByModule(ctx, module)
	if err != nil {
		return err
	}
	for _, f := range existing {
		if strings.EqualFold(f.FieldName, field.FieldName) {
			return fmt.Errorf("field %q already exists on %s: %w", field.FieldName, module, models.ErrConflict)
		}
	}

	column, err := s.GetNextAvailableColumnName(ctx, module)
	if err != nil {
		return err
	}

	now := time.Now()
	field.ID = primitive.NewObjectID()
	field.ColumnName = column
	field.CreatedAt = now
	field.UpdatedAt = now

	if err := s.Repo.Create(ctx, field); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, "custom_field", field.ID.Hex(), map[string]models.Change{
		"module":      {New: field.Module},
		"field_name":  {New: field.FieldName},
		"column_name": {New: field.ColumnName},
	})
	s.Logger.Info("custom field created",
		zap.String("module", string(module)),
		zap.String("field", field.FieldName),
		zap.String("column", column),
	)
	return nil
}

func (s *CustomFieldServiceImpl) validateDefinition(field *CustomField) error {
	field.FieldName = strings.TrimSpace(field.FieldName)
	if field.FieldName == "" {
		return models.Invalid("field_name", "is required")
	}
	field.FieldType = FieldType(strings.ToUpper(string(field.FieldType)))
	if !field.FieldType.Valid() {
		return models.Invalid("field_type", "must be TEXT, NUMBER or DROPDOWN")
	}
	if field.FieldType == FieldTypeDropdown {
		field.Options = cleanOptions(field.Options)
		if len(field.Options) == 0 {
			return models.Invalid("options", "dropdown fields need at least one option")
		}
	} else {
		field.Options = nil
	}
	return nil
}

func (s *CustomFieldServiceImpl) GetCustomField(ctx context.Context, id primitive.ObjectID) (*CustomField, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomFieldServiceImpl) ListCustomFields(ctx context.Context, module models.Module) ([]CustomField, error) {
	return s.Repo.ListByModule(ctx, module)
}

// UpdateCustomField renames a field or replaces its dropdown options. The
// module, type and slot binding never change.
func (s *CustomFieldServiceImpl) UpdateCustomField(ctx context.Context, id primitive.ObjectID, update *CustomField) (*CustomField, error) {
	field, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *field
	if update.FieldName != "" {
		next.FieldName = update.FieldName
	}
	if update.Options != nil {
		next.Options = update.Options
	}
	if err := s.validateDefinition(&next); err != nil {
		return nil, err
	}

	if !strings.EqualFold(next.FieldName, field.FieldName) {
		siblings, err := s.Repo.ListByModule(ctx, field.Module)
		if err != nil {
			return nil, err
		}
		for _, f := range siblings {
			if f.ID != field.ID && strings.EqualFold(f.FieldName, next.FieldName) {
				return nil, fmt.Errorf("field %q already exists on %s: %w", next.FieldName, field.Module, models.ErrConflict)
			}
		}
	}

	next.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, &next); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, "custom_field", id.Hex(), map[string]models.Change{
		"field_name": {Old: field.FieldName, New: next.FieldName},
		"options":    {Old: field.Options, New: next.Options},
	})
	return &next, nil
}

func (s *CustomFieldServiceImpl) DeleteCustomField(ctx context.Context, id primitive.ObjectID) (int64, error) {
	field, err := s.Repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.CleanupCustomFieldData(ctx, field)
}

// CleanupCustomFieldData deletes the definition, then nulls its slot on every
// record of the owning module. It returns the number of records cleaned.
func (s *CustomFieldServiceImpl) CleanupCustomFieldData(ctx context.Context, field *CustomField) (int64, error) {
	slot, err := field.Slot()
	if err != nil {
		return 0, err
	}
	store, ok := s.Stores[field.Module]
	if !ok {
		return 0, fmt.Errorf("no record store for module %q", field.Module)
	}

	// the freed slot must not be re-bound before the sweep finishes
	defer s.lock(field.Module)()

	if err := s.Repo.Delete(ctx, field.ID); err != nil {
		return 0, err
	}

	cleaned, err := store.ClearSlot(ctx, slot)
	if err != nil {
		s.Logger.Error("custom field sweep failed",
			zap.String("module", string(field.Module)),
			zap.String("column", field.ColumnName),
			zap.Error(err),
		)
		return cleaned, fmt.Errorf("clear %s on %s records: %w", field.ColumnName, field.Module, err)
	}

	metrics.CustomFieldCleanups.WithLabelValues(string(field.Module)).Inc()
	metrics.CustomFieldSlotsCleared.WithLabelValues(string(field.Module)).Add(float64(cleaned))

	_ = s.AuditService.LogChange(ctx, models.AuditActionCleanup, "custom_field", field.ID.Hex(), map[string]models.Change{
		"column_name":     {Old: field.ColumnName},
		"records_cleaned": {New: cleaned},
	})
	s.Logger.Info("custom field deleted",
		zap.String("module", string(field.Module)),
		zap.String("field", field.FieldName),
		zap.String("column", field.ColumnName),
		zap.Int64("records_cleaned", cleaned),
	)
	return cleaned, nil
}

// ValidateSlots checks the values a record is about to be saved with.
func (s *CustomFieldServiceImpl) ValidateSlots(ctx context.Context, module models.Module, values *models.SlotValues) error {
	values.Compact()
	used := values.Used()
	if len(used) == 0 {
		return nil
	}

	fields, err := s.Repo.ListByModule(ctx, module)
	if err != nil {
		return err
	}
	bound := make(map[string]CustomField, len(fields))
	for _, f := range fields {
		bound[f.ColumnName] = f
	}

	var errs []error
	for _, slot := range used {
		value, _ := values.Get(slot)
		f, ok := bound[slot.Name()]
		if !ok {
			errs = append(errs, models.Invalid(slot.Name(), "no custom field is bound to this slot"))
			continue
		}
		switch f.FieldType {
		case FieldTypeNumber:
			if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
				errs = append(errs, models.Invalid(f.FieldName, "must be a number"))
			}
		case FieldTypeDropdown:
			if !f.HasOption(value) {
				errs = append(errs, models.Invalid(f.FieldName, fmt.Sprintf("must be one of %s", strings.Join(f.Options, ", "))))
			}
		}
	}
	return errors.Join(errs...)
}

// WriteSlots validates values and runs write while holding the read side of
// the module lock, so no field of module is created or swept in between.
func (s *CustomFieldServiceImpl) WriteSlots(ctx context.Context, module models.Module, values *models.SlotValues, write func() error) error {
	mu, ok := s.locks[module]
	if !ok {
		return fmt.Errorf("unknown module %q: %w", module, models.ErrValidation)
	}
	mu.RLock()
	defer mu.RUnlock()

	if err := s.ValidateSlots(ctx, module, values); err != nil {
		return err
	}
	return write()
}

// FieldsBySlot returns the live fields of module ordered by slot.
func (s *CustomFieldServiceImpl) FieldsBySlot(ctx context.Context, module models.Module) ([]CustomField, error) {
	fields, err := s.Repo.ListByModule(ctx, module)
	if err != nil {
		return nil, err
	}
	sort.Slice(fields, func(i, j int) bool {
		a, _ := fields[i].Slot()
		b, _ := fields[j].Slot()
		return a < b
	})
	return fields, nil
}

// Labels maps each bound slot of module to its field name.
func (s *CustomFieldServiceImpl) Labels(ctx context.Context, module models.Module) (map[models.Slot]string, error) {
	fields, err := s.Repo.ListByModule(ctx, module)
	if err != nil {
		return nil, err
	}
	labels := make(map[models.Slot]string, len(fields))
	for _, f := range fields {
		if slot, err := f.Slot(); err == nil {
			labels[slot] = f.FieldName
		}
	}
	return labels, nil
}
