package customfield

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pocket-crm/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	repo    *memoryRepo
	records map[models.Module]*memoryRecords
	audit   *MockAuditService
	service CustomFieldService
}

func newFixture() *fixture {
	f := &fixture{
		repo:    &memoryRepo{},
		records: make(map[models.Module]*memoryRecords),
		audit:   &MockAuditService{},
	}
	stores := SlotStores{}
	for _, m := range models.Modules() {
		f.records[m] = &memoryRecords{}
		stores[m] = f.records[m]
	}
	f.service = NewCustomFieldService(f.repo, stores, f.audit, zap.NewNop())
	return f
}

func (f *fixture) create(t *testing.T, module models.Module, name string) *CustomField {
	t.Helper()
	field := &CustomField{Module: module, FieldName: name, FieldType: FieldTypeText}
	require.NoError(t, f.service.CreateCustomField(context.Background(), field))
	return field
}

func TestGetNextAvailableColumnName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	col, err := f.service.GetNextAvailableColumnName(ctx, models.ModuleLead)
	require.NoError(t, err)
	assert.Equal(t, "cf1", col)

	first := f.create(t, models.ModuleLead, "Budget")
	f.create(t, models.ModuleLead, "Region")
	assert.Equal(t, "cf1", first.ColumnName)

	col, err = f.service.GetNextAvailableColumnName(ctx, models.ModuleLead)
	require.NoError(t, err)
	assert.Equal(t, "cf3", col)

	// other modules allocate independently
	col, err = f.service.GetNextAvailableColumnName(ctx, models.ModuleDeal)
	require.NoError(t, err)
	assert.Equal(t, "cf1", col)

	// a freed slot is reused first-fit
	_, err = f.service.DeleteCustomField(ctx, first.ID)
	require.NoError(t, err)
	col, err = f.service.GetNextAvailableColumnName(ctx, models.ModuleLead)
	require.NoError(t, err)
	assert.Equal(t, "cf1", col)
}

func TestCapacityExceededAfterTwentyFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	seen := make(map[string]bool)
	for i := 1; i <= models.SlotCount; i++ {
		field := f.create(t, models.ModuleLead, fmt.Sprintf("Field %d", i))
		assert.Equal(t, fmt.Sprintf("cf%d", i), field.ColumnName)
		seen[field.ColumnName] = true
	}
	assert.Len(t, seen, models.SlotCount)

	_, err := f.service.GetNextAvailableColumnName(ctx, models.ModuleLead)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.ErrorIs(t, err, models.ErrConflict)

	err = f.service.CreateCustomField(ctx, &CustomField{Module: models.ModuleLead, FieldName: "One more", FieldType: FieldTypeText})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestConcurrentCreateNeverSharesASlot(t *testing.T) {
	f := newFixture()

	const callers = 30
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- f.service.CreateCustomField(context.Background(), &CustomField{
				Module:    models.ModuleContact,
				FieldName: fmt.Sprintf("Field %d", i),
				FieldType: FieldTypeText,
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, full int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrCapacityExceeded):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, models.SlotCount, ok)
	assert.Equal(t, callers-models.SlotCount, full)

	fields, err := f.repo.ListByModule(context.Background(), models.ModuleContact)
	require.NoError(t, err)
	columns := make(map[string]bool)
	for _, field := range fields {
		assert.False(t, columns[field.ColumnName], "slot %s bound twice", field.ColumnName)
		columns[field.ColumnName] = true
	}
}

func TestCleanupCustomFieldData(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	keep := f.create(t, models.ModuleDeal, "Budget")
	drop := f.create(t, models.ModuleDeal, "Competitor")
	keepSlot, _ := keep.Slot()
	dropSlot, _ := drop.Slot()

	for i := 0; i < 5; i++ {
		var v models.SlotValues
		v.Set(keepSlot, "100")
		if i%2 == 0 {
			v.Set(dropSlot, "Acme")
		}
		f.records[models.ModuleDeal].records = append(f.records[models.ModuleDeal].records, v)
	}

	cleaned, err := f.service.CleanupCustomFieldData(ctx, drop)
	require.NoError(t, err)
	assert.EqualValues(t, 3, cleaned)

	for _, v := range f.records[models.ModuleDeal].records {
		assert.False(t, v.IsSet(dropSlot))
		assert.True(t, v.IsSet(keepSlot))
	}

	fields, err := f.service.ListCustomFields(ctx, models.ModuleDeal)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, keep.ID, fields[0].ID)
	assert.Contains(t, f.audit.Actions, models.AuditActionCleanup)
}

func TestCleanupReportsSweepFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	field := f.create(t, models.ModuleContact, "Birthday")
	f.records[models.ModuleContact].err = errors.New("write conflict")

	_, err := f.service.CleanupCustomFieldData(ctx, field)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cf1")
}

func TestCreateCustomFieldValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		field CustomField
		want  error
	}{
		{"missing name", CustomField{Module: models.ModuleLead, FieldType: FieldTypeText}, models.ErrValidation},
		{"bad module", CustomField{Module: "Ticket", FieldName: "x", FieldType: FieldTypeText}, models.ErrValidation},
		{"bad type", CustomField{Module: models.ModuleLead, FieldName: "x", FieldType: "DATE"}, models.ErrValidation},
		{"dropdown without options", CustomField{Module: models.ModuleLead, FieldName: "x", FieldType: FieldTypeDropdown}, models.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			field := tt.field
			assert.ErrorIs(t, f.service.CreateCustomField(ctx, &field), tt.want)
		})
	}

	t.Run("duplicate name", func(t *testing.T) {
		f := newFixture()
		f.create(t, models.ModuleLead, "Budget")
		err := f.service.CreateCustomField(ctx, &CustomField{Module: models.ModuleLead, FieldName: "budget", FieldType: FieldTypeText})
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("lower case type and module", func(t *testing.T) {
		f := newFixture()
		field := &CustomField{Module: "lead", FieldName: "Size", FieldType: "number"}
		require.NoError(t, f.service.CreateCustomField(ctx, field))
		assert.Equal(t, models.ModuleLead, field.Module)
		assert.Equal(t, FieldTypeNumber, field.FieldType)
	})
}

func TestValidateSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.create(t, models.ModuleLead, "Notes")
	require.NoError(t, f.service.CreateCustomField(ctx, &CustomField{Module: models.ModuleLead, FieldName: "Seats", FieldType: FieldTypeNumber}))
	require.NoError(t, f.service.CreateCustomField(ctx, &CustomField{Module: models.ModuleLead, FieldName: "Tier", FieldType: FieldTypeDropdown, Options: []string{"Gold", "Silver"}}))

	valid := models.SlotValues{}
	valid.Set(1, "anything")
	valid.Set(2, " 12.5 ")
	valid.Set(3, "Gold")
	valid.Set(4, "   ")
	assert.NoError(t, f.service.ValidateSlots(ctx, models.ModuleLead, &valid))
	assert.False(t, valid.IsSet(4), "blank values are cleared")

	bad := models.SlotValues{}
	bad.Set(2, "twelve")
	bad.Set(3, "Bronze")
	bad.Set(9, "unbound")
	err := f.service.ValidateSlots(ctx, models.ModuleLead, &bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "Seats")
	assert.Contains(t, err.Error(), "Tier")
	assert.Contains(t, err.Error(), "cf9")
}

func TestUpdateCustomFieldKeepsSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	field := f.create(t, models.ModuleContact, "Hobby")

	updated, err := f.service.UpdateCustomField(ctx, field.ID, &CustomField{FieldName: "Interests", ColumnName: "cf9", FieldType: FieldTypeNumber})
	require.NoError(t, err)
	assert.Equal(t, "Interests", updated.FieldName)
	assert.Equal(t, "cf1", updated.ColumnName)
	assert.Equal(t, FieldTypeText, updated.FieldType)
}

func TestLabels(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	budget := f.create(t, models.ModuleDeal, "Budget")
	f.create(t, models.ModuleDeal, "Region")
	_, err := f.service.DeleteCustomField(ctx, budget.ID)
	require.NoError(t, err)

	labels, err := f.service.Labels(ctx, models.ModuleDeal)
	require.NoError(t, err)
	assert.Equal(t, map[models.Slot]string{2: "Region"}, labels)
}

func TestWriteSlotsHoldsOffCleanup(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	field := f.create(t, models.ModuleContact, "Tier")
	records := f.records[models.ModuleContact]

	var values models.SlotValues
	values.Set(1, "Gold")

	entered := make(chan struct{})
	release := make(chan struct{})
	written := make(chan error, 1)
	go func() {
		written <- f.service.WriteSlots(ctx, models.ModuleContact, &values, func() error {
			close(entered)
			<-release
			records.mu.Lock()
			records.records = append(records.records, values)
			records.mu.Unlock()
			return nil
		})
	}()
	<-entered

	type deleted struct {
		cleaned int64
		err     error
	}
	done := make(chan deleted, 1)
	go func() {
		n, err := f.service.DeleteCustomField(ctx, field.ID)
		done <- deleted{n, err}
	}()

	select {
	case <-done:
		t.Fatal("cleanup ran while a record write was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-written)
	result := <-done
	require.NoError(t, result.err)
	assert.Equal(t, int64(1), result.cleaned)
	assert.False(t, records.records[0].IsSet(1))

	// the slot is unbound now, so the same write is rejected up front
	err := f.service.WriteSlots(ctx, models.ModuleContact, &values, func() error {
		t.Fatal("write ran with an unbound slot")
		return nil
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestWriteSlotsUnknownModule(t *testing.T) {
	f := newFixture()
	err := f.service.WriteSlots(context.Background(), models.Module("Ticket"), &models.SlotValues{}, func() error { return nil })
	assert.ErrorIs(t, err, models.ErrValidation)
}
