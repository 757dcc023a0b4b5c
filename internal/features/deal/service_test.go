package deal

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"testing"

	"pocket-crm/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryRepo struct {
	mu    sync.Mutex
	deals []Deal
}

func (r *memoryRepo) Create(ctx context.Context, deal *Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deals = append(r.deals, *deal)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id primitive.ObjectID) (*Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.deals {
		if d.ID == id {
			d := d
			return &d, nil
		}
	}
	return nil, fmt.Errorf("deal: %w", models.ErrNotFound)
}

func (r *memoryRepo) List(ctx context.Context, page models.Page, stage string) ([]Deal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Deal{}
	for _, d := range r.deals {
		if stage == "" || d.Stage == stage {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]Deal, error) {
	items, _, err := r.List(ctx, models.Page{}, "")
	return items, err
}

func (r *memoryRepo) Update(ctx context.Context, deal *Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.deals {
		if r.deals[i].ID == deal.ID {
			r.deals[i] = *deal
			return nil
		}
	}
	return fmt.Errorf("deal: %w", models.ErrNotFound)
}

func (r *memoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.deals {
		if r.deals[i].ID == id {
			r.deals = append(r.deals[:i], r.deals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("deal: %w", models.ErrNotFound)
}

func (r *memoryRepo) ClearSlot(ctx context.Context, slot models.Slot) (int64, error) {
	return 0, nil
}

func (r *memoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

type noSlots struct{}

func (n noSlots) WriteSlots(ctx context.Context, module models.Module, values *models.SlotValues, write func() error) error {
	if err := n.ValidateSlots(ctx, module, values); err != nil {
		return err
	}
	return write()
}

func (n noSlots) ValidateSlots(ctx context.Context, module models.Module, values *models.SlotValues) error {
	if len(values.Used()) > 0 {
		return models.Invalid("custom_fields", "no custom field is bound")
	}
	return nil
}

type MockAuditService struct {
	Actions []models.AuditAction
}

func (m *MockAuditService) LogChange(ctx context.Context, action models.AuditAction, module string, recordID string, changes map[string]models.Change) error {
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *MockAuditService) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]models.AuditLog, error) {
	return nil, nil
}

func TestDealValidate(t *testing.T) {
	tests := []struct {
		name  string
		deal  Deal
		field string
	}{
		{"ok", Deal{Title: "Q1 Deal", Amount: ptr(5000.0), Probability: ptr(60)}, ""},
		{"missing title", Deal{Amount: ptr(1.0)}, "title"},
		{"negative amount", Deal{Title: "x", Amount: ptr(-1.0)}, "amount"},
		{"nan amount", Deal{Title: "x", Amount: ptr(math.NaN())}, "amount"},
		{"probability above 100", Deal{Title: "x", Probability: ptr(101)}, "probability"},
		{"amount and probability unset", Deal{Title: "x"}, ""},
		{"zero amount", Deal{Title: "x", Amount: ptr(0.0), Probability: ptr(0)}, ""},
		{"probability below 0", Deal{Title: "x", Probability: ptr(-5)}, "probability"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.deal.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCreateDealDefaultsStage(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewDealService(repo, noSlots{}, &MockAuditService{}, zap.NewNop())

	d := &Deal{Title: "Q1 Deal", Amount: ptr(5000.0)}
	require.NoError(t, svc.CreateDeal(context.Background(), d))
	assert.Equal(t, StageProspecting, d.Stage)
	assert.Len(t, repo.deals, 1)
}

func TestUpdateDealStage(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	auditSvc := &MockAuditService{}
	svc := NewDealService(repo, noSlots{}, auditSvc, zap.NewNop())

	d := &Deal{Title: "Q1 Deal", Amount: ptr(5000.0), Stage: StageProposal}
	require.NoError(t, svc.CreateDeal(ctx, d))

	updated, err := svc.UpdateDeal(ctx, d.ID, &Deal{Title: "Q1 Deal", Amount: ptr(5000.0), Stage: StageClosedWon, Probability: ptr(100)})
	require.NoError(t, err)
	assert.Equal(t, StageClosedWon, updated.Stage)

	won, err := svc.ListDeals(ctx, models.Page{}, StageClosedWon)
	require.NoError(t, err)
	assert.Equal(t, int64(1), won.Total)
	assert.Equal(t, []models.AuditAction{models.AuditActionCreate, models.AuditActionUpdate}, auditSvc.Actions)
}

func ptr[T any](v T) *T { return &v }

func TestCreateDealLeavesOptionalValuesUnset(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewDealService(repo, noSlots{}, &MockAuditService{}, zap.NewNop())

	d := &Deal{Title: "Walk-in enquiry"}
	require.NoError(t, svc.CreateDeal(context.Background(), d))
	assert.Nil(t, d.Amount)
	assert.Nil(t, d.Probability)

	body, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "amount")
	assert.NotContains(t, string(body), "probability")
}
