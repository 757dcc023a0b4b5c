package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/features/contact"
	"pocket-crm/internal/features/deal"
	"pocket-crm/internal/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrLeadAlreadyConverted = fmt.Errorf("lead already converted: %w", models.ErrConflict)

// ErrLeadConvertedConcurrently is returned by an update racing a conversion.
var ErrLeadConvertedConcurrently = fmt.Errorf("lead converted during update, reload and retry: %w", models.ErrConflict)

// Conversion stages reported by ConversionError.
const (
	StageLoadLead      = "load_lead"
	StageCreateContact = "create_contact"
	StageCreateDeal    = "create_deal"
	StageMarkConverted = "mark_converted"
)

// ConvertRequest carries the deal fields collected when a lead is converted.
type ConvertRequest struct {
	// CreateContact builds a new contact from the lead's name, email and mobile.
	CreateContact bool `json:"create_contact"`
	// ContactID links an existing contact when CreateContact is false. When
	// both are unset the lead's own contact_id is used, if any.
	ContactID *primitive.ObjectID `json:"contact_id,omitempty"`

	DealTitle   string     `json:"deal_title"`
	Amount      *float64   `json:"amount,omitempty"`
	Stage       string     `json:"stage"`
	Probability *int       `json:"probability,omitempty"`
	ClosingDate *time.Time `json:"closing_date,omitempty"`
	Description string     `json:"description,omitempty"`
}

type ConversionResult struct {
	Lead    *Lead            `json:"lead"`
	Deal    *deal.Deal       `json:"deal"`
	Contact *contact.Contact `json:"contact,omitempty"`
}

// ConversionError reports the stage a conversion failed at. Anything created
// before the failure has been rolled back.
type ConversionError struct {
	LeadID primitive.ObjectID
	Stage  string
	Cause  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert lead %s: %s: %v", e.LeadID.Hex(), e.Stage, e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// ConvertLeadToDeal creates a deal (and optionally a contact) from the lead
// and marks the lead converted. The lead itself is kept.
func (s *LeadServiceImpl) ConvertLeadToDeal(ctx context.Context, id primitive.ObjectID, req ConvertRequest) (*ConversionResult, error) {
	result, err := s.convert(ctx, id, req)
	metrics.LeadConversions.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		s.Logger.Warn("lead conversion failed", zap.String("lead_id", id.Hex()), zap.Error(err))
		return nil, err
	}

	s.Logger.Info("lead converted",
		zap.String("lead_id", id.Hex()),
		zap.String("deal_id", result.Deal.ID.Hex()),
		zap.Bool("contact_created", result.Contact != nil),
	)
	return result, nil
}

func (s *LeadServiceImpl) convert(ctx context.Context, id primitive.ObjectID, req ConvertRequest) (*ConversionResult, error) {
	fail := func(stage string, cause error) error {
		return &ConversionError{LeadID: id, Stage: stage, Cause: cause}
	}

	l, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fail(StageLoadLead, err)
	}
	if l.IsConverted {
		return nil, fail(StageLoadLead, ErrLeadAlreadyConverted)
	}

	d := &deal.Deal{
		Title:       strings.TrimSpace(req.DealTitle),
		Amount:      req.Amount,
		Stage:       req.Stage,
		Probability: req.Probability,
		ClosingDate: req.ClosingDate,
		Description: req.Description,
	}
	// checked before any write
	if err := d.Validate(); err != nil {
		return nil, fail(StageCreateDeal, err)
	}

	var created *contact.Contact
	contactID := l.ContactID
	if req.CreateContact {
		created = &contact.Contact{Name: l.Name, Email: l.Email, Mobile: l.Mobile}
		if created.Mobile == "" {
			created.Mobile = l.WhatsApp
		}
		if err := s.Contacts.CreateContact(ctx, created); err != nil {
			return nil, fail(StageCreateContact, err)
		}
		contactID = &created.ID
	} else if req.ContactID != nil {
		contactID = req.ContactID
	}
	d.ContactID = contactID

	// rollback undoes the writes made so far. Its own failures are only logged.
	rollback := func(dealID *primitive.ObjectID) {
		if dealID != nil {
			if err := s.Deals.DeleteDeal(ctx, *dealID); err != nil {
				s.Logger.Error("conversion rollback: delete deal", zap.String("deal_id", dealID.Hex()), zap.Error(err))
			}
		}
		if created != nil {
			if err := s.Contacts.DeleteContact(ctx, created.ID); err != nil {
				s.Logger.Error("conversion rollback: delete contact", zap.String("contact_id", created.ID.Hex()), zap.Error(err))
			}
		}
	}

	if err := s.Deals.CreateDeal(ctx, d); err != nil {
		rollback(nil)
		return nil, fail(StageCreateDeal, err)
	}

	now := time.Now()
	if err := s.Repo.MarkConverted(ctx, l.ID, contactID, d.ID, now); err != nil {
		rollback(&d.ID)
		return nil, fail(StageMarkConverted, err)
	}

	l.IsConverted = true
	l.Status = StatusConverted
	l.ContactID = contactID
	l.ConvertedDealID = &d.ID
	l.ConvertedAt = &now
	l.UpdatedAt = now

	changes := map[string]models.Change{
		"is_converted":      {Old: false, New: true},
		"converted_deal_id": {New: d.ID.Hex()},
	}
	if created != nil {
		changes["contact_id"] = models.Change{New: created.ID.Hex()}
	}
	_ = s.AuditService.LogChange(ctx, models.AuditActionConvert, string(models.ModuleLead), l.ID.Hex(), changes)

	return &ConversionResult{Lead: l, Deal: d, Contact: created}, nil
}

// IsConversionStage reports whether err is a ConversionError at stage.
func IsConversionStage(err error, stage string) bool {
	var ce *ConversionError
	return errors.As(err, &ce) && ce.Stage == stage
}
