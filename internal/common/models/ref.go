package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordRef points at a Contact, Lead or Deal. Build one with ContactRef,
// LeadRef or DealRef so the module and the id always travel together.
type RecordRef struct {
	Module   Module             `json:"module" bson:"module"`
	RecordID primitive.ObjectID `json:"record_id" bson:"record_id"`
}

func ContactRef(id primitive.ObjectID) RecordRef {
	return RecordRef{Module: ModuleContact, RecordID: id}
}

func LeadRef(id primitive.ObjectID) RecordRef {
	return RecordRef{Module: ModuleLead, RecordID: id}
}

func DealRef(id primitive.ObjectID) RecordRef {
	return RecordRef{Module: ModuleDeal, RecordID: id}
}

// NewRecordRef builds a reference from wire values.
func NewRecordRef(module, id string) (RecordRef, error) {
	m, err := ParseModule(module)
	if err != nil {
		return RecordRef{}, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return RecordRef{}, fmt.Errorf("invalid record id %q: %w", id, ErrValidation)
	}
	return RecordRef{Module: m, RecordID: oid}, nil
}

func (r RecordRef) String() string {
	return string(r.Module) + "/" + r.RecordID.Hex()
}

// RefHandlers receives the id of the referenced record, one handler per kind.
type RefHandlers[T any] struct {
	Contact func(id primitive.ObjectID) (T, error)
	Lead    func(id primitive.ObjectID) (T, error)
	Deal    func(id primitive.ObjectID) (T, error)
}

// Resolve dispatches the reference to the handler for its module.
func Resolve[T any](r RecordRef, h RefHandlers[T]) (T, error) {
	var zero T
	var fn func(primitive.ObjectID) (T, error)
	switch r.Module {
	case ModuleContact:
		fn = h.Contact
	case ModuleLead:
		fn = h.Lead
	case ModuleDeal:
		fn = h.Deal
	default:
		return zero, fmt.Errorf("unknown module %q: %w", r.Module, ErrValidation)
	}
	if fn == nil {
		return zero, fmt.Errorf("no handler for module %s", r.Module)
	}
	return fn(r.RecordID)
}
