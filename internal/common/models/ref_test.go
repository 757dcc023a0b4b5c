package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveDispatchesOnModule(t *testing.T) {
	handlers := RefHandlers[string]{
		Contact: func(id primitive.ObjectID) (string, error) { return "contact:" + id.Hex(), nil },
		Lead:    func(id primitive.ObjectID) (string, error) { return "lead:" + id.Hex(), nil },
	}
	id := primitive.NewObjectID()

	got, err := Resolve(ContactRef(id), handlers)
	require.NoError(t, err)
	assert.Equal(t, "contact:"+id.Hex(), got)

	got, err = Resolve(LeadRef(id), handlers)
	require.NoError(t, err)
	assert.Equal(t, "lead:"+id.Hex(), got)

	_, err = Resolve(DealRef(id), handlers)
	assert.Error(t, err)

	_, err = Resolve(RecordRef{Module: "Ticket", RecordID: id}, handlers)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewRecordRef(t *testing.T) {
	id := primitive.NewObjectID()
	ref, err := NewRecordRef("deal", id.Hex())
	require.NoError(t, err)
	assert.Equal(t, DealRef(id), ref)
	assert.Equal(t, "Deal/"+id.Hex(), ref.String())

	_, err = NewRecordRef("Deal", "nope")
	assert.ErrorIs(t, err, ErrValidation)
}
