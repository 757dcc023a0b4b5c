package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseSlot(t *testing.T) {
	for _, s := range AllSlots() {
		got, err := ParseSlot(s.Name())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, bad := range []string{"", "cf0", "cf21", "cf01", "CF1", "col1", "cf-1", "cfx"} {
		_, err := ParseSlot(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
	assert.Equal(t, "cf1", AllSlots()[0].Name())
	assert.Equal(t, "cf20", AllSlots()[SlotCount-1].Name())
}

func TestSlotValuesAccessors(t *testing.T) {
	var v SlotValues
	v.Set(3, "red")
	v.Set(20, "last")
	v.Set(21, "ignored")

	got, ok := v.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "red", got)
	_, ok = v.Get(4)
	assert.False(t, ok)
	assert.Equal(t, []Slot{3, 20}, v.Used())

	v.Clear(3)
	assert.False(t, v.IsSet(3))
	assert.Equal(t, "custom_fields.19", SlotPath("custom_fields", 20))
}

func TestSlotValuesJSON(t *testing.T) {
	var v SlotValues
	v.Set(2, "x")
	v.Set(7, "")

	data, err := json.Marshal(struct {
		Slots SlotValues `json:"custom_fields"`
	}{v})
	require.NoError(t, err)
	assert.JSONEq(t, `{"custom_fields":{"cf2":"x","cf7":""}}`, string(data))

	var back SlotValues
	require.NoError(t, json.Unmarshal([]byte(`{"cf5":"five","cf6":null}`), &back))
	assert.Equal(t, []Slot{5}, back.Used())

	assert.Error(t, json.Unmarshal([]byte(`{"cf99":"x"}`), &back))
}

func TestSlotValuesBSONIsFixedArray(t *testing.T) {
	type doc struct {
		Slots SlotValues `bson:"custom_fields"`
	}
	var v SlotValues
	v.Set(1, "a")
	v.Set(20, "z")

	raw, err := bson.Marshal(doc{Slots: v})
	require.NoError(t, err)

	arr, ok := bson.Raw(raw).Lookup("custom_fields").ArrayOK()
	require.True(t, ok)
	values, err := arr.Values()
	require.NoError(t, err)
	assert.Len(t, values, SlotCount)
	assert.Equal(t, bson.TypeNull, values[1].Type)

	var back doc
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, v, back.Slots)
}

func TestParseModule(t *testing.T) {
	m, err := ParseModule(" lead ")
	require.NoError(t, err)
	assert.Equal(t, ModuleLead, m)
	_, err = ParseModule("Ticket")
	assert.ErrorIs(t, err, ErrValidation)
}
