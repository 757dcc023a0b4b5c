package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Module names the record kinds that custom fields and follow-ups attach to.
type Module string

const (
	ModuleContact Module = "Contact"
	ModuleLead    Module = "Lead"
	ModuleDeal    Module = "Deal"
)

// Modules lists every module in display order.
func Modules() []Module {
	return []Module{ModuleContact, ModuleLead, ModuleDeal}
}

// ParseModule accepts the canonical name case-insensitively.
func ParseModule(s string) (Module, error) {
	for _, m := range Modules() {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module %q: %w", s, ErrValidation)
}

// SlotCount is the number of generic custom field slots per record.
const SlotCount = 20

const slotPrefix = "cf"

// Slot is a 1-based custom field slot index; slot 1 is stored as "cf1".
type Slot int

// AllSlots returns cf1..cf20 in allocation order.
func AllSlots() []Slot {
	slots := make([]Slot, SlotCount)
	for i := range slots {
		slots[i] = Slot(i + 1)
	}
	return slots
}

func (s Slot) Valid() bool {
	return s >= 1 && s <= SlotCount
}

// Name returns the column name ("cf1".."cf20").
func (s Slot) Name() string {
	return slotPrefix + strconv.Itoa(int(s))
}

func (s Slot) String() string {
	return s.Name()
}

// index is the position inside SlotValues and inside the stored array.
func (s Slot) index() int {
	return int(s) - 1
}

// ParseSlot resolves a column name to its slot.
func ParseSlot(name string) (Slot, error) {
	if !strings.HasPrefix(name, slotPrefix) {
		return 0, fmt.Errorf("invalid column name %q: %w", name, ErrValidation)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name, slotPrefix))
	if err != nil || !Slot(n).Valid() || Slot(n).Name() != name {
		return 0, fmt.Errorf("invalid column name %q: %w", name, ErrValidation)
	}
	return Slot(n), nil
}

// SlotValues holds the custom field values of one record, addressed by slot.
// It is stored in Mongo as a fixed 20 element array (null when unset) and
// rendered in JSON as an object of the set slots only.
type SlotValues [SlotCount]*string

func (v *SlotValues) Get(s Slot) (string, bool) {
	if !s.Valid() || v[s.index()] == nil {
		return "", false
	}
	return *v[s.index()], true
}

func (v *SlotValues) IsSet(s Slot) bool {
	return s.Valid() && v[s.index()] != nil
}

func (v *SlotValues) Set(s Slot, value string) {
	if !s.Valid() {
		return
	}
	v[s.index()] = &value
}

func (v *SlotValues) Clear(s Slot) {
	if !s.Valid() {
		return
	}
	v[s.index()] = nil
}

// Compact clears slots whose value is blank.
func (v *SlotValues) Compact() {
	for _, s := range AllSlots() {
		if value, ok := v.Get(s); ok && strings.TrimSpace(value) == "" {
			v.Clear(s)
		}
	}
}

// Used returns the slots holding a value, in slot order.
func (v *SlotValues) Used() []Slot {
	var used []Slot
	for _, s := range AllSlots() {
		if v.IsSet(s) {
			used = append(used, s)
		}
	}
	return used
}

// SlotPath is the Mongo path of a slot inside a record stored under field.
func SlotPath(field string, s Slot) string {
	return field + "." + strconv.Itoa(s.index())
}

func (v SlotValues) MarshalJSON() ([]byte, error) {
	out := make(map[string]string)
	for _, s := range v.Used() {
		out[s.Name()] = *v[s.index()]
	}
	return json.Marshal(out)
}

func (v *SlotValues) UnmarshalJSON(data []byte) error {
	var in map[string]*string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var next SlotValues
	for name, value := range in {
		s, err := ParseSlot(name)
		if err != nil {
			return err
		}
		if value != nil {
			next.Set(s, *value)
		}
	}
	*v = next
	return nil
}
