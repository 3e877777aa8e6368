package collection

import (
	"github.com/google/uuid"
)

// IDKey is the reserved item attribute carrying the identity used by every
// mutation. Items are matched by id only; two items never share one.
const IDKey = "id"

// Item is one structured record of an ordered content block. Shape beyond
// the id is defined by the owning page's schema.
type Item map[string]any

// ID returns the item identity, empty when unassigned.
func (it Item) ID() string {
	id, _ := it[IDKey].(string)
	return id
}

// Clone returns a shallow copy of the item.
func (it Item) Clone() Item {
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

// NewID returns a fresh unique item identity.
func NewID() string {
	return uuid.NewString()
}

// Normalize returns a copy of items where every element carries an id.
// Declared ids are kept as-is; an element arriving without one is assigned
// a fresh id so later edits can match by identity.
func Normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		copied := item.Clone()
		if copied.ID() == "" {
			copied[IDKey] = NewID()
		}
		out = append(out, copied)
	}
	return out
}

// FindIndex returns the position of the item with the given id, or -1.
func FindIndex(items []Item, id string) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if item.ID() == id {
			return i
		}
	}
	return -1
}

// Add appends a new item built from values, assigning a fresh id. It returns
// the extended slice and the stored item.
func Add(items []Item, values Item) ([]Item, Item) {
	item := values.Clone()
	item[IDKey] = NewID()

	out := make([]Item, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, item)
	return out, item
}

// Update merges changes into the item with the given id and reports whether
// anything changed. The id attribute itself is never overwritten. A miss
// returns the input unchanged and false.
func Update(items []Item, id string, changes Item) ([]Item, bool) {
	index := FindIndex(items, id)
	if index == -1 {
		return items, false
	}

	out := make([]Item, len(items))
	copy(out, items)

	merged := out[index].Clone()
	for k, v := range changes {
		if k == IDKey {
			continue
		}
		merged[k] = v
	}
	out[index] = merged
	return out, true
}

// Delete removes the item with the given id and reports whether anything
// changed. A miss returns the input unchanged and false.
func Delete(items []Item, id string) ([]Item, bool) {
	index := FindIndex(items, id)
	if index == -1 {
		return items, false
	}

	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out, true
}

// MoveUp swaps the item with its previous neighbour. First element and
// misses are no-ops reported as unchanged.
func MoveUp(items []Item, id string) ([]Item, bool) {
	return move(items, id, -1)
}

// MoveDown swaps the item with its next neighbour. Last element and misses
// are no-ops reported as unchanged.
func MoveDown(items []Item, id string) ([]Item, bool) {
	return move(items, id, 1)
}

func move(items []Item, id string, delta int) ([]Item, bool) {
	index := FindIndex(items, id)
	if index == -1 {
		return items, false
	}
	target := index + delta
	if target < 0 || target >= len(items) {
		return items, false
	}

	out := make([]Item, len(items))
	copy(out, items)
	out[index], out[target] = out[target], out[index]
	return out, true
}

// FromAny converts a stored CMS value back into items. Non-list values and
// non-object elements yield nil; the caller falls back to its defaults.
func FromAny(value any) []Item {
	switch typed := value.(type) {
	case []Item:
		out := make([]Item, len(typed))
		copy(out, typed)
		return out
	case []any:
		out := make([]Item, 0, len(typed))
		for _, element := range typed {
			obj, ok := element.(map[string]any)
			if !ok {
				return nil
			}
			out = append(out, Item(obj))
		}
		return out
	case []map[string]any:
		out := make([]Item, 0, len(typed))
		for _, element := range typed {
			out = append(out, Item(element))
		}
		return out
	default:
		return nil
	}
}

// ToAny converts items into the JSON-friendly shape stored in the CMS map.
func ToAny(items []Item) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any(item))
	}
	return out
}
