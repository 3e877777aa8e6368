package collection

import (
	"testing"
)

func seed(t *testing.T, n int) []Item {
	t.Helper()
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Item{IDKey: NewID(), "title": string(rune('a' + i))})
	}
	return items
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID())
	}
	return out
}

func TestAdd_AppendsWithFreshUniqueID(t *testing.T) {
	items := seed(t, 2)

	out, added := Add(items, Item{"title": "New Talk", "speaker": "Dr. Chen"})
	if len(out) != len(items)+1 {
		t.Fatalf("Add() len = %d, want %d", len(out), len(items)+1)
	}
	if added.ID() == "" {
		t.Fatal("Add() assigned no id")
	}
	for _, existing := range items {
		if existing.ID() == added.ID() {
			t.Fatal("Add() reused an existing id")
		}
	}
	last := out[len(out)-1]
	if last["title"] != "New Talk" || last["speaker"] != "Dr. Chen" {
		t.Fatalf("Add() stored %+v", last)
	}
	// Input slice untouched.
	if len(items) != 2 {
		t.Fatalf("Add() mutated input, len = %d", len(items))
	}
}

func TestAdd_DoesNotTrustCallerSuppliedID(t *testing.T) {
	out, added := Add(nil, Item{IDKey: "forged", "title": "x"})
	if added.ID() == "forged" {
		t.Fatal("Add() kept caller-supplied id")
	}
	if len(out) != 1 {
		t.Fatalf("Add() len = %d", len(out))
	}
}

func TestUpdate_MergesChangedFieldsOnly(t *testing.T) {
	items := seed(t, 3)
	target := items[1].ID()

	out, changed := Update(items, target, Item{"title": "updated", "location": "Hall B"})
	if !changed {
		t.Fatal("Update() reported no change")
	}
	if out[1]["title"] != "updated" || out[1]["location"] != "Hall B" {
		t.Fatalf("Update() item = %+v", out[1])
	}
	if out[1].ID() != target {
		t.Fatal("Update() changed the id")
	}
	if items[1]["title"] == "updated" {
		t.Fatal("Update() mutated the input slice")
	}
}

func TestUpdate_MissIsNoOp(t *testing.T) {
	items := seed(t, 2)
	out, changed := Update(items, "absent", Item{"title": "x"})
	if changed {
		t.Fatal("Update() miss reported a change")
	}
	if len(out) != 2 || out[0]["title"] != items[0]["title"] {
		t.Fatalf("Update() miss altered items: %+v", out)
	}
}

func TestDelete_RemovesByID(t *testing.T) {
	items := seed(t, 3)
	victim := items[1].ID()

	out, changed := Delete(items, victim)
	if !changed {
		t.Fatal("Delete() reported no change")
	}
	if len(out) != 2 {
		t.Fatalf("Delete() len = %d", len(out))
	}
	if FindIndex(out, victim) != -1 {
		t.Fatal("Delete() left the item behind")
	}
}

func TestDelete_MissLeavesArrayUnchanged(t *testing.T) {
	items := seed(t, 3)
	out, changed := Delete(items, "not-there")
	if changed {
		t.Fatal("Delete() miss reported a change")
	}
	if len(out) != 3 {
		t.Fatalf("Delete() miss len = %d", len(out))
	}
}

func TestMove_SwapsNeighbours(t *testing.T) {
	items := seed(t, 3)
	first, second, third := items[0].ID(), items[1].ID(), items[2].ID()

	out, changed := MoveDown(items, first)
	if !changed {
		t.Fatal("MoveDown() reported no change")
	}
	if got := ids(out); got[0] != second || got[1] != first || got[2] != third {
		t.Fatalf("MoveDown() order = %v", got)
	}

	out, _ = MoveUp(out, first)
	if got := ids(out); got[0] != first || got[1] != second {
		t.Fatalf("MoveUp() order = %v", got)
	}
}

func TestMove_BoundariesAreNoOps(t *testing.T) {
	items := seed(t, 3)
	before := ids(items)

	out, changed := MoveUp(items, items[0].ID())
	if changed || ids(out)[0] != before[0] {
		t.Fatalf("MoveUp(first) changed = %t, order = %v", changed, ids(out))
	}
	out, changed = MoveDown(items, items[2].ID())
	if changed || ids(out)[2] != before[2] {
		t.Fatalf("MoveDown(last) changed = %t, order = %v", changed, ids(out))
	}
	out, changed = MoveUp(items, "missing")
	if changed || len(out) != 3 {
		t.Fatalf("MoveUp(miss) changed = %t, len = %d", changed, len(out))
	}
}

func TestNormalize_AssignsMissingIDs(t *testing.T) {
	defaults := []Item{
		{"title": "Seminar"},
		{IDKey: "fixed", "title": "Colloquium"},
	}

	out := Normalize(defaults)
	if out[0].ID() == "" {
		t.Fatal("Normalize() left an item without id")
	}
	if out[1].ID() != "fixed" {
		t.Fatalf("Normalize() replaced existing id: %q", out[1].ID())
	}
	if _, ok := defaults[0][IDKey]; ok {
		t.Fatal("Normalize() mutated defaults")
	}
}

func TestFromAny_RoundTripAndRejection(t *testing.T) {
	items := seed(t, 2)

	back := FromAny(ToAny(items))
	if len(back) != 2 || back[0].ID() != items[0].ID() {
		t.Fatalf("FromAny(ToAny()) = %+v", back)
	}

	if got := FromAny("not a list"); got != nil {
		t.Fatalf("FromAny(string) = %v", got)
	}
	if got := FromAny([]any{"scalar"}); got != nil {
		t.Fatalf("FromAny(mixed) = %v", got)
	}
}

func TestSchemaValidate(t *testing.T) {
	valid := Schema{
		{Key: "title", Label: "Title", Type: FieldText},
		{Key: "category", Label: "Category", Type: FieldSelect, Options: []string{"Award", "Press"}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	missingOptions := Schema{{Key: "category", Label: "Category", Type: FieldSelect}}
	if err := missingOptions.Validate(); err == nil {
		t.Fatal("Validate() accepted select without options")
	}

	badType := Schema{{Key: "x", Label: "X", Type: "checkbox"}}
	if err := badType.Validate(); err == nil {
		t.Fatal("Validate() accepted unknown field type")
	}
}
