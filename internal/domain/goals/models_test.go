package goals

import (
	"encoding/json"
	"testing"
)

// id, employee_id and created_at have no representation in GoalPatch, so a
// payload carrying them decodes to a patch that touches none of them.
func TestGoalPatchIgnoresProtectedFields(t *testing.T) {
	payload := `{"id": 99, "employee_id": 99, "created_at": "2020-01-01T00:00:00Z", "title": "x"}`

	var patch GoalPatch
	if err := json.Unmarshal([]byte(payload), &patch); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if patch.Title == nil || *patch.Title != "x" {
		t.Fatalf("title not decoded: %+v", patch)
	}
	if patch.Description != nil || patch.Category != nil || patch.TargetDate != nil || patch.Status != nil || patch.Progress != nil {
		t.Fatalf("unexpected fields set: %+v", patch)
	}
}

// The zero patch maps to a GoalUpdate that changes nothing.
func TestGoalPatchEmptyPayload(t *testing.T) {
	var patch GoalPatch
	if err := json.Unmarshal([]byte(`{}`), &patch); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if patch != (GoalPatch{}) {
		t.Fatalf("empty payload produced %+v", patch)
	}
}
