package store

import (
	"testing"
)

func TestSelectionBasics(t *testing.T) {
	sel := NewSelection()

	sel.Select("b")
	sel.Select("a")
	sel.Select("a") // selecting twice is a no-op

	if sel.Count() != 2 {
		t.Errorf("Count = %d, want 2", sel.Count())
	}

	ids := sel.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs = %v, want sorted [a b]", ids)
	}

	sel.Deselect("a")
	if sel.Count() != 1 {
		t.Errorf("Count = %d after deselect", sel.Count())
	}

	sel.Deselect("ghost") // deselecting an unknown id is fine
	if sel.Count() != 1 {
		t.Errorf("Count = %d", sel.Count())
	}
}

func TestSelectionRemove(t *testing.T) {
	sel := NewSelection()
	sel.Select("a")
	sel.Select("b")
	sel.Select("c")

	sel.Remove("a", "c", "ghost")
	ids := sel.IDs()
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("IDs = %v, want [b]", ids)
	}
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelection()
	sel.Select("a")
	sel.Select("b")

	sel.Clear()
	if sel.Count() != 0 {
		t.Errorf("Count = %d after clear", sel.Count())
	}
	if len(sel.IDs()) != 0 {
		t.Errorf("IDs = %v after clear", sel.IDs())
	}
}
