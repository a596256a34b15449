package usecase

import (
	"reflect"
	"testing"
)

func TestMatrixToggleInvolution(t *testing.T) {
	initial := []string{"10", "11", "12"}
	m := NewMatrix(initial)

	for _, id := range []string{"10", "99"} {
		m.Toggle(id)
		m.Toggle(id)
	}

	if got := m.IDs(); !reflect.DeepEqual(got, []string{"10", "11", "12"}) {
		t.Fatalf("expected original membership after double toggle, got %v", got)
	}
}

func TestMatrixToggleFlipsMembership(t *testing.T) {
	m := NewMatrix([]string{"10", "11"})

	m.Toggle("10")
	if m.Has("10") {
		t.Fatal("expected 10 removed")
	}
	m.Toggle("12")
	if !m.Has("12") {
		t.Fatal("expected 12 added")
	}

	if got := m.IDs(); !reflect.DeepEqual(got, []string{"11", "12"}) {
		t.Fatalf("unexpected membership: %v", got)
	}
}

func TestMatrixPruneDropsStaleIDs(t *testing.T) {
	m := NewMatrix([]string{"1", "2", "3"})

	m.Prune([]string{"1", "3", "4"})

	if got := m.IDs(); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Fatalf("expected stale id pruned, got %v", got)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", m.Len())
	}
}

func TestMatrixIDsSorted(t *testing.T) {
	m := NewMatrix([]string{"b", "a", "c"})
	if got := m.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected sorted ids, got %v", got)
	}
}
