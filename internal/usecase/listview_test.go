package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

func permissionFields(p domain.Permission) (string, string) {
	if p.Description != nil {
		return p.Name, *p.Description
	}
	return p.Name, ""
}

func strptr(s string) *string { return &s }

func TestListViewApplyReplacesItems(t *testing.T) {
	v := NewListView("permissions", permissionFields)
	if v.State() != ListStateLoading {
		t.Fatalf("expected loading before first apply, got %v", v.State())
	}

	gen := v.Begin()
	if err := v.Apply(gen, []domain.Permission{{ID: "1", Name: "plants:read"}}, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if v.State() != ListStateReady {
		t.Fatalf("expected ready, got %v", v.State())
	}
	if len(v.Items()) != 1 {
		t.Fatalf("expected 1 item, got %d", len(v.Items()))
	}
}

func TestListViewFailedReloadKeepsPreviousItems(t *testing.T) {
	v := NewListView("permissions", permissionFields)
	if err := v.Apply(v.Begin(), []domain.Permission{{ID: "1", Name: "plants:read"}}, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := v.Apply(v.Begin(), nil, errors.New("gateway timeout"))

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Resource != "permissions" {
		t.Fatalf("unexpected resource %q", loadErr.Resource)
	}
	if len(v.Items()) != 1 {
		t.Fatal("failed reload must not blank the previous list")
	}
	if v.State() != ListStateStale {
		t.Fatalf("expected stale state, got %v", v.State())
	}
}

func TestListViewDiscardsSupersededGeneration(t *testing.T) {
	v := NewListView("permissions", permissionFields)

	stale := v.Begin()
	current := v.Begin()

	if err := v.Apply(current, []domain.Permission{{ID: "2", Name: "plants:move"}}, nil); err != nil {
		t.Fatalf("apply current: %v", err)
	}
	// Late response from the superseded load must be dropped whole.
	if err := v.Apply(stale, []domain.Permission{{ID: "1", Name: "old"}}, nil); err != nil {
		t.Fatalf("apply stale: %v", err)
	}

	items := v.Items()
	if len(items) != 1 || items[0].ID != "2" {
		t.Fatalf("expected late response discarded, got %v", items)
	}
}

func TestListViewEmptyState(t *testing.T) {
	v := NewListView("permissions", permissionFields)
	if err := v.Apply(v.Begin(), nil, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if v.State() != ListStateEmpty {
		t.Fatalf("expected empty state, got %v", v.State())
	}
}

func TestListViewFilter(t *testing.T) {
	v := NewListView("permissions", permissionFields)
	items := []domain.Permission{
		{ID: "1", Name: "Plants.Read", Description: strptr("view plant batches")},
		{ID: "2", Name: "harvest:close", Description: strptr("close a harvest")},
		{ID: "3", Name: "users:manage"},
	}
	if err := v.Apply(v.Begin(), items, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := v.Filter(""); len(got) != 3 {
		t.Fatalf("empty query must return the full list, got %d items", len(got))
	}

	got := v.Filter("PLANT")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, p := range got {
		name, description := permissionFields(p)
		haystack := strings.ToLower(name + " " + description)
		if !strings.Contains(haystack, "plant") {
			t.Fatalf("item %q does not match query", name)
		}
	}

	// Description-only match.
	if got := v.Filter("harvest"); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected description match for harvest, got %v", got)
	}
	if got := v.Filter("nomatch"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestListViewPatchAndRemove(t *testing.T) {
	v := NewListView("permissions", permissionFields)
	if err := v.Apply(v.Begin(), []domain.Permission{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	v.Patch(domain.Permission{ID: "2", Name: "renamed"}, func(p domain.Permission) bool { return p.ID == "2" })
	if v.Items()[1].Name != "renamed" {
		t.Fatalf("expected in-place patch, got %v", v.Items())
	}

	v.Patch(domain.Permission{ID: "3", Name: "c"}, func(p domain.Permission) bool { return p.ID == "3" })
	if len(v.Items()) != 3 {
		t.Fatalf("expected append for unknown id, got %v", v.Items())
	}

	v.Remove(func(p domain.Permission) bool { return p.ID == "1" })
	if len(v.Items()) != 2 || v.Items()[0].ID != "2" {
		t.Fatalf("expected removal of id 1, got %v", v.Items())
	}
}
