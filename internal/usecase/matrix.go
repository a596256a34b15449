package usecase

import "sort"

// Matrix edits membership of a many-to-many relation (role↔permission,
// user↔role) as a draft set of IDs. Toggles are local; nothing reaches the
// network until the owning form submits the full resulting set.
type Matrix struct {
	members map[string]struct{}
}

// NewMatrix seeds the draft from the current membership.
func NewMatrix(ids []string) *Matrix {
	m := &Matrix{members: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		m.members[id] = struct{}{}
	}
	return m
}

// Toggle flips membership of id: present becomes absent, absent becomes
// present. Applying it twice restores the original set.
func (m *Matrix) Toggle(id string) {
	if _, ok := m.members[id]; ok {
		delete(m.members, id)
		return
	}
	m.members[id] = struct{}{}
}

// Has reports current draft membership.
func (m *Matrix) Has(id string) bool {
	_, ok := m.members[id]
	return ok
}

// Prune drops draft members absent from the candidate set, so a stale or
// deleted ID is never submitted.
func (m *Matrix) Prune(valid []string) {
	keep := make(map[string]struct{}, len(valid))
	for _, id := range valid {
		keep[id] = struct{}{}
	}
	for id := range m.members {
		if _, ok := keep[id]; !ok {
			delete(m.members, id)
		}
	}
}

// IDs returns the full draft membership, sorted for a stable payload.
func (m *Matrix) IDs() []string {
	ids := make([]string, 0, len(m.members))
	for id := range m.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the draft membership size.
func (m *Matrix) Len() int { return len(m.members) }
