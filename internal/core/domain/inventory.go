package domain

import "time"

// Discrepancy is a mismatch between logical and physical stock for a batch,
// surfaced by inventory reconciliation. It stays open until justified.
type Discrepancy struct {
	ID               string
	BatchName        string
	LogicalQuantity  float64
	PhysicalQuantity float64
	Unit             string
}

// Delta returns physical minus logical quantity.
func (d Discrepancy) Delta() float64 {
	return d.PhysicalQuantity - d.LogicalQuantity
}

// DiscrepancyReason is a catalogue entry operators pick from when
// justifying a discrepancy.
type DiscrepancyReason struct {
	ID    string
	Label string
}

// Justification resolves a discrepancy with a reason and optional notes.
type Justification struct {
	DiscrepancyID string
	ReasonID      string
	Notes         string
}

// TraceabilityEvent is an immutable audit log row. The server may omit ID
// for legacy rows; list rendering derives a display-only key in that case
// and must never send it back.
type TraceabilityEvent struct {
	ID           string
	BatchID      string
	AreaID       string
	EventType    string
	Method       string
	FromLocation string
	ToLocation   string
	Quantity     float64
	Unit         string
	Description  string
	CreatedAt    time.Time
	UserName     string
}
