package usecase

import (
	"context"
	"strings"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/core/port"
)

// JustificationForm holds the draft for justifying an inventory
// discrepancy.
type JustificationForm struct {
	ReasonID string
	Notes    string

	discrepancy domain.Discrepancy
}

// NewJustificationForm starts a draft for the given discrepancy.
func NewJustificationForm(discrepancy domain.Discrepancy) *JustificationForm {
	return &JustificationForm{discrepancy: discrepancy}
}

// Discrepancy returns the row being justified.
func (f *JustificationForm) Discrepancy() domain.Discrepancy { return f.discrepancy }

// Validate requires a reason to be picked; notes stay optional.
func (f *JustificationForm) Validate() error {
	verr := NewValidationError()
	if strings.TrimSpace(f.ReasonID) == "" {
		verr.Add("reason", "reason is required")
	}
	if verr.Any() {
		return verr
	}
	return nil
}

// Submit validates and posts the justification.
func (f *JustificationForm) Submit(ctx context.Context, scope domain.Scope, gateway port.DiscrepancyGateway) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return gateway.Justify(ctx, scope, domain.Justification{
		DiscrepancyID: f.discrepancy.ID,
		ReasonID:      f.ReasonID,
		Notes:         strings.TrimSpace(f.Notes),
	})
}
