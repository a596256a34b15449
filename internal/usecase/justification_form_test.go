package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

type discrepancyGatewayMock struct {
	justified *domain.Justification
}

func (m *discrepancyGatewayMock) List(_ context.Context, _ domain.Scope) ([]domain.Discrepancy, error) {
	return nil, nil
}

func (m *discrepancyGatewayMock) Reasons(_ context.Context, _ domain.Scope) ([]domain.DiscrepancyReason, error) {
	return nil, nil
}

func (m *discrepancyGatewayMock) Justify(_ context.Context, _ domain.Scope, j domain.Justification) error {
	m.justified = &j
	return nil
}

func TestJustificationFormRequiresReason(t *testing.T) {
	form := NewJustificationForm(domain.Discrepancy{ID: "d1", BatchName: "OG-24"})

	gw := &discrepancyGatewayMock{}
	err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gw.justified != nil {
		t.Fatal("invalid justification must not reach the gateway")
	}
}

func TestJustificationFormSubmit(t *testing.T) {
	form := NewJustificationForm(domain.Discrepancy{ID: "d1", BatchName: "OG-24"})
	form.ReasonID = "r2"
	form.Notes = "  trimming loss  "

	gw := &discrepancyGatewayMock{}
	if err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gw.justified.DiscrepancyID != "d1" || gw.justified.ReasonID != "r2" {
		t.Fatalf("unexpected payload %+v", gw.justified)
	}
	if gw.justified.Notes != "trimming loss" {
		t.Fatalf("expected trimmed notes, got %q", gw.justified.Notes)
	}
}
