package request

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"
)

func TestCreateReconciliationRequest_Dates(t *testing.T) {
	r := CreateReconciliationRequest{ReconciliationDate: "2026-03-31", PeriodStart: "2026-03-01", PeriodEnd: " 2026-03-31 "}
	rec, start, end, err := r.Dates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != (civil.Date{Year: 2026, Month: 3, Day: 31}) || start.Day != 1 || end.Month != 3 {
		t.Fatalf("unexpected dates %s %s %s", rec, start, end)
	}

	r.PeriodStart = "01/03/2026"
	if _, _, _, err := r.Dates(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestUnreconciledQuery_Range(t *testing.T) {
	t.Run("empty bounds", func(t *testing.T) {
		start, end, err := UnreconciledQuery{}.Range()
		if err != nil || start != nil || end != nil {
			t.Fatalf("expected open range, got %v %v %v", start, end, err)
		}
	})

	t.Run("start only", func(t *testing.T) {
		start, end, err := UnreconciledQuery{StartDate: "2026-03-01"}.Range()
		if err != nil || start == nil || end != nil {
			t.Fatalf("unexpected range %v %v %v", start, end, err)
		}
	})

	t.Run("bad end", func(t *testing.T) {
		if _, _, err := (UnreconciledQuery{EndDate: "march"}).Range(); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestGenerateInvoiceRequest_BillingTypeOrDefault(t *testing.T) {
	if got := (GenerateInvoiceRequest{}).BillingTypeOrDefault(); got != "UNDEFINED" {
		t.Fatalf("expected UNDEFINED, got %s", got)
	}
	if got := (GenerateInvoiceRequest{BillingType: "pix"}).BillingTypeOrDefault(); got != "PIX" {
		t.Fatalf("expected PIX, got %s", got)
	}
}
