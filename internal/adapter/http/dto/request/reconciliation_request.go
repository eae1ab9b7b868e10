package request

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// CreateReconciliationRequest closes a bank account period.
type CreateReconciliationRequest struct {
	ReconciliationDate string          `json:"reconciliation_date" binding:"required"`
	PeriodStart        string          `json:"period_start" binding:"required"`
	PeriodEnd          string          `json:"period_end" binding:"required"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	ClosingBalance     decimal.Decimal `json:"closing_balance"`
	Notes              string          `json:"notes" binding:"max=2000"`
}

// Dates parses the three civil dates of the request.
func (r CreateReconciliationRequest) Dates() (reconciliation, start, end civil.Date, err error) {
	if reconciliation, err = ParseDate(r.ReconciliationDate); err != nil {
		return
	}
	if start, err = ParseDate(r.PeriodStart); err != nil {
		return
	}
	end, err = ParseDate(r.PeriodEnd)
	return
}

// UnreconciledQuery bounds the unreconciled transaction listing.
type UnreconciledQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// Range returns the optional bounds; empty values are nil.
func (q UnreconciledQuery) Range() (*civil.Date, *civil.Date, error) {
	start, err := optionalDate(q.StartDate)
	if err != nil {
		return nil, nil, err
	}
	end, err := optionalDate(q.EndDate)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// StatementQuery bounds an account statement. Both dates are optional.
type StatementQuery struct {
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
}

func (q StatementQuery) Range() (*civil.Date, *civil.Date, error) {
	return UnreconciledQuery{StartDate: q.FromDate, EndDate: q.ToDate}.Range()
}

type UpdateReconciliationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING IN_PROGRESS RECONCILED DISCREPANCY"`
}

func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func optionalDate(s string) (*civil.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
