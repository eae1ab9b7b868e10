package response

import (
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase"
)

type ReconciliationItemResponse struct {
	TransactionID string     `json:"transaction_id"`
	Type          string     `json:"type"`
	Amount        string     `json:"amount"`
	Description   string     `json:"description,omitempty"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
}

type ReconciliationResponse struct {
	ID                   string                       `json:"id"`
	TenantID             string                       `json:"tenant_id"`
	BankAccountID        string                       `json:"bank_account_id"`
	ReconciliationDate   string                       `json:"reconciliation_date"`
	PeriodStart          string                       `json:"period_start"`
	PeriodEnd            string                       `json:"period_end"`
	OpeningBalance       string                       `json:"opening_balance"`
	ClosingBalance       string                       `json:"closing_balance"`
	SystemOpeningBalance string                       `json:"system_opening_balance"`
	SystemClosingBalance string                       `json:"system_closing_balance"`
	TotalIncome          string                       `json:"total_income"`
	TotalExpense         string                       `json:"total_expense"`
	Difference           string                       `json:"difference"`
	Status               string                       `json:"status"`
	Notes                string                       `json:"notes,omitempty"`
	Items                []ReconciliationItemResponse `json:"items"`
	CreatedAt            time.Time                    `json:"created_at"`
	UpdatedAt            time.Time                    `json:"updated_at"`
}

func FromReconciliation(r entities.BankReconciliation) ReconciliationResponse {
	items := make([]ReconciliationItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ReconciliationItemResponse{
			TransactionID: it.TransactionID,
			Type:          string(it.Type),
			Amount:        money(it.Amount),
			Description:   it.Description,
			PaymentDate:   it.PaymentDate,
		})
	}
	return ReconciliationResponse{
		ID:                   r.ID,
		TenantID:             r.TenantID,
		BankAccountID:        r.BankAccountID,
		ReconciliationDate:   r.ReconciliationDate.String(),
		PeriodStart:          r.PeriodStart.String(),
		PeriodEnd:            r.PeriodEnd.String(),
		OpeningBalance:       money(r.OpeningBalance),
		ClosingBalance:       money(r.ClosingBalance),
		SystemOpeningBalance: money(r.SystemOpeningBalance),
		SystemClosingBalance: money(r.SystemClosingBalance),
		TotalIncome:          money(r.TotalIncome),
		TotalExpense:         money(r.TotalExpense),
		Difference:           money(r.Difference),
		Status:               string(r.Status),
		Notes:                r.Notes,
		Items:                items,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func FromReconciliations(recs []entities.BankReconciliation) []ReconciliationResponse {
	out := make([]ReconciliationResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, FromReconciliation(r))
	}
	return out
}

type TransactionResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Amount      string     `json:"amount"`
	PaidAmount  string     `json:"paid_amount"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	Description string     `json:"description"`
}

type TotalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
	Count   int    `json:"count"`
}

type UnreconciledTransactionsResponse struct {
	Items  []TransactionResponse `json:"items"`
	Totals TotalsResponse        `json:"totals"`
}

func FromUnreconciled(u usecase.UnreconciledTransactions) UnreconciledTransactionsResponse {
	items := make([]TransactionResponse, 0, len(u.Items))
	for _, tx := range u.Items {
		items = append(items, TransactionResponse{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Status:      string(tx.Status),
			Amount:      money(tx.Amount),
			PaidAmount:  money(tx.PaidAmount),
			PaymentDate: tx.PaymentDate,
			Description: tx.Description,
		})
	}
	return UnreconciledTransactionsResponse{
		Items: items,
		Totals: TotalsResponse{
			Income:  money(u.Totals.Income),
			Expense: money(u.Totals.Expense),
			Net:     money(u.Totals.Net),
			Count:   u.Totals.Count,
		},
	}
}

type StatementEntryResponse struct {
	TransactionID  string     `json:"transaction_id"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Description    string     `json:"description"`
	PaymentDate    *time.Time `json:"payment_date,omitempty"`
	Amount         string     `json:"amount"`
	Impact         string     `json:"impact"`
	RunningBalance string     `json:"running_balance"`
}

type StatementResponse struct {
	BankAccountID  string                   `json:"bank_account_id"`
	AccountName    string                   `json:"account_name"`
	CurrentBalance string                   `json:"current_balance"`
	FromDate       string                   `json:"from_date"`
	ToDate         string                   `json:"to_date"`
	OpeningBalance string                   `json:"opening_balance"`
	ClosingBalance string                   `json:"closing_balance"`
	NetImpact      string                   `json:"net_impact"`
	EntriesCount   int                      `json:"entries_count"`
	Entries        []StatementEntryResponse `json:"entries"`
}

func FromStatement(st entities.AccountStatement) StatementResponse {
	entries := make([]StatementEntryResponse, 0, len(st.Entries))
	for _, e := range st.Entries {
		entries = append(entries, StatementEntryResponse{
			TransactionID:  e.TransactionID,
			Type:           string(e.Type),
			Status:         string(e.Status),
			Description:    e.Description,
			PaymentDate:    e.PaymentDate,
			Amount:         money(e.Amount),
			Impact:         money(e.Impact),
			RunningBalance: money(e.RunningBalance),
		})
	}
	return StatementResponse{
		BankAccountID:  st.Account.ID,
		AccountName:    st.Account.Name,
		CurrentBalance: money(st.Account.CurrentBalance),
		FromDate:       st.From.String(),
		ToDate:         st.To.String(),
		OpeningBalance: money(st.OpeningBalance),
		ClosingBalance: money(st.ClosingBalance),
		NetImpact:      money(st.NetImpact),
		EntriesCount:   len(entries),
		Entries:        entries,
	}
}
