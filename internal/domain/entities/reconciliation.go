package entities

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

type TransactionStatus string

const (
	TransactionStatusPending       TransactionStatus = "PENDING"
	TransactionStatusPaid          TransactionStatus = "PAID"
	TransactionStatusPartiallyPaid TransactionStatus = "PARTIALLY_PAID"
	TransactionStatusCanceled      TransactionStatus = "CANCELED"
)

// BankAccount is a tenant's bank account tracked by the ledger.
type BankAccount struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// FinancialTransaction is a ledger entry of a bank account.
type FinancialTransaction struct {
	ID            string            `json:"id"`
	TenantID      string            `json:"tenant_id"`
	BankAccountID string            `json:"bank_account_id"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	PaymentDate   *time.Time        `json:"payment_date,omitempty"`
	Description   string            `json:"description"`
}

// SettledAmount is the amount that actually moved through the account.
func (t FinancialTransaction) SettledAmount() decimal.Decimal {
	if t.Status == TransactionStatusPartiallyPaid || t.PaidAmount.IsPositive() {
		return t.PaidAmount
	}
	return t.Amount
}

// SignedImpact is positive for income and negative for expense.
func (t FinancialTransaction) SignedImpact() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.SettledAmount().Neg()
	}
	return t.SettledAmount()
}

type ReconciliationStatus string

const (
	ReconciliationStatusPending     ReconciliationStatus = "PENDING"
	ReconciliationStatusInProgress  ReconciliationStatus = "IN_PROGRESS"
	ReconciliationStatusReconciled  ReconciliationStatus = "RECONCILED"
	ReconciliationStatusDiscrepancy ReconciliationStatus = "DISCREPANCY"
)

// CanPromoteReconciliation reports whether a closing may move from -> to.
// RECONCILED is terminal.
func CanPromoteReconciliation(from, to ReconciliationStatus) bool {
	switch from {
	case ReconciliationStatusPending:
		return to == ReconciliationStatusInProgress || to == ReconciliationStatusReconciled || to == ReconciliationStatusDiscrepancy
	case ReconciliationStatusInProgress:
		return to == ReconciliationStatusReconciled || to == ReconciliationStatusDiscrepancy
	case ReconciliationStatusDiscrepancy:
		return to == ReconciliationStatusInProgress || to == ReconciliationStatusReconciled
	default:
		return false
	}
}

// BankReconciliation is one closing of a bank account for a period.
type BankReconciliation struct {
	ID                   string               `json:"id"`
	TenantID             string               `json:"tenant_id"`
	BankAccountID        string               `json:"bank_account_id"`
	ReconciliationDate   civil.Date           `json:"reconciliation_date"`
	PeriodStart          civil.Date           `json:"period_start"`
	PeriodEnd            civil.Date           `json:"period_end"`
	OpeningBalance       decimal.Decimal      `json:"opening_balance"`
	ClosingBalance       decimal.Decimal      `json:"closing_balance"`
	SystemOpeningBalance decimal.Decimal      `json:"system_opening_balance"`
	SystemClosingBalance decimal.Decimal      `json:"system_closing_balance"`
	TotalIncome          decimal.Decimal      `json:"total_income"`
	TotalExpense         decimal.Decimal      `json:"total_expense"`
	Difference           decimal.Decimal      `json:"difference"`
	Status               ReconciliationStatus `json:"status"`
	Notes                string               `json:"notes,omitempty"`
	Items                []ReconciliationItem `json:"items,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// ReconciliationItem links a transaction to the closing that counted it.
// A transaction belongs to at most one closing.
type ReconciliationItem struct {
	ID               string          `json:"id"`
	ReconciliationID string          `json:"reconciliation_id"`
	TransactionID    string          `json:"transaction_id"`
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description,omitempty"`
	PaymentDate      *time.Time      `json:"payment_date,omitempty"`
}

// LedgerTotals summarizes a set of paid transactions.
type LedgerTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

// SumTransactions totals settled amounts, expenses reported as positive.
func SumTransactions(txs []FinancialTransaction) LedgerTotals {
	totals := LedgerTotals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
	for _, tx := range txs {
		if tx.Type == TransactionTypeExpense {
			totals.Expense = totals.Expense.Add(tx.SettledAmount())
		} else {
			totals.Income = totals.Income.Add(tx.SettledAmount())
		}
		totals.Net = totals.Net.Add(tx.SignedImpact())
		totals.Count++
	}
	return totals
}

// StatementEntry is one settled transaction on an account statement.
type StatementEntry struct {
	TransactionID  string            `json:"transaction_id"`
	Type           TransactionType   `json:"type"`
	Status         TransactionStatus `json:"status"`
	Description    string            `json:"description"`
	PaymentDate    *time.Time        `json:"payment_date,omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	Impact         decimal.Decimal   `json:"impact"`
	RunningBalance decimal.Decimal   `json:"running_balance"`
}

// AccountStatement is the movement of a bank account over [From, To].
type AccountStatement struct {
	Account        BankAccount      `json:"account"`
	From           civil.Date       `json:"from"`
	To             civil.Date       `json:"to"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
	NetImpact      decimal.Decimal  `json:"net_impact"`
	Entries        []StatementEntry `json:"entries"`
}

// BuildStatement walks txs in the given order starting from opening. Each
// entry carries the balance after it; with no entries closing equals opening.
func BuildStatement(account BankAccount, from, to civil.Date, opening decimal.Decimal, txs []FinancialTransaction) AccountStatement {
	st := AccountStatement{
		Account:        account,
		From:           from,
		To:             to,
		OpeningBalance: RoundMoney(opening),
		NetImpact:      decimal.Zero,
		Entries:        make([]StatementEntry, 0, len(txs)),
	}
	running := st.OpeningBalance
	for _, tx := range txs {
		impact := tx.SignedImpact()
		running = running.Add(impact)
		st.NetImpact = st.NetImpact.Add(impact)
		st.Entries = append(st.Entries, StatementEntry{
			TransactionID:  tx.ID,
			Type:           tx.Type,
			Status:         tx.Status,
			Description:    tx.Description,
			PaymentDate:    tx.PaymentDate,
			Amount:         tx.SettledAmount(),
			Impact:         impact,
			RunningBalance: RoundMoney(running),
		})
	}
	st.NetImpact = RoundMoney(st.NetImpact)
	st.ClosingBalance = RoundMoney(running)
	return st
}
