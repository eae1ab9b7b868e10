package interfaces

import (
	"context"
	"time"

	"eldercare_billing/internal/domain/entities"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// ILedgerRepository abstracts the relational ledger (bank accounts,
// transactions and reconciliations).
type ILedgerRepository interface {
	GetBankAccount(ctx context.Context, tenantID, accountID string) (entities.BankAccount, error)
	ReconciliationExists(ctx context.Context, accountID string, date civil.Date) (bool, error)
	// SumPaidBefore nets PAID/PARTIALLY_PAID transactions paid strictly before the instant.
	SumPaidBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error)
	// ListPaidTransactions returns PAID/PARTIALLY_PAID transactions paid in [from, to).
	ListPaidTransactions(ctx context.Context, accountID string, from, to time.Time, onlyUnreconciled bool) ([]entities.FinancialTransaction, error)
	// CreateReconciliation stores the closing and its items atomically and, when
	// the closing is RECONCILED, moves the account current balance.
	CreateReconciliation(ctx context.Context, rec entities.BankReconciliation) (entities.BankReconciliation, error)
	GetReconciliation(ctx context.Context, tenantID, id string) (entities.BankReconciliation, error)
	ListReconciliations(ctx context.Context, tenantID, accountID string) ([]entities.BankReconciliation, error)
	UpdateReconciliationStatus(ctx context.Context, id string, status entities.ReconciliationStatus) (entities.BankReconciliation, error)
}
