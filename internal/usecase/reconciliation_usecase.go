package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/logger"
	"eldercare_billing/internal/usecase/interfaces"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type CreateReconciliationInput struct {
	TenantID           string          `validate:"required"`
	BankAccountID      string          `validate:"required"`
	ReconciliationDate civil.Date      `validate:"-"`
	PeriodStart        civil.Date      `validate:"-"`
	PeriodEnd          civil.Date      `validate:"-"`
	OpeningBalance     decimal.Decimal `validate:"-"`
	ClosingBalance     decimal.Decimal `validate:"-"`
	Notes              string          `validate:"max=2000"`
}

// UnreconciledTransactions lists paid transactions not yet in any closing.
type UnreconciledTransactions struct {
	Items  []entities.FinancialTransaction `json:"items"`
	Totals entities.LedgerTotals           `json:"totals"`
}

// IReconciliationUseCase closes bank account periods against the ledger.
type IReconciliationUseCase interface {
	Create(ctx context.Context, in CreateReconciliationInput) (entities.BankReconciliation, error)
	ListUnreconciledPaidTransactions(ctx context.Context, tenantID, accountID string, start, end *civil.Date) (UnreconciledTransactions, error)
	Get(ctx context.Context, tenantID, id string) (entities.BankReconciliation, error)
	List(ctx context.Context, tenantID, accountID string) ([]entities.BankReconciliation, error)
	PromoteStatus(ctx context.Context, tenantID, id string, status entities.ReconciliationStatus) (entities.BankReconciliation, error)
	// Statement lists settled movements of the account over [from, to] with a
	// running balance. from defaults to today and to defaults to from.
	Statement(ctx context.Context, tenantID, accountID string, from, to *civil.Date) (entities.AccountStatement, error)
}

type ReconciliationUseCase struct {
	ledger interfaces.ILedgerRepository
	loc    *time.Location
	now    func() time.Time
	log    zerolog.Logger
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

// NewReconciliationUseCase builds the engine. Civil dates are turned into
// instants in loc.
func NewReconciliationUseCase(ledger interfaces.ILedgerRepository, loc *time.Location) *ReconciliationUseCase {
	if loc == nil {
		loc = entities.Tenant{}.Location()
	}
	return &ReconciliationUseCase{
		ledger: ledger,
		loc:    loc,
		now:    time.Now,
		log:    logger.WithComponent("reconciliation.usecase"),
	}
}

func (u *ReconciliationUseCase) Create(ctx context.Context, in CreateReconciliationInput) (entities.BankReconciliation, error) {
	in.TenantID = strings.TrimSpace(in.TenantID)
	in.BankAccountID = strings.TrimSpace(in.BankAccountID)
	if err := validateReconciliationInput(in); err != nil {
		return entities.BankReconciliation{}, err
	}

	account, err := u.ledger.GetBankAccount(ctx, in.TenantID, in.BankAccountID)
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	if account.ID == "" {
		return entities.BankReconciliation{}, ErrBankAccountNotFound
	}

	exists, err := u.ledger.ReconciliationExists(ctx, account.ID, in.ReconciliationDate)
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	if exists {
		return entities.BankReconciliation{}, ErrReconciliationExists
	}

	from := in.PeriodStart.In(u.loc)
	to := in.PeriodEnd.AddDays(1).In(u.loc)

	prior, err := u.ledger.SumPaidBefore(ctx, account.ID, from)
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	txs, err := u.ledger.ListPaidTransactions(ctx, account.ID, from, to, true)
	if err != nil {
		return entities.BankReconciliation{}, err
	}

	totals := entities.SumTransactions(txs)
	systemOpening := entities.RoundMoney(account.OpeningBalance.Add(prior))
	systemClosing := entities.RoundMoney(systemOpening.Add(totals.Net))
	difference := entities.RoundMoney(in.ClosingBalance.Sub(systemClosing))

	status := entities.ReconciliationStatusDiscrepancy
	if entities.IsZeroMoney(difference) {
		status = entities.ReconciliationStatusReconciled
	}

	now := u.now().UTC()
	rec := entities.BankReconciliation{
		ID:                   uuid.NewString(),
		TenantID:             in.TenantID,
		BankAccountID:        account.ID,
		ReconciliationDate:   in.ReconciliationDate,
		PeriodStart:          in.PeriodStart,
		PeriodEnd:            in.PeriodEnd,
		OpeningBalance:       entities.RoundMoney(in.OpeningBalance),
		ClosingBalance:       entities.RoundMoney(in.ClosingBalance),
		SystemOpeningBalance: systemOpening,
		SystemClosingBalance: systemClosing,
		TotalIncome:          totals.Income,
		TotalExpense:         totals.Expense,
		Difference:           difference,
		Status:               status,
		Notes:                in.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, tx := range txs {
		rec.Items = append(rec.Items, entities.ReconciliationItem{
			ID:               uuid.NewString(),
			ReconciliationID: rec.ID,
			TransactionID:    tx.ID,
			Type:             tx.Type,
			Amount:           tx.SettledAmount(),
			Description:      tx.Description,
			PaymentDate:      tx.PaymentDate,
		})
	}

	created, err := u.ledger.CreateReconciliation(ctx, rec)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		return entities.BankReconciliation{}, ErrReconciliationExists
	}
	if err != nil {
		return entities.BankReconciliation{}, err
	}

	u.log.Info().
		Str("reconciliation_id", created.ID).
		Str("tenant_id", created.TenantID).
		Str("bank_account_id", created.BankAccountID).
		Str("difference", created.Difference.StringFixed(2)).
		Str("status", string(created.Status)).
		Int("items", len(created.Items)).
		Msg("bank reconciliation created")
	return created, nil
}

func (u *ReconciliationUseCase) ListUnreconciledPaidTransactions(ctx context.Context, tenantID, accountID string, start, end *civil.Date) (UnreconciledTransactions, error) {
	account, err := u.ledger.GetBankAccount(ctx, tenantID, accountID)
	if err != nil {
		return UnreconciledTransactions{}, err
	}
	if account.ID == "" {
		return UnreconciledTransactions{}, ErrBankAccountNotFound
	}
	if start != nil && end != nil && end.Before(*start) {
		return UnreconciledTransactions{}, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	var from, to time.Time
	if start != nil {
		from = start.In(u.loc)
	}
	if end != nil {
		to = end.AddDays(1).In(u.loc)
	}
	txs, err := u.ledger.ListPaidTransactions(ctx, account.ID, from, to, true)
	if err != nil {
		return UnreconciledTransactions{}, err
	}
	if txs == nil {
		txs = []entities.FinancialTransaction{}
	}
	return UnreconciledTransactions{Items: txs, Totals: entities.SumTransactions(txs)}, nil
}

func (u *ReconciliationUseCase) Statement(ctx context.Context, tenantID, accountID string, from, to *civil.Date) (entities.AccountStatement, error) {
	account, err := u.ledger.GetBankAccount(ctx, tenantID, accountID)
	if err != nil {
		return entities.AccountStatement{}, err
	}
	if account.ID == "" {
		return entities.AccountStatement{}, ErrBankAccountNotFound
	}

	start := civil.DateOf(u.now().In(u.loc))
	if from != nil {
		start = *from
	}
	end := start
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return entities.AccountStatement{}, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	fromAt := start.In(u.loc)
	prior, err := u.ledger.SumPaidBefore(ctx, account.ID, fromAt)
	if err != nil {
		return entities.AccountStatement{}, err
	}
	txs, err := u.ledger.ListPaidTransactions(ctx, account.ID, fromAt, end.AddDays(1).In(u.loc), false)
	if err != nil {
		return entities.AccountStatement{}, err
	}
	return entities.BuildStatement(account, start, end, account.OpeningBalance.Add(prior), txs), nil
}

func (u *ReconciliationUseCase) Get(ctx context.Context, tenantID, id string) (entities.BankReconciliation, error) {
	rec, err := u.ledger.GetReconciliation(ctx, tenantID, id)
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	if rec.ID == "" {
		return entities.BankReconciliation{}, ErrReconciliationNotFound
	}
	return rec, nil
}

func (u *ReconciliationUseCase) List(ctx context.Context, tenantID, accountID string) ([]entities.BankReconciliation, error) {
	account, err := u.ledger.GetBankAccount(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	if account.ID == "" {
		return nil, ErrBankAccountNotFound
	}
	recs, err := u.ledger.ListReconciliations(ctx, tenantID, account.ID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []entities.BankReconciliation{}
	}
	return recs, nil
}

func (u *ReconciliationUseCase) PromoteStatus(ctx context.Context, tenantID, id string, status entities.ReconciliationStatus) (entities.BankReconciliation, error) {
	rec, err := u.Get(ctx, tenantID, id)
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	if !entities.CanPromoteReconciliation(rec.Status, status) {
		return entities.BankReconciliation{}, fmt.Errorf("%w: %s -> %s", ErrInvalidReconciliationStatus, rec.Status, status)
	}

	updated, err := u.ledger.UpdateReconciliationStatus(ctx, rec.ID, status)
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	if updated.ID == "" {
		return entities.BankReconciliation{}, ErrReconciliationNotFound
	}
	u.log.Info().Str("reconciliation_id", rec.ID).Str("from", string(rec.Status)).Str("to", string(status)).Msg("reconciliation status changed")
	return updated, nil
}

func validateReconciliationInput(in CreateReconciliationInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !in.ReconciliationDate.IsValid() || !in.PeriodStart.IsValid() || !in.PeriodEnd.IsValid() {
		return fmt.Errorf("%w: dates are required", ErrInvalidInput)
	}
	if in.PeriodEnd.Before(in.PeriodStart) {
		return fmt.Errorf("%w: period end before period start", ErrInvalidInput)
	}
	return nil
}
