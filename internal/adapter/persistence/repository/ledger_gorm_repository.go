package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type bankAccountModel struct {
	ID             string          `gorm:"primaryKey;type:uuid"`
	TenantID       string          `gorm:"index;not null"`
	Name           string          `gorm:"not null"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (bankAccountModel) TableName() string { return "bank_accounts" }

type financialTransactionModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	TenantID      string          `gorm:"index;not null"`
	BankAccountID string          `gorm:"index:idx_fin_tx_account_paid;not null"`
	Type          string          `gorm:"size:16;not null"`
	Status        string          `gorm:"size:16;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PaidAmount    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	PaymentDate   *time.Time      `gorm:"index:idx_fin_tx_account_paid"`
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (financialTransactionModel) TableName() string { return "financial_transactions" }

type bankReconciliationModel struct {
	ID                   string                    `gorm:"primaryKey;type:uuid"`
	TenantID             string                    `gorm:"index;not null"`
	BankAccountID        string                    `gorm:"uniqueIndex:idx_reconciliation_account_date;not null"`
	ReconciliationDate   datatypes.Date            `gorm:"uniqueIndex:idx_reconciliation_account_date;not null"`
	PeriodStart          datatypes.Date            `gorm:"not null"`
	PeriodEnd            datatypes.Date            `gorm:"not null"`
	OpeningBalance       decimal.Decimal           `gorm:"type:numeric(18,2);not null"`
	ClosingBalance       decimal.Decimal           `gorm:"type:numeric(18,2);not null"`
	SystemOpeningBalance decimal.Decimal           `gorm:"type:numeric(18,2);not null"`
	SystemClosingBalance decimal.Decimal           `gorm:"type:numeric(18,2);not null"`
	TotalIncome          decimal.Decimal           `gorm:"type:numeric(18,2);not null"`
	TotalExpense         decimal.Decimal           `gorm:"type:numeric(18,2);not null"`
	Difference           decimal.Decimal           `gorm:"type:numeric(18,2);not null"`
	Status               string                    `gorm:"size:16;not null"`
	Notes                string                    `gorm:"type:text"`
	Snapshot             datatypes.JSON            `gorm:"type:jsonb"`
	Items                []reconciliationItemModel `gorm:"foreignKey:ReconciliationID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (bankReconciliationModel) TableName() string { return "bank_reconciliations" }

type reconciliationItemModel struct {
	ID               string          `gorm:"primaryKey;type:uuid"`
	ReconciliationID string          `gorm:"index;not null"`
	TransactionID    string          `gorm:"uniqueIndex;not null"`
	Type             string          `gorm:"size:16;not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Description      string
	PaymentDate      *time.Time
}

func (reconciliationItemModel) TableName() string { return "reconciliation_items" }

// reconciliationSnapshot is kept with each closing so later edits to the
// ledger do not change what the closing was computed from.
type reconciliationSnapshot struct {
	TransactionCount int    `json:"transaction_count"`
	Income           string `json:"income"`
	Expense          string `json:"expense"`
	Net              string `json:"net"`
}

var paidStatuses = []string{
	string(entities.TransactionStatusPaid),
	string(entities.TransactionStatusPartiallyPaid),
}

// MigrateLedger creates or updates the ledger tables.
func MigrateLedger(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&bankAccountModel{},
		&financialTransactionModel{},
		&bankReconciliationModel{},
		&reconciliationItemModel{},
	); err != nil {
		return fmt.Errorf("ledger automigrate failed: %w", err)
	}
	return nil
}

// LedgerGormRepository reads and writes the relational ledger through gorm.
type LedgerGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ILedgerRepository = (*LedgerGormRepository)(nil)

func NewLedgerGormRepository(db *gorm.DB) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

func (r *LedgerGormRepository) GetBankAccount(ctx context.Context, tenantID, accountID string) (entities.BankAccount, error) {
	var m bankAccountModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", accountID, tenantID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BankAccount{}, nil
	}
	if err != nil {
		return entities.BankAccount{}, err
	}
	return entities.BankAccount{
		ID:             m.ID,
		TenantID:       m.TenantID,
		Name:           m.Name,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
	}, nil
}

func (r *LedgerGormRepository) ReconciliationExists(ctx context.Context, accountID string, date civil.Date) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&bankReconciliationModel{}).
		Where("bank_account_id = ? AND reconciliation_date = ?", accountID, date.String()).
		Count(&count).Error
	return count > 0, err
}

func (r *LedgerGormRepository) SumPaidBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, error) {
	txs, err := r.ListPaidTransactions(ctx, accountID, time.Time{}, before, false)
	if err != nil {
		return decimal.Zero, err
	}
	return entities.SumTransactions(txs).Net, nil
}

func (r *LedgerGormRepository) ListPaidTransactions(ctx context.Context, accountID string, from, to time.Time, onlyUnreconciled bool) ([]entities.FinancialTransaction, error) {
	q := r.db.WithContext(ctx).
		Model(&financialTransactionModel{}).
		Where("bank_account_id = ? AND status IN ?", accountID, paidStatuses).
		Where("payment_date IS NOT NULL")
	if !from.IsZero() {
		q = q.Where("payment_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("payment_date < ?", to)
	}
	if onlyUnreconciled {
		q = q.Where("NOT EXISTS (SELECT 1 FROM reconciliation_items ri WHERE ri.transaction_id = financial_transactions.id)")
	}

	var rows []financialTransactionModel
	if err := q.Order("payment_date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	txs := make([]entities.FinancialTransaction, 0, len(rows))
	for _, m := range rows {
		txs = append(txs, entities.FinancialTransaction{
			ID:            m.ID,
			TenantID:      m.TenantID,
			BankAccountID: m.BankAccountID,
			Type:          entities.TransactionType(m.Type),
			Status:        entities.TransactionStatus(m.Status),
			Amount:        m.Amount,
			PaidAmount:    m.PaidAmount,
			PaymentDate:   m.PaymentDate,
			Description:   m.Description,
		})
	}
	return txs, nil
}

func (r *LedgerGormRepository) CreateReconciliation(ctx context.Context, rec entities.BankReconciliation) (entities.BankReconciliation, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m, err := toReconciliationModel(rec)
	if err != nil {
		return entities.BankReconciliation{}, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if rec.Status == entities.ReconciliationStatusReconciled {
			return applyClosingBalance(tx, m.BankAccountID, m.ClosingBalance)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entities.BankReconciliation{}, interfaces.ErrAlreadyExists
	}
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	return fromReconciliationModel(m), nil
}

func (r *LedgerGormRepository) GetReconciliation(ctx context.Context, tenantID, id string) (entities.BankReconciliation, error) {
	var m bankReconciliationModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BankReconciliation{}, nil
	}
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	return fromReconciliationModel(m), nil
}

func (r *LedgerGormRepository) ListReconciliations(ctx context.Context, tenantID, accountID string) ([]entities.BankReconciliation, error) {
	var rows []bankReconciliationModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND bank_account_id = ?", tenantID, accountID).
		Order("reconciliation_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.BankReconciliation, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromReconciliationModel(m))
	}
	return out, nil
}

func (r *LedgerGormRepository) UpdateReconciliationStatus(ctx context.Context, id string, status entities.ReconciliationStatus) (entities.BankReconciliation, error) {
	var m bankReconciliationModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if err := tx.Model(&m).Update("status", string(status)).Error; err != nil {
			return err
		}
		m.Status = string(status)
		if status == entities.ReconciliationStatusReconciled {
			return applyClosingBalance(tx, m.BankAccountID, m.ClosingBalance)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BankReconciliation{}, nil
	}
	if err != nil {
		return entities.BankReconciliation{}, err
	}
	return fromReconciliationModel(m), nil
}

func applyClosingBalance(tx *gorm.DB, accountID string, closing decimal.Decimal) error {
	return tx.Model(&bankAccountModel{}).
		Where("id = ?", accountID).
		Update("current_balance", closing).Error
}

func toReconciliationModel(rec entities.BankReconciliation) (bankReconciliationModel, error) {
	snap, err := json.Marshal(reconciliationSnapshot{
		TransactionCount: len(rec.Items),
		Income:           rec.TotalIncome.StringFixed(2),
		Expense:          rec.TotalExpense.StringFixed(2),
		Net:              rec.TotalIncome.Sub(rec.TotalExpense).StringFixed(2),
	})
	if err != nil {
		return bankReconciliationModel{}, err
	}

	m := bankReconciliationModel{
		ID:                   rec.ID,
		TenantID:             rec.TenantID,
		BankAccountID:        rec.BankAccountID,
		ReconciliationDate:   toGormDate(rec.ReconciliationDate),
		PeriodStart:          toGormDate(rec.PeriodStart),
		PeriodEnd:            toGormDate(rec.PeriodEnd),
		OpeningBalance:       rec.OpeningBalance,
		ClosingBalance:       rec.ClosingBalance,
		SystemOpeningBalance: rec.SystemOpeningBalance,
		SystemClosingBalance: rec.SystemClosingBalance,
		TotalIncome:          rec.TotalIncome,
		TotalExpense:         rec.TotalExpense,
		Difference:           rec.Difference,
		Status:               string(rec.Status),
		Notes:                rec.Notes,
		Snapshot:             datatypes.JSON(snap),
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
	}
	for _, it := range rec.Items {
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		m.Items = append(m.Items, reconciliationItemModel{
			ID:               id,
			ReconciliationID: rec.ID,
			TransactionID:    it.TransactionID,
			Type:             string(it.Type),
			Amount:           it.Amount,
			Description:      it.Description,
			PaymentDate:      it.PaymentDate,
		})
	}
	return m, nil
}

func fromReconciliationModel(m bankReconciliationModel) entities.BankReconciliation {
	rec := entities.BankReconciliation{
		ID:                   m.ID,
		TenantID:             m.TenantID,
		BankAccountID:        m.BankAccountID,
		ReconciliationDate:   fromGormDate(m.ReconciliationDate),
		PeriodStart:          fromGormDate(m.PeriodStart),
		PeriodEnd:            fromGormDate(m.PeriodEnd),
		OpeningBalance:       m.OpeningBalance,
		ClosingBalance:       m.ClosingBalance,
		SystemOpeningBalance: m.SystemOpeningBalance,
		SystemClosingBalance: m.SystemClosingBalance,
		TotalIncome:          m.TotalIncome,
		TotalExpense:         m.TotalExpense,
		Difference:           m.Difference,
		Status:               entities.ReconciliationStatus(m.Status),
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	for _, it := range m.Items {
		rec.Items = append(rec.Items, entities.ReconciliationItem{
			ID:               it.ID,
			ReconciliationID: it.ReconciliationID,
			TransactionID:    it.TransactionID,
			Type:             entities.TransactionType(it.Type),
			Amount:           it.Amount,
			Description:      it.Description,
			PaymentDate:      it.PaymentDate,
		})
	}
	return rec
}

func toGormDate(d civil.Date) datatypes.Date {
	return datatypes.Date(d.In(time.UTC))
}

func fromGormDate(d datatypes.Date) civil.Date {
	return civil.DateOf(time.Time(d).UTC())
}
