package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"eldercare_billing/internal/domain/entities"
	"eldercare_billing/internal/usecase/interfaces"
	mock_interfaces "eldercare_billing/internal/usecase/interfaces/mocks"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newReconciliationUseCase(t *testing.T) (*ReconciliationUseCase, *mock_interfaces.MockILedgerRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ledger := mock_interfaces.NewMockILedgerRepository(ctrl)
	uc := NewReconciliationUseCase(ledger, nil)
	uc.now = func() time.Time { return fixedNow }
	return uc, ledger
}

func marchInput(closing string) CreateReconciliationInput {
	return CreateReconciliationInput{
		TenantID:           "ten-1",
		BankAccountID:      "acc-1",
		ReconciliationDate: civil.Date{Year: 2026, Month: 3, Day: 31},
		PeriodStart:        civil.Date{Year: 2026, Month: 3, Day: 1},
		PeriodEnd:          civil.Date{Year: 2026, Month: 3, Day: 31},
		OpeningBalance:     decimal.NewFromInt(1000),
		ClosingBalance:     decimal.RequireFromString(closing),
	}
}

func marchTransactions() []entities.FinancialTransaction {
	paid := time.Date(2026, 3, 15, 13, 0, 0, 0, time.UTC)
	return []entities.FinancialTransaction{
		{ID: "tx-1", Type: entities.TransactionTypeIncome, Status: entities.TransactionStatusPaid, Amount: decimal.NewFromInt(300), PaymentDate: &paid},
		{ID: "tx-2", Type: entities.TransactionTypeExpense, Status: entities.TransactionStatusPartiallyPaid, Amount: decimal.NewFromInt(80), PaidAmount: decimal.NewFromInt(50), PaymentDate: &paid},
	}
}

func expectMarchLedger(t *testing.T, ledger *mock_interfaces.MockILedgerRepository) {
	t.Helper()
	sp, _ := time.LoadLocation("America/Sao_Paulo")
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, sp)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, sp)

	ledger.EXPECT().GetBankAccount(gomock.Any(), "ten-1", "acc-1").
		Return(entities.BankAccount{ID: "acc-1", TenantID: "ten-1", OpeningBalance: decimal.NewFromInt(1000)}, nil)
	ledger.EXPECT().ReconciliationExists(gomock.Any(), "acc-1", civil.Date{Year: 2026, Month: 3, Day: 31}).Return(false, nil)
	ledger.EXPECT().SumPaidBefore(gomock.Any(), "acc-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, before time.Time) (decimal.Decimal, error) {
			if !before.Equal(from) {
				t.Errorf("unexpected period start %s", before)
			}
			return decimal.Zero, nil
		})
	ledger.EXPECT().ListPaidTransactions(gomock.Any(), "acc-1", gomock.Any(), gomock.Any(), true).
		DoAndReturn(func(_ context.Context, _ string, gotFrom, gotTo time.Time, _ bool) ([]entities.FinancialTransaction, error) {
			if !gotFrom.Equal(from) || !gotTo.Equal(to) {
				t.Errorf("unexpected period %s - %s", gotFrom, gotTo)
			}
			return marchTransactions(), nil
		})
}

func TestReconciliationUseCase_Create(t *testing.T) {
	t.Run("mismatch is a discrepancy", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		expectMarchLedger(t, ledger)
		ledger.EXPECT().CreateReconciliation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec entities.BankReconciliation) (entities.BankReconciliation, error) { return rec, nil })

		rec, err := uc.Create(context.Background(), marchInput("1300"))
		require.NoError(t, err)
		assert.Equal(t, entities.ReconciliationStatusDiscrepancy, rec.Status)
		assert.Equal(t, "1250.00", rec.SystemClosingBalance.StringFixed(2))
		assert.Equal(t, "50.00", rec.Difference.StringFixed(2))
		assert.Equal(t, "300.00", rec.TotalIncome.StringFixed(2))
		assert.Equal(t, "50.00", rec.TotalExpense.StringFixed(2))
		require.Len(t, rec.Items, 2)
		assert.Equal(t, "50", rec.Items[1].Amount.String())
		assert.Equal(t, rec.ID, rec.Items[0].ReconciliationID)
	})

	t.Run("match is reconciled", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		expectMarchLedger(t, ledger)
		ledger.EXPECT().CreateReconciliation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec entities.BankReconciliation) (entities.BankReconciliation, error) { return rec, nil })

		rec, err := uc.Create(context.Background(), marchInput("1250.004"))
		require.NoError(t, err)
		assert.Equal(t, entities.ReconciliationStatusReconciled, rec.Status)
		assert.True(t, entities.IsZeroMoney(rec.Difference))
	})

	t.Run("overdrawn statement is reconciled like any other", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		expectMarchLedger(t, ledger)
		ledger.EXPECT().CreateReconciliation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec entities.BankReconciliation) (entities.BankReconciliation, error) { return rec, nil })

		in := marchInput("-50")
		in.OpeningBalance = decimal.NewFromInt(-200)
		rec, err := uc.Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, entities.ReconciliationStatusDiscrepancy, rec.Status)
		assert.Equal(t, "-50.00", rec.ClosingBalance.StringFixed(2))
		assert.Equal(t, "-1300.00", rec.Difference.StringFixed(2))
	})

	t.Run("closing already exists for the date", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		ledger.EXPECT().GetBankAccount(gomock.Any(), "ten-1", "acc-1").Return(entities.BankAccount{ID: "acc-1"}, nil)
		ledger.EXPECT().ReconciliationExists(gomock.Any(), "acc-1", gomock.Any()).Return(true, nil)

		_, err := uc.Create(context.Background(), marchInput("1250"))
		assert.ErrorIs(t, err, ErrReconciliationExists)
	})

	t.Run("concurrent duplicate insert", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		expectMarchLedger(t, ledger)
		ledger.EXPECT().CreateReconciliation(gomock.Any(), gomock.Any()).Return(entities.BankReconciliation{}, interfaces.ErrAlreadyExists)

		_, err := uc.Create(context.Background(), marchInput("1250"))
		assert.ErrorIs(t, err, ErrReconciliationExists)
	})

	t.Run("account of another tenant", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		ledger.EXPECT().GetBankAccount(gomock.Any(), "ten-1", "acc-1").Return(entities.BankAccount{}, nil)

		_, err := uc.Create(context.Background(), marchInput("1250"))
		assert.ErrorIs(t, err, ErrBankAccountNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc, _ := newReconciliationUseCase(t)

		reversed := marchInput("1250")
		reversed.PeriodEnd = civil.Date{Year: 2026, Month: 2, Day: 1}
		_, err := uc.Create(context.Background(), reversed)
		assert.ErrorIs(t, err, ErrInvalidInput)

		missing := marchInput("1250")
		missing.BankAccountID = " "
		_, err = uc.Create(context.Background(), missing)
		assert.ErrorIs(t, err, ErrInvalidInput)

		noDate := marchInput("1250")
		noDate.ReconciliationDate = civil.Date{}
		_, err = uc.Create(context.Background(), noDate)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestReconciliationUseCase_ListUnreconciledPaidTransactions(t *testing.T) {
	uc, ledger := newReconciliationUseCase(t)
	ledger.EXPECT().GetBankAccount(gomock.Any(), "ten-1", "acc-1").Return(entities.BankAccount{ID: "acc-1"}, nil)
	ledger.EXPECT().ListPaidTransactions(gomock.Any(), "acc-1", time.Time{}, time.Time{}, true).Return(marchTransactions(), nil)

	got, err := uc.ListUnreconciledPaidTransactions(context.Background(), "ten-1", "acc-1", nil, nil)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Totals.Count)
	assert.Equal(t, "250", got.Totals.Net.String())
}

func TestReconciliationUseCase_PromoteStatus(t *testing.T) {
	t.Run("reconciled is terminal", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		ledger.EXPECT().GetReconciliation(gomock.Any(), "ten-1", "rec-1").
			Return(entities.BankReconciliation{ID: "rec-1", Status: entities.ReconciliationStatusReconciled}, nil)

		_, err := uc.PromoteStatus(context.Background(), "ten-1", "rec-1", entities.ReconciliationStatusInProgress)
		if !errors.Is(err, ErrInvalidReconciliationStatus) {
			t.Fatalf("expected ErrInvalidReconciliationStatus, got %v", err)
		}
	})

	t.Run("discrepancy can be reconciled after review", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		ledger.EXPECT().GetReconciliation(gomock.Any(), "ten-1", "rec-1").
			Return(entities.BankReconciliation{ID: "rec-1", Status: entities.ReconciliationStatusDiscrepancy}, nil)
		ledger.EXPECT().UpdateReconciliationStatus(gomock.Any(), "rec-1", entities.ReconciliationStatusReconciled).
			Return(entities.BankReconciliation{ID: "rec-1", Status: entities.ReconciliationStatusReconciled}, nil)

		rec, err := uc.PromoteStatus(context.Background(), "ten-1", "rec-1", entities.ReconciliationStatusReconciled)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Status != entities.ReconciliationStatusReconciled {
			t.Fatalf("expected RECONCILED, got %s", rec.Status)
		}
	})

	t.Run("missing closing", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		ledger.EXPECT().GetReconciliation(gomock.Any(), "ten-1", "rec-x").Return(entities.BankReconciliation{}, nil)

		_, err := uc.PromoteStatus(context.Background(), "ten-1", "rec-x", entities.ReconciliationStatusReconciled)
		if !errors.Is(err, ErrReconciliationNotFound) {
			t.Fatalf("expected ErrReconciliationNotFound, got %v", err)
		}
	})
}

// instant matches a time.Time by Equal, ignoring the *Location pointer.
type instant time.Time

func (i instant) Matches(x any) bool {
	t, ok := x.(time.Time)
	return ok && t.Equal(time.Time(i))
}

func (i instant) String() string { return time.Time(i).String() }

func TestReconciliationUseCase_Statement(t *testing.T) {
	sp, _ := time.LoadLocation("America/Sao_Paulo")

	t.Run("opening carries prior movements and entries run from it", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		from := civil.Date{Year: 2026, Month: 3, Day: 1}
		to := civil.Date{Year: 2026, Month: 3, Day: 31}

		ledger.EXPECT().GetBankAccount(gomock.Any(), "ten-1", "acc-1").
			Return(entities.BankAccount{ID: "acc-1", TenantID: "ten-1", OpeningBalance: decimal.NewFromInt(1000)}, nil)
		ledger.EXPECT().SumPaidBefore(gomock.Any(), "acc-1", instant(time.Date(2026, 3, 1, 0, 0, 0, 0, sp))).
			Return(decimal.NewFromInt(-400), nil)
		ledger.EXPECT().ListPaidTransactions(gomock.Any(), "acc-1", instant(time.Date(2026, 3, 1, 0, 0, 0, 0, sp)), instant(time.Date(2026, 4, 1, 0, 0, 0, 0, sp)), false).
			Return(marchTransactions(), nil)

		st, err := uc.Statement(context.Background(), "ten-1", "acc-1", &from, &to)
		require.NoError(t, err)
		assert.Equal(t, "600.00", st.OpeningBalance.StringFixed(2))
		require.Len(t, st.Entries, 2)
		assert.Equal(t, "900.00", st.Entries[0].RunningBalance.StringFixed(2))
		assert.Equal(t, "850.00", st.Entries[1].RunningBalance.StringFixed(2))
		assert.Equal(t, "250.00", st.NetImpact.StringFixed(2))
		assert.Equal(t, "850.00", st.ClosingBalance.StringFixed(2))
	})

	t.Run("defaults to today in the account timezone", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		// 02:30 UTC is still the previous day in Sao Paulo.
		today := civil.Date{Year: 2026, Month: 2, Day: 12}

		ledger.EXPECT().GetBankAccount(gomock.Any(), "ten-1", "acc-1").Return(entities.BankAccount{ID: "acc-1"}, nil)
		ledger.EXPECT().SumPaidBefore(gomock.Any(), "acc-1", instant(today.In(sp))).Return(decimal.Zero, nil)
		ledger.EXPECT().ListPaidTransactions(gomock.Any(), "acc-1", instant(today.In(sp)), instant(today.AddDays(1).In(sp)), false).Return(nil, nil)

		st, err := uc.Statement(context.Background(), "ten-1", "acc-1", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, today, st.From)
		assert.Equal(t, today, st.To)
		assert.Empty(t, st.Entries)
	})

	t.Run("reversed period", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		from := civil.Date{Year: 2026, Month: 3, Day: 31}
		to := civil.Date{Year: 2026, Month: 3, Day: 1}
		ledger.EXPECT().GetBankAccount(gomock.Any(), "ten-1", "acc-1").Return(entities.BankAccount{ID: "acc-1"}, nil)

		_, err := uc.Statement(context.Background(), "ten-1", "acc-1", &from, &to)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown account", func(t *testing.T) {
		uc, ledger := newReconciliationUseCase(t)
		ledger.EXPECT().GetBankAccount(gomock.Any(), "ten-1", "acc-x").Return(entities.BankAccount{}, nil)

		_, err := uc.Statement(context.Background(), "ten-1", "acc-x", nil, nil)
		assert.ErrorIs(t, err, ErrBankAccountNotFound)
	})
}
