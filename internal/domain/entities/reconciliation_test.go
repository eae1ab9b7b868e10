package entities

import (
	"testing"

	"cloud.google.com/go/civil"
)

func TestSumTransactions(t *testing.T) {
	txs := []FinancialTransaction{
		{Type: TransactionTypeIncome, Status: TransactionStatusPaid, Amount: dec("300")},
		{Type: TransactionTypeExpense, Status: TransactionStatusPaid, Amount: dec("100")},
		{Type: TransactionTypeIncome, Status: TransactionStatusPartiallyPaid, Amount: dec("200"), PaidAmount: dec("50")},
	}
	totals := SumTransactions(txs)
	if !totals.Income.Equal(dec("350")) || !totals.Expense.Equal(dec("100")) || !totals.Net.Equal(dec("250")) {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if totals.Count != 3 {
		t.Fatalf("expected 3, got %d", totals.Count)
	}
}

func TestCanPromoteReconciliation(t *testing.T) {
	if !CanPromoteReconciliation(ReconciliationStatusDiscrepancy, ReconciliationStatusReconciled) {
		t.Fatalf("expected discrepancy -> reconciled")
	}
	if CanPromoteReconciliation(ReconciliationStatusReconciled, ReconciliationStatusDiscrepancy) {
		t.Fatalf("reconciled must be terminal")
	}
	if CanPromoteReconciliation(ReconciliationStatusInProgress, ReconciliationStatusPending) {
		t.Fatalf("in progress must not go back to pending")
	}
}

func TestIsZeroMoney(t *testing.T) {
	if !IsZeroMoney(dec("0.004")) || IsZeroMoney(dec("0.01")) || IsZeroMoney(dec("-50")) {
		t.Fatalf("unexpected tolerance behavior")
	}
}

func TestBuildStatement(t *testing.T) {
	from := civil.Date{Year: 2026, Month: 3, Day: 1}
	to := civil.Date{Year: 2026, Month: 3, Day: 31}

	t.Run("running balance follows each entry", func(t *testing.T) {
		txs := []FinancialTransaction{
			{ID: "tx-1", Type: TransactionTypeIncome, Status: TransactionStatusPaid, Amount: dec("300")},
			{ID: "tx-2", Type: TransactionTypeExpense, Status: TransactionStatusPartiallyPaid, Amount: dec("80"), PaidAmount: dec("50")},
			{ID: "tx-3", Type: TransactionTypeExpense, Status: TransactionStatusPaid, Amount: dec("1400.10")},
		}
		st := BuildStatement(BankAccount{ID: "acc-1"}, from, to, dec("1000"), txs)

		want := []string{"1300.00", "1250.00", "-150.10"}
		if len(st.Entries) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(st.Entries))
		}
		for i, w := range want {
			if got := st.Entries[i].RunningBalance.StringFixed(2); got != w {
				t.Fatalf("entry %d: expected running balance %s, got %s", i, w, got)
			}
		}
		if st.Entries[1].Impact.String() != "-50" {
			t.Fatalf("expected partial expense impact -50, got %s", st.Entries[1].Impact)
		}
		if st.NetImpact.StringFixed(2) != "-1150.10" || st.ClosingBalance.StringFixed(2) != "-150.10" {
			t.Fatalf("unexpected summary net=%s closing=%s", st.NetImpact, st.ClosingBalance)
		}
	})

	t.Run("empty period closes at the opening balance", func(t *testing.T) {
		st := BuildStatement(BankAccount{ID: "acc-1"}, from, to, dec("-20.5"), nil)
		if len(st.Entries) != 0 || !st.ClosingBalance.Equal(st.OpeningBalance) || !st.NetImpact.IsZero() {
			t.Fatalf("unexpected statement %+v", st)
		}
	})
}
