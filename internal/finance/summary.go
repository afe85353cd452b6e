package finance

import "github.com/pjoao4446/plataformapessoal-sub001/internal/models"

// PeriodTotals are the net figures for a set of ledger transactions.
// Balance = income - expense; transfers move money between accounts and are
// excluded from both sides.
type PeriodTotals struct {
	IncomeCents  int64
	ExpenseCents int64
	BalanceCents int64
}

// SummarizePeriod partitions transactions by type and sums magnitudes.
// When includePending is false only paid transactions count.
func SummarizePeriod(txs []models.Transaction, includePending bool) PeriodTotals {
	var t PeriodTotals
	for i := range txs {
		tx := &txs[i]
		if !includePending && tx.Status != models.TxPaid {
			continue
		}
		switch tx.Type {
		case models.TxIncome:
			t.IncomeCents += tx.AmountCents
		case models.TxExpense:
			t.ExpenseCents += tx.AmountCents
		}
	}
	t.BalanceCents = t.IncomeCents - t.ExpenseCents
	return t
}
