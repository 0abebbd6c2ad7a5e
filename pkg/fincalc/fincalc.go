// Package fincalc holds the loan arithmetic: interest, total repayable,
// monthly installment, and amortization schedule generation. All math is
// exact decimal; results are rounded to 2 places (TZS cents).
package fincalc

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidTerms = errors.New("fincalc: principal and period must be positive")

var (
	hundred     = decimal.NewFromInt(100)
	twelve      = decimal.NewFromInt(12)
	flatMonthly = decimal.RequireFromString("0.01")
)

// Terms are the derived loan figures for a (principal, rate, period) triple.
type Terms struct {
	Interest         decimal.Decimal
	TotalAmount      decimal.Decimal
	MonthlyRepayment decimal.Decimal
}

// Compute derives the loan terms. flatRate selects the women's-fund rule
// (flat 1% of principal per month, not annualized); otherwise the annual
// percentage rate is pro-rated over the period without compounding.
// Deterministic: recomputing with unchanged inputs yields identical terms.
func Compute(principal, annualRatePercent decimal.Decimal, periodMonths int, flatRate bool) (Terms, error) {
	if periodMonths <= 0 || !principal.IsPositive() {
		return Terms{}, ErrInvalidTerms
	}
	period := decimal.NewFromInt(int64(periodMonths))

	var interest decimal.Decimal
	if flatRate {
		interest = principal.Mul(flatMonthly).Mul(period)
	} else {
		interest = principal.Mul(annualRatePercent).Mul(period).Div(hundred.Mul(twelve))
	}
	interest = interest.Round(2)

	total := principal.Add(interest)
	return Terms{
		Interest:         interest,
		TotalAmount:      total,
		MonthlyRepayment: total.Div(period).Round(2),
	}, nil
}

// InstallmentSpec is one generated schedule line, not yet persisted.
type InstallmentSpec struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
}

// Schedule produces periodMonths equal installments due one calendar month
// apart, starting one month after disbursement. The rounding remainder is
// absorbed into the last installment so the amounts sum exactly to total.
func Schedule(total, monthly decimal.Decimal, periodMonths int, disbursedAt time.Time) ([]InstallmentSpec, error) {
	if periodMonths <= 0 {
		return nil, ErrInvalidTerms
	}
	out := make([]InstallmentSpec, 0, periodMonths)
	paid := decimal.Zero
	for i := 1; i <= periodMonths; i++ {
		amount := monthly
		if i == periodMonths {
			amount = total.Sub(paid)
		}
		paid = paid.Add(amount)
		out = append(out, InstallmentSpec{
			Number:  i,
			DueDate: addMonths(disbursedAt, i),
			Amount:  amount,
		})
	}
	return out, nil
}

// addMonths keeps the day-of-month where possible and clamps to the last day
// of shorter months (Jan 31 + 1 month = Feb 28/29, not Mar 2).
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
