package fee

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Breakdown is returned to the caller for receipt display.
type Breakdown struct {
	LateDays  int             `json:"late_days"`
	LateFee   decimal.Decimal `json:"late_fee"`
	DamageFee decimal.Decimal `json:"damage_fee"`
	TotalFee  decimal.Decimal `json:"total_fee"`
}

// LateFee computes the days late and the resulting fee. A nil due date means
// the loan can never be overdue. Partial days count in full (ceil) and the
// amount is rounded half-up to the currency's smallest unit (2 places).
func LateFee(effectiveDue *time.Time, returnedAt time.Time, perDay decimal.Decimal) (int, decimal.Decimal) {
	if effectiveDue == nil || !returnedAt.After(*effectiveDue) {
		return 0, decimal.Zero
	}
	days := int(math.Ceil(returnedAt.Sub(*effectiveDue).Hours() / 24))
	return days, perDay.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// Compute builds the full breakdown. damageFee is supplied externally, never
// derived here.
func Compute(effectiveDue *time.Time, returnedAt time.Time, perDay, damageFee decimal.Decimal) Breakdown {
	days, late := LateFee(effectiveDue, returnedAt, perDay)
	return Breakdown{
		LateDays:  days,
		LateFee:   late,
		DamageFee: damageFee,
		TotalFee:  late.Add(damageFee).Round(2),
	}
}
