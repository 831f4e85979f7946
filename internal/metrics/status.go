package metrics

import (
	"errors"

	"fintrack/internal/core"
)

// BudgetStatus classifies how far a budget's derived spend has progressed
// against its allocation.
type BudgetStatus string

const (
	StatusOnTrack    BudgetStatus = "on_track"
	StatusWarning    BudgetStatus = "warning"
	StatusOverBudget BudgetStatus = "over_budget"
)

// ErrNonPositiveAmount signals a budget allocation of zero or less reaching
// the progress calculation. Validation upstream prevents this; returning an
// error beats propagating a nonsense ratio.
var ErrNonPositiveAmount = errors.New("non-positive budget amount")

// warningThreshold: spent/amount >= 0.8 flags a warning.
const (
	warningNum   = 4
	warningDenom = 5
)

// BudgetProgress classifies spend against allocation and returns the display
// percentage, capped at 100. Status is OverBudget at or above 100% of the
// allocation and Warning at or above 80%.
func BudgetProgress(spent, amount core.Money) (BudgetStatus, int, error) {
	if amount.Cents <= 0 {
		return "", 0, ErrNonPositiveAmount
	}

	status := StatusOnTrack
	switch {
	case spent.Cents >= amount.Cents:
		status = StatusOverBudget
	case spent.Cents*warningDenom >= amount.Cents*warningNum:
		status = StatusWarning
	}

	percent := int(divRound(spent.Cents*100, amount.Cents))
	if percent > 100 {
		percent = 100
	}
	return status, percent, nil
}
