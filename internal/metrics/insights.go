package metrics

import (
	"fmt"

	"fintrack/internal/core"
)

// Insights produces short textual observations for the reports view: the
// share of the top spending category, the daily average and the state of
// each budget. An empty transaction collection yields guidance messages
// instead of figures.
func Insights(transactions []core.Transaction, budgets []core.BudgetItem) []string {
	if len(transactions) == 0 {
		return []string{
			"No transaction data available. Add some transactions to see insights.",
			"Set up budgets to track your spending against targets.",
		}
	}

	var out []string

	total := TotalExpenses(transactions)
	if top := TopSpendingCategory(transactions); top != TopCategoryNone && total.Cents > 0 {
		var topAmount int64
		for _, b := range CategoryBuckets(transactions) {
			if b.Name == top {
				topAmount = b.Total.Cents
				break
			}
		}
		share := divRound(topAmount*100, total.Cents)
		out = append(out, fmt.Sprintf("Your highest spending category is %s at %d%% of total expenses.", top, share))
	}

	if avg := DailyAverage(transactions); avg.Cents > 0 {
		out = append(out, fmt.Sprintf("Your daily average spending is %s.", avg))
	}

	for _, b := range ReconcileBudgets(budgets, transactions) {
		switch {
		case b.Spent.Cents > b.Amount.Cents:
			over := core.Money{Cents: b.Spent.Cents - b.Amount.Cents}
			out = append(out, fmt.Sprintf("You've exceeded your %s budget by %s.", b.Category, over))
		case b.Spent.Cents > 0:
			remaining := divRound((b.Amount.Cents-b.Spent.Cents)*100, b.Amount.Cents)
			out = append(out, fmt.Sprintf("You're on track with your %s budget with %d%% remaining.", b.Category, remaining))
		}
	}

	if len(out) == 0 {
		return []string{"Start adding transactions and budgets to see financial insights."}
	}
	return out
}
