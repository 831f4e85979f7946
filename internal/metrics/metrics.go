// Package metrics computes derived views over the canonical transaction and
// budget collections. Every function here is pure: no side effects, no
// persistence, never panics. Empty or missing input degrades to zero, empty
// or sentinel values.
package metrics

import (
	"fintrack/internal/core"
)

// TopCategoryNone is returned by TopSpendingCategory for an empty collection.
const TopCategoryNone = "none"

// TotalExpenses sums all transaction amounts. Order-independent.
func TotalExpenses(transactions []core.Transaction) core.Money {
	var total int64
	for _, t := range transactions {
		total += t.Amount.Cents
	}
	return core.Money{Cents: total}
}

// TopSpendingCategory groups transactions by category (empty category counts
// as "other"), sums each group and returns the category with the strictly
// greatest sum. Ties keep the category encountered first in input order.
func TopSpendingCategory(transactions []core.Transaction) string {
	sums := make(map[string]int64)
	var order []string
	for _, t := range transactions {
		cat := t.Category
		if cat == "" {
			cat = string(core.CategoryOther)
		}
		if _, seen := sums[cat]; !seen {
			order = append(order, cat)
		}
		sums[cat] += t.Amount.Cents
	}

	top := TopCategoryNone
	var max int64
	for _, cat := range order {
		if sums[cat] > max {
			max = sums[cat]
			top = cat
		}
	}
	return top
}

// DailyAverage divides total spend by the number of days spanned by the
// collection. A single transaction is returned as-is with no division; the
// span is ceil(maxDate-minDate) floored at one day. Result is rounded
// half-up to cents.
func DailyAverage(transactions []core.Transaction) core.Money {
	if len(transactions) == 0 {
		return core.Money{}
	}
	total := TotalExpenses(transactions)
	if len(transactions) == 1 {
		return total
	}

	min, max := transactions[0].Date, transactions[0].Date
	for _, t := range transactions[1:] {
		if t.Date.Before(min.Time) {
			min = t.Date
		}
		if t.Date.After(max.Time) {
			max = t.Date
		}
	}

	const day = 24 * 60 * 60
	span := max.Unix() - min.Unix()
	days := (span + day - 1) / day // ceil
	if days < 1 {
		days = 1
	}
	return core.Money{Cents: divRound(total.Cents, days)}
}

// MostRecentTransaction returns the transaction with the latest date. Ties
// keep the transaction encountered first in input order. The second return
// is false for an empty collection.
func MostRecentTransaction(transactions []core.Transaction) (core.Transaction, bool) {
	if len(transactions) == 0 {
		return core.Transaction{}, false
	}
	latest := transactions[0]
	for _, t := range transactions[1:] {
		if t.Date.After(latest.Date.Time) {
			latest = t
		}
	}
	return latest, true
}

// ReconcileBudgets recomputes the derived Spent field of every budget as the
// sum of transaction amounts whose category exactly equals the budget's
// category. Budgets with no matching transactions get Spent = 0. The input
// slices are never mutated; a fresh budget slice is returned. Transactions
// without a matching budget are simply excluded from every budget's sum.
func ReconcileBudgets(budgets []core.BudgetItem, transactions []core.Transaction) []core.BudgetItem {
	if budgets == nil {
		return nil
	}
	byCategory := make(map[core.Category]int64, len(budgets))
	for _, t := range transactions {
		byCategory[core.Category(t.Category)] += t.Amount.Cents
	}

	out := make([]core.BudgetItem, len(budgets))
	for i, b := range budgets {
		b.Spent = core.Money{Cents: byCategory[b.Category]}
		out[i] = b
	}
	return out
}

// divRound divides with half-up rounding. Inputs are non-negative in
// practice (amounts are validated positive).
func divRound(n, d int64) int64 {
	return (n + d/2) / d
}
