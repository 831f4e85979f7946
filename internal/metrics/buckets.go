package metrics

import (
	"time"

	"fintrack/internal/core"
)

// Bucket is one labelled slice of a rollup, e.g. a month or a category.
type Bucket struct {
	Name  string
	Total core.Money
}

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthlyBuckets rolls transactions up into a fixed 12-bucket Jan-Dec view
// keyed by calendar month. The year is discarded, so transactions from
// different years in the same month sum together; use MonthlyBucketsForYear
// when that is not wanted. Empty input returns the same 12 zero buckets.
func MonthlyBuckets(transactions []core.Transaction) []Bucket {
	return MonthlyBucketsForYear(transactions, 0)
}

// MonthlyBucketsForYear is MonthlyBuckets restricted to a single calendar
// year. A zero year disables the filter.
func MonthlyBucketsForYear(transactions []core.Transaction, year int) []Bucket {
	var sums [12]int64
	for _, t := range transactions {
		if year != 0 && t.Date.Year() != year {
			continue
		}
		sums[int(t.Date.Month())-1] += t.Amount.Cents
	}

	out := make([]Bucket, 12)
	for i, name := range monthNames {
		out[i] = Bucket{Name: name, Total: core.Money{Cents: sums[i]}}
	}
	return out
}

// WeekdayBuckets rolls transactions up by day of week, Monday first.
func WeekdayBuckets(transactions []core.Transaction) []Bucket {
	var sums [7]int64
	for _, t := range transactions {
		// time.Weekday is Sunday-based; shift so Monday is index 0.
		idx := (int(t.Date.Weekday()) + 6) % 7
		sums[idx] += t.Amount.Cents
	}

	out := make([]Bucket, 7)
	for i, name := range weekdayNames {
		out[i] = Bucket{Name: name, Total: core.Money{Cents: sums[i]}}
	}
	return out
}

// CategoryBuckets returns one bucket per distinct category present in the
// input, in first-encounter order. Empty categories group under "other";
// absent categories get no zero bucket.
func CategoryBuckets(transactions []core.Transaction) []Bucket {
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

	out := make([]Bucket, 0, len(order))
	for _, cat := range order {
		out = append(out, Bucket{Name: cat, Total: core.Money{Cents: sums[cat]}})
	}
	return out
}

// Between filters transactions to the inclusive [from, to] date range. A
// zero bound disables that side of the filter.
func Between(transactions []core.Transaction, from, to core.Date) []core.Transaction {
	out := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !from.IsZero() && t.Date.Before(from.Time) {
			continue
		}
		if !to.IsZero() && t.Date.After(to.Time) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// PeriodStart returns the start date of a named reporting period relative to
// now: "week" (Monday), "month", "quarter" or "year". Unknown periods return
// a zero date, which Between treats as unbounded.
func PeriodStart(period string, now time.Time) core.Date {
	switch period {
	case "week":
		offset := (int(now.Weekday()) + 6) % 7
		start := now.AddDate(0, 0, -offset)
		return core.DateOf(start)
	case "month":
		return core.NewDate(now.Year(), int(now.Month()), 1)
	case "quarter":
		quarterMonth := (int(now.Month())-1)/3*3 + 1
		return core.NewDate(now.Year(), quarterMonth, 1)
	case "year":
		return core.NewDate(now.Year(), 1, 1)
	}
	return core.Date{}
}
