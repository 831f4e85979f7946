package http

import (
	"fintrack/internal/core"
	"fintrack/internal/metrics"
)

// TransactionView is the wire shape of a transaction. Amounts travel both as
// a decimal string for display and as raw cents for arithmetic on the client.
type TransactionView struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

type BudgetView struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Spent       string `json:"spent"`
	SpentCents  int64  `json:"spent_cents"`
	Percent     int    `json:"percent"`
	Status      string `json:"status"`
}

type BucketView struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

type DashboardView struct {
	TotalExpenses string           `json:"total_expenses"`
	TopCategory   string           `json:"top_category"`
	DailyAverage  string           `json:"daily_average"`
	MostRecent    *TransactionView `json:"most_recent"`
	Monthly       []BucketView     `json:"monthly"`
}

type ReportView struct {
	Period     string       `json:"period"`
	Monthly    []BucketView `json:"monthly"`
	Weekday    []BucketView `json:"weekday"`
	Categories []BucketView `json:"categories"`
	Insights   []string     `json:"insights"`
}

const dateLayout = "2006-01-02"

func toTransactionView(t core.Transaction) TransactionView {
	return TransactionView{
		ID:          t.ID,
		Amount:      t.Amount.String(),
		AmountCents: t.Amount.Cents,
		Description: t.Description,
		Date:        t.Date.Format(dateLayout),
		Category:    string(core.NormalizeCategory(t.Category)),
	}
}

func toTransactionViews(ts []core.Transaction) []TransactionView {
	out := make([]TransactionView, len(ts))
	for i, t := range ts {
		out[i] = toTransactionView(t)
	}
	return out
}

// toBudgetView derives status and percentage alongside the stored fields. A
// non-positive allocation cannot reach here; validation rejects it upstream.
func toBudgetView(b core.BudgetItem) BudgetView {
	status, percent, err := metrics.BudgetProgress(b.Spent, b.Amount)
	if err != nil {
		status, percent = metrics.StatusOnTrack, 0
	}
	return BudgetView{
		ID:          b.ID,
		Category:    string(b.Category),
		Amount:      b.Amount.String(),
		AmountCents: b.Amount.Cents,
		Spent:       b.Spent.String(),
		SpentCents:  b.Spent.Cents,
		Percent:     percent,
		Status:      string(status),
	}
}

func toBudgetViews(bs []core.BudgetItem) []BudgetView {
	out := make([]BudgetView, len(bs))
	for i, b := range bs {
		out[i] = toBudgetView(b)
	}
	return out
}

func toBucketViews(bs []metrics.Bucket) []BucketView {
	out := make([]BucketView, len(bs))
	for i, b := range bs {
		out[i] = BucketView{Name: b.Name, Total: b.Total.String()}
	}
	return out
}
