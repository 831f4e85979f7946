package core

import (
	"errors"
	"strings"
	"time"
)

// Category is the closed set of spending tags used for grouping and budget
// matching. Unknown values render as CategoryOther; stored data is never
// rewritten.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryRent           Category = "rent"
	CategoryUtilities      Category = "utilities"
	CategoryEntertainment  Category = "entertainment"
	CategoryTransportation Category = "transportation"
	CategoryHealth         Category = "health"
	CategoryShopping       Category = "shopping"
	CategoryOther          Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryRent,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryTransportation,
	CategoryHealth,
	CategoryShopping,
	CategoryOther,
}

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single recorded expense event.
	Transaction struct {
		ID          string
		Amount      Money
		Description string
		Date        Date
		Category    string // optional; empty groups under "other"
	}

	// BudgetItem is a per-category allocation. Spent is derived from the
	// transaction collection and is never set by callers directly.
	BudgetItem struct {
		ID       string
		Category Category
		Amount   Money
		Spent    Money
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrShortDescription = errors.New("description shorter than 3 characters")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidCategory  = errors.New("invalid category")
)

// MinDescriptionLen is the minimum trimmed description length for a
// transaction to be accepted.
const MinDescriptionLen = 3

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory coerces a stored category value for display and grouping.
// Empty or unknown values map to CategoryOther.
func NormalizeCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// NewDate builds a timezone-naive calendar date at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// SameDay reports whether two dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Year() == other.Year() && d.YearDay() == other.YearDay()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) < MinDescriptionLen {
		return ErrShortDescription
	}
	return t.Date.Validate()
}

func (b BudgetItem) Validate() error {
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	return b.Amount.Validate()
}
