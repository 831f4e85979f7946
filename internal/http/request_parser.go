package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"fintrack/internal/core"
)

var errBadPayload = errors.New("malformed request body")

// decimalAmount accepts either a JSON string ("12.34") or a bare number
// (12.34) and normalizes to cents.
type decimalAmount struct {
	core.Money
}

func (a *decimalAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return err
	}
	a.Cents = cents
	return nil
}

type transactionRequest struct {
	Amount      decimalAmount `json:"amount"`
	Description string        `json:"description"`
	Date        string        `json:"date"`
	Category    string        `json:"category"`
}

type budgetRequest struct {
	Category string        `json:"category"`
	Amount   decimalAmount `json:"amount"`
}

// parseTransaction decodes and sanitizes a transaction payload. Validation
// proper happens in the store; this layer only rejects unparseable input.
func parseTransaction(r *http.Request) (core.Transaction, error) {
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		return core.Transaction{}, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	category := sanitizeInput(req.Category)
	if category != "" && !core.Category(category).Valid() {
		return core.Transaction{}, core.ErrInvalidCategory
	}

	return core.Transaction{
		Amount:      req.Amount.Money,
		Description: sanitizeInput(req.Description),
		Date:        date,
		Category:    category,
	}, nil
}

func parseBudget(r *http.Request) (core.BudgetItem, error) {
	var req budgetRequest
	if err := decodeBody(r, &req); err != nil {
		return core.BudgetItem{}, err
	}

	return core.BudgetItem{
		Category: core.Category(sanitizeInput(req.Category)),
		Amount:   req.Amount.Money,
	}, nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			return core.ErrInvalidAmount
		}
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, core.ErrInvalidDate
	}
	return core.DateOf(t), nil
}

// sanitizeInput trims whitespace and strips control characters from
// user-supplied strings before they reach the store.
func sanitizeInput(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s))
}
