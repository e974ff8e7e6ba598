package report

import (
	"iter"
	"maps"
	"slices"
	"time"

	"rentwatch/models"
)

// Result is the aggregate of one transaction sequence.
type Result struct {
	Summary            models.ReportSummary
	IncomeByCategory   map[string]models.Money
	ExpensesByCategory map[string]models.Money
	Items              []models.ReportItem
}

// Aggregator accumulates transactions with exact decimal arithmetic. Additions
// commute, and items are sorted on output, so arrival order never shows.
type Aggregator struct {
	loc                *time.Location
	totalIncome        models.Money
	totalExpense       models.Money
	incomeByCategory   map[string]models.Money
	expensesByCategory map[string]models.Money
	items              []models.ReportItem
}

// NewAggregator renders item instants in loc (UTC when nil).
func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		loc:                loc,
		incomeByCategory:   make(map[string]models.Money),
		expensesByCategory: make(map[string]models.Money),
	}
}

// Add folds one transaction in. Anything not typed income counts as expense.
func (a *Aggregator) Add(tx models.Transaction) {
	if tx.Type == models.TransactionIncome {
		a.totalIncome = a.totalIncome.Add(tx.Amount)
		a.incomeByCategory[tx.Category] = a.incomeByCategory[tx.Category].Add(tx.Amount)
	} else {
		a.totalExpense = a.totalExpense.Add(tx.Amount)
		a.expensesByCategory[tx.Category] = a.expensesByCategory[tx.Category].Add(tx.Amount)
	}

	a.items = append(a.items, models.ReportItem{
		ID:          tx.ID,
		Date:        tx.Date.In(a.loc),
		Amount:      tx.Amount,
		Category:    tx.Category,
		Type:        tx.Type,
		ApartmentID: tx.ApartmentID,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt.In(a.loc),
	})
}

// Result snapshots the totals. The aggregator stays usable afterwards.
func (a *Aggregator) Result() Result {
	items := slices.Clone(a.items)
	slices.SortFunc(items, func(x, y models.ReportItem) int {
		if c := x.Date.Compare(y.Date); c != 0 {
			return c
		}
		if x.ID < y.ID {
			return -1
		}
		if x.ID > y.ID {
			return 1
		}
		return 0
	})
	if items == nil {
		items = []models.ReportItem{}
	}

	return Result{
		Summary: models.ReportSummary{
			TotalIncome:      a.totalIncome,
			TotalExpense:     a.totalExpense,
			ProfitLoss:       a.totalIncome.Sub(a.totalExpense),
			TransactionCount: len(a.items),
		},
		IncomeByCategory:   maps.Clone(a.incomeByCategory),
		ExpensesByCategory: maps.Clone(a.expensesByCategory),
		Items:              items,
	}
}

// Aggregate drains seq into a Result, stopping at the first error.
func Aggregate(seq iter.Seq2[models.Transaction, error], loc *time.Location) (Result, error) {
	agg := NewAggregator(loc)
	for tx, err := range seq {
		if err != nil {
			return Result{}, err
		}
		agg.Add(tx)
	}
	return agg.Result(), nil
}
