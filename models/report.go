package models

import "time"

type ReportPeriod struct {
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type ReportSummary struct {
	TotalIncome      Money `json:"totalIncome"`
	TotalExpense     Money `json:"totalExpense"`
	ProfitLoss       Money `json:"profitLoss"`
	TransactionCount int   `json:"transactionCount"`
}

// ReportItem is a transaction re-expressed in the report's time zone.
type ReportItem struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      Money           `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	ApartmentID string          `json:"apartmentId,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type MonthlyReport struct {
	Period             ReportPeriod     `json:"period"`
	Apartment          *Apartment       `json:"apartment"`
	Summary            ReportSummary    `json:"summary"`
	IncomeByCategory   map[string]Money `json:"incomeByCategory"`
	ExpensesByCategory map[string]Money `json:"expensesByCategory"`
	Transactions       []ReportItem     `json:"transactions"`
	GeneratedAt        time.Time        `json:"generatedAt"`
	GeneratedBy        string           `json:"generatedBy"`
}
