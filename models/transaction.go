package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single income or expense entry, optionally tied to an apartment.
type Transaction struct {
	ID          string          `bson:"id" json:"id"`
	Date        time.Time       `bson:"date" json:"date"`
	Amount      Money           `bson:"amount" json:"amount"`
	Category    string          `bson:"category" json:"category"`
	Type        TransactionType `bson:"type" json:"type"`
	ApartmentID string          `bson:"apartmentId,omitempty" json:"apartmentId,omitempty"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
}
