package repository

import (
	"context"
	"iter"

	"rentwatch/database/store"
	"rentwatch/models"
	"rentwatch/services/window"
)

type TransactionRepository interface {
	// InPeriod streams transactions dated inside w, limited to apartmentID when set.
	InPeriod(ctx context.Context, w window.Window, apartmentID string) iter.Seq2[models.Transaction, error]
}

type transactionRepo struct {
	gw store.Gateway
}

func NewTransactionRepo(gw store.Gateway) TransactionRepository {
	return &transactionRepo{gw: gw}
}

func (r *transactionRepo) InPeriod(ctx context.Context, w window.Window, apartmentID string) iter.Seq2[models.Transaction, error] {
	q := store.Query{
		Collection: Transactions,
		Range:      rangeOf("date", w),
	}
	if apartmentID != "" {
		q.Where = append(q.Where, store.Eq("apartmentId", apartmentID))
	}
	return find[models.Transaction](ctx, r.gw, q)
}
