package repository

import (
	"context"
	"iter"

	"rentwatch/database/store"
	"rentwatch/models"
	"rentwatch/services/window"
)

// ContractRepository reads contracts. Contracts are written by other workflows.
type ContractRepository interface {
	// ActiveEndingWithin streams active contracts whose endDate falls in w.
	ActiveEndingWithin(ctx context.Context, w window.Window) iter.Seq2[models.Contract, error]
}

type contractRepo struct {
	gw store.Gateway
}

func NewContractRepo(gw store.Gateway) ContractRepository {
	return &contractRepo{gw: gw}
}

func (r *contractRepo) ActiveEndingWithin(ctx context.Context, w window.Window) iter.Seq2[models.Contract, error] {
	return find[models.Contract](ctx, r.gw, store.Query{
		Collection: Contracts,
		Range:      rangeOf("endDate", w),
		Where:      []store.Predicate{store.Eq("status", models.ContractActive)},
	})
}
