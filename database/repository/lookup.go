package repository

import (
	"context"

	"rentwatch/database/store"
	"rentwatch/models"
)

// LookupRepository resolves the entities a contract or transaction refers to.
// Every method returns store.ErrNotFound when the id matches nothing.
type LookupRepository interface {
	GetGuest(ctx context.Context, id string) (*models.Guest, error)
	GetApartment(ctx context.Context, id string) (*models.Apartment, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
}

type lookupRepo struct {
	gw store.Gateway
}

func NewLookupRepo(gw store.Gateway) LookupRepository {
	return &lookupRepo{gw: gw}
}

func (r *lookupRepo) GetGuest(ctx context.Context, id string) (*models.Guest, error) {
	return get[models.Guest](ctx, r.gw, Guests, id)
}

func (r *lookupRepo) GetApartment(ctx context.Context, id string) (*models.Apartment, error) {
	return get[models.Apartment](ctx, r.gw, Apartments, id)
}

func (r *lookupRepo) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	return get[models.Room](ctx, r.gw, Rooms, id)
}
