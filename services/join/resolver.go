// Package join resolves a contract's foreign keys into display values.
package join

import (
	"context"
	"errors"
	"fmt"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/models"

	"golang.org/x/sync/errgroup"
)

// Placeholders substituted when a referenced record is missing, has an empty
// display field, or the foreign key itself is empty.
const (
	UnknownGuest     = "Unknown Guest"
	UnknownApartment = "Unknown Apartment"
	UnknownRoom      = "Unknown"
)

// ContractDetails is a contract with its references resolved. The entity
// pointers are nil when the lookup missed; the name fields never are empty.
type ContractDetails struct {
	Contract      models.Contract
	Guest         *models.Guest
	Apartment     *models.Apartment
	Room          *models.Room
	GuestName     string
	ApartmentName string
	RoomNumber    string
}

// Resolver joins contracts against guests, apartments and rooms.
type Resolver struct {
	Lookups repository.LookupRepository
}

func NewResolver(lookups repository.LookupRepository) *Resolver {
	return &Resolver{Lookups: lookups}
}

// ResolveContract issues the three lookups concurrently. Not-found never fails
// the join; a store failure does.
func (r *Resolver) ResolveContract(ctx context.Context, c models.Contract) (ContractDetails, error) {
	d := ContractDetails{
		Contract:      c,
		GuestName:     UnknownGuest,
		ApartmentName: UnknownApartment,
		RoomNumber:    UnknownRoom,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		guest, err := lookup(gctx, c.GuestID, r.Lookups.GetGuest)
		if err != nil {
			return fmt.Errorf("resolve guest %s: %w", c.GuestID, err)
		}
		d.Guest = guest
		if guest != nil && guest.Name != "" {
			d.GuestName = guest.Name
		}
		return nil
	})
	g.Go(func() error {
		apt, err := lookup(gctx, c.ApartmentID, r.Lookups.GetApartment)
		if err != nil {
			return fmt.Errorf("resolve apartment %s: %w", c.ApartmentID, err)
		}
		d.Apartment = apt
		if apt != nil && apt.Name != "" {
			d.ApartmentName = apt.Name
		}
		return nil
	})
	g.Go(func() error {
		room, err := lookup(gctx, c.RoomID, r.Lookups.GetRoom)
		if err != nil {
			return fmt.Errorf("resolve room %s: %w", c.RoomID, err)
		}
		d.Room = room
		if room != nil && room.RoomNumber != "" {
			d.RoomNumber = room.RoomNumber
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return ContractDetails{}, err
	}
	return d, nil
}

func lookup[T any](ctx context.Context, id string, fetch func(context.Context, string) (*T, error)) (*T, error) {
	if id == "" {
		return nil, nil
	}
	v, err := fetch(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return v, err
}
