package join_test

import (
	"context"
	"testing"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/database/store/storetest"
	"rentwatch/models"
	"rentwatch/services/join"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededLookups(t *testing.T) store.Gateway {
	mem := store.NewMemory(0)
	storetest.Seed(t, mem, repository.Guests, models.Guest{ID: "g1", Name: "Ana"}, models.Guest{ID: "g2"})
	storetest.Seed(t, mem, repository.Apartments, models.Apartment{ID: "a1", Name: "Sunset"})
	storetest.Seed(t, mem, repository.Rooms, models.Room{ID: "r1", ApartmentID: "a1", RoomNumber: "101"})
	return mem
}

func TestResolveContract_AllFound(t *testing.T) {
	r := join.NewResolver(repository.NewLookupRepo(seededLookups(t)))

	d, err := r.ResolveContract(context.Background(), models.Contract{
		ID: "c1", GuestID: "g1", ApartmentID: "a1", RoomID: "r1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", d.GuestName)
	assert.Equal(t, "Sunset", d.ApartmentName)
	assert.Equal(t, "101", d.RoomNumber)
	require.NotNil(t, d.Room)
	assert.Equal(t, "a1", d.Room.ApartmentID)
}

func TestResolveContract_MissingReferencesFallBack(t *testing.T) {
	r := join.NewResolver(repository.NewLookupRepo(seededLookups(t)))

	d, err := r.ResolveContract(context.Background(), models.Contract{
		ID: "c2", GuestID: "g2", ApartmentID: "", RoomID: "gone",
	})
	require.NoError(t, err)

	assert.Equal(t, join.UnknownGuest, d.GuestName, "empty name falls back")
	assert.Equal(t, join.UnknownApartment, d.ApartmentName, "empty foreign key falls back")
	assert.Equal(t, join.UnknownRoom, d.RoomNumber, "missing record falls back")
	assert.NotNil(t, d.Guest)
	assert.Nil(t, d.Apartment)
	assert.Nil(t, d.Room)
	assert.Equal(t, "c2", d.Contract.ID)
}

func TestResolveContract_StoreFailurePropagates(t *testing.T) {
	gw := &storetest.Faulty{
		Gateway: seededLookups(t),
		FailGet: func(collection, _ string) bool { return collection == repository.Apartments },
	}
	r := join.NewResolver(repository.NewLookupRepo(gw))

	_, err := r.ResolveContract(context.Background(), models.Contract{
		ID: "c1", GuestID: "g1", ApartmentID: "a1", RoomID: "r1",
	})
	assert.ErrorIs(t, err, store.ErrUnavailable)
}
