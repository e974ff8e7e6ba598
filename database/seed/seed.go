// Package seed generates a demo portfolio for local runs and staging.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/models"
	"rentwatch/services/window"
)

// Dataset is everything Load writes, grouped by collection.
type Dataset struct {
	Users         []models.User
	Apartments    []models.Apartment
	Rooms         []models.Room
	Guests        []models.Guest
	Contracts     []models.Contract
	Transactions  []models.Transaction
	Notifications []models.Notification
}

// Options sizes the generated portfolio.
type Options struct {
	Apartments        int
	RoomsPerApartment int
	// ExpiringContracts end inside the default expiry lookahead.
	ExpiringContracts int
}

var DefaultOptions = Options{Apartments: 3, RoomsPerApartment: 4, ExpiringContracts: 3}

var (
	incomeCategories  = []string{"rent", "deposit", "laundry"}
	expenseCategories = []string{"maintenance", "utilities", "cleaning"}
)

// Demo builds a portfolio around now: one contract per room, the first
// ExpiringContracts of them ending within the next two weeks, a month of
// transactions and a handful of notifications past retention.
func Demo(now time.Time, rng *rand.Rand, opts Options) Dataset {
	if opts.Apartments <= 0 {
		opts = DefaultOptions
	}
	now = now.UTC().Truncate(time.Millisecond)

	ds := Dataset{
		Users: []models.User{
			{ID: "seed-admin", Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin, IsActive: true, CreatedAt: now},
			{ID: "seed-manager", Email: "manager@example.com", Name: "Manager", Role: models.RoleManager, IsActive: true, CreatedAt: now},
			{ID: "seed-manager-away", Email: "away@example.com", Name: "Away Manager", Role: models.RoleManager, IsActive: false, CreatedAt: now},
			{ID: "seed-viewer", Email: "viewer@example.com", Name: "Viewer", Role: models.RoleViewer, IsActive: true, CreatedAt: now},
		},
	}

	contractCounter := 0
	for a := 1; a <= opts.Apartments; a++ {
		apt := models.Apartment{
			ID:      fmt.Sprintf("seed-apt-%d", a),
			Name:    fmt.Sprintf("Building %c", 'A'+rune(a-1)),
			Address: fmt.Sprintf("%d Sample Street", 100+a),
		}
		ds.Apartments = append(ds.Apartments, apt)

		for r := 1; r <= opts.RoomsPerApartment; r++ {
			contractCounter++
			room := models.Room{
				ID:          fmt.Sprintf("%s-room-%d", apt.ID, r),
				ApartmentID: apt.ID,
				RoomNumber:  fmt.Sprintf("%d%02d", a, r),
			}
			guest := models.Guest{
				ID:    fmt.Sprintf("seed-guest-%d", contractCounter),
				Name:  fmt.Sprintf("Guest %d", contractCounter),
				Phone: fmt.Sprintf("900000%04d", contractCounter),
			}

			// Expiring contracts end 1..14 days out; the rest well beyond the lookahead.
			end := now.Add(time.Duration(30+rng.Intn(300)) * window.Day)
			if contractCounter <= opts.ExpiringContracts {
				end = now.Add(time.Duration(1+rng.Intn(14))*window.Day + time.Hour)
			}
			ds.Rooms = append(ds.Rooms, room)
			ds.Guests = append(ds.Guests, guest)
			ds.Contracts = append(ds.Contracts, models.Contract{
				ID:          fmt.Sprintf("seed-contract-%d", contractCounter),
				GuestID:     guest.ID,
				ApartmentID: apt.ID,
				RoomID:      room.ID,
				StartDate:   end.AddDate(-1, 0, 0),
				EndDate:     end,
				Status:      models.ContractActive,
				CreatedAt:   end.AddDate(-1, 0, 0),
			})
		}

		ds.Transactions = append(ds.Transactions, transactions(now, rng, apt.ID, opts.RoomsPerApartment)...)
	}

	for i := 1; i <= 5; i++ {
		ds.Notifications = append(ds.Notifications, models.Notification{
			ID:        fmt.Sprintf("seed-notification-%d", i),
			UserID:    "seed-admin",
			Title:     "Contract Expiring Soon",
			Message:   "Archived reminder",
			Type:      models.NotificationContractExpiry,
			IsRead:    true,
			CreatedAt: now.Add(-time.Duration(40+i) * window.Day),
		})
	}
	return ds
}

// transactions generates one rent payment per room plus a few expenses,
// all dated in now's calendar month.
func transactions(now time.Time, rng *rand.Rand, apartmentID string, rooms int) []models.Transaction {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := max(now.Day(), 1)
	at := func() time.Time {
		return monthStart.Add(time.Duration(rng.Intn(days))*window.Day + time.Duration(rng.Intn(24))*time.Hour)
	}

	var txs []models.Transaction
	for r := 1; r <= rooms; r++ {
		txs = append(txs, models.Transaction{
			ID:          fmt.Sprintf("%s-rent-%d", apartmentID, r),
			Date:        at(),
			Amount:      models.MoneyFromInt(int64(500 + 50*rng.Intn(10))),
			Category:    incomeCategories[0],
			Type:        models.TransactionIncome,
			ApartmentID: apartmentID,
			CreatedAt:   now,
		})
	}
	for e := 1; e <= 3; e++ {
		amount, _ := models.ParseMoney(fmt.Sprintf("%d.%02d", 20+rng.Intn(200), rng.Intn(100)))
		txs = append(txs, models.Transaction{
			ID:          fmt.Sprintf("%s-expense-%d", apartmentID, e),
			Date:        at(),
			Amount:      amount,
			Category:    expenseCategories[rng.Intn(len(expenseCategories))],
			Type:        models.TransactionExpense,
			ApartmentID: apartmentID,
			CreatedAt:   now,
		})
	}
	txs = append(txs, models.Transaction{
		ID:          fmt.Sprintf("%s-extra", apartmentID),
		Date:        at(),
		Amount:      models.MoneyFromInt(int64(10 + rng.Intn(40))),
		Category:    incomeCategories[1+rng.Intn(len(incomeCategories)-1)],
		Type:        models.TransactionIncome,
		ApartmentID: apartmentID,
		CreatedAt:   now,
	})
	return txs
}

// Load inserts ds document by document and returns how many were written.
func Load(ctx context.Context, gw store.Gateway, ds Dataset) (int, error) {
	written := 0
	insert := func(collection string, docs []any) error {
		for _, doc := range docs {
			if err := gw.Insert(ctx, collection, doc); err != nil {
				return fmt.Errorf("seed %s: %w", collection, err)
			}
			written++
		}
		return nil
	}

	steps := []struct {
		collection string
		docs       []any
	}{
		{repository.Users, asAny(ds.Users)},
		{repository.Apartments, asAny(ds.Apartments)},
		{repository.Rooms, asAny(ds.Rooms)},
		{repository.Guests, asAny(ds.Guests)},
		{repository.Contracts, asAny(ds.Contracts)},
		{repository.Transactions, asAny(ds.Transactions)},
		{repository.Notifications, asAny(ds.Notifications)},
	}
	for _, step := range steps {
		if err := insert(step.collection, step.docs); err != nil {
			return written, err
		}
	}
	return written, nil
}

func asAny[T any](docs []T) []any {
	out := make([]any, len(docs))
	for i := range docs {
		out[i] = docs[i]
	}
	return out
}
