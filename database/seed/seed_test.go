package seed_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"rentwatch/database/repository"
	"rentwatch/database/seed"
	"rentwatch/database/store"
	"rentwatch/services/expiry"
	"rentwatch/services/join"
	"rentwatch/services/notification"
	"rentwatch/services/report"
	"rentwatch/services/retention"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)

func TestDemo_DrivesEveryJob(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(2)
	ds := seed.Demo(now, rand.New(rand.NewSource(1)), seed.DefaultOptions)

	n, err := seed.Load(ctx, mem, ds)
	require.NoError(t, err)
	assert.Equal(t, 4+3+12+12+12+3*8+5, n)

	notifier := notification.NewDefaultNotificationService(
		repository.NewNotificationRepo(mem), repository.NewUserRepo(mem), nil, 4)
	scan, err := (&expiry.Scanner{
		Contracts: repository.NewContractRepo(mem),
		Resolver:  join.NewResolver(repository.NewLookupRepo(mem)),
		Notifier:  notifier,
	}).Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, scan.ContractsExpiring)
	assert.Equal(t, 6, scan.NotificationsCreated, "two active staff members per contract")

	rep, err := report.NewReportService(repository.NewTransactionRepo(mem), repository.NewLookupRepo(mem), time.UTC).
		Generate(ctx, "seed-viewer", report.ReportRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 24, rep.Summary.TransactionCount)
	assert.False(t, rep.Summary.ProfitLoss.IsNegative())

	purge, err := retention.NewPurger(repository.NewNotificationRepo(mem), 30).Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(5), purge.NotificationsDeleted)
}

func TestLoad_StopsOnDuplicate(t *testing.T) {
	mem := store.NewMemory(0)
	ds := seed.Demo(now, rand.New(rand.NewSource(1)), seed.DefaultOptions)

	_, err := seed.Load(context.Background(), mem, ds)
	require.NoError(t, err)

	written, err := seed.Load(context.Background(), mem, ds)
	assert.Error(t, err)
	assert.Zero(t, written)
}
