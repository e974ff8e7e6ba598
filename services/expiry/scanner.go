// Package expiry notifies staff about active contracts that are about to end.
package expiry

import (
	"context"
	"fmt"
	"time"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/models"
	"rentwatch/services/authz"
	"rentwatch/services/join"
	"rentwatch/services/notification"
	"rentwatch/services/window"
	"rentwatch/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLookaheadDays = 15
	Title                = "Contract Expiring Soon"
)

type ScanResult struct {
	Success              bool `json:"success"`
	NotificationsCreated int  `json:"notificationsCreated"`
	ContractsExpiring    int  `json:"contractsExpiring"`
	FailedWrites         int  `json:"failedWrites"`
}

// Scanner runs the expiry scan. It keeps no state between runs, so a contract
// that stays inside the window is notified again on the next run.
type Scanner struct {
	Contracts       repository.ContractRepository
	Resolver        *join.Resolver
	Notifier        notification.NotificationService
	LookaheadDays   int
	JoinConcurrency int
	Push            bool
}

// Message composes the body shown to every recipient.
func Message(d join.ContractDetails, daysLeft int) string {
	return fmt.Sprintf("%s's contract at %s, Room %s expires in %d days",
		d.GuestName, d.ApartmentName, d.RoomNumber, daysLeft)
}

// Run scans [now, now+LookaheadDays] and notifies every active admin and
// manager once per expiring contract. Store failures abort the run; a failed
// notification write only lowers the created count.
func (s *Scanner) Run(ctx context.Context, now time.Time) (ScanResult, error) {
	lookahead := s.LookaheadDays
	if lookahead <= 0 {
		lookahead = DefaultLookaheadDays
	}
	w := window.Compute(now, lookahead, window.Forward)
	logger := utils.GetLogger().With(zap.Time("now", now), zap.Time("until", w.Upper.At))

	var (
		contracts  []models.Contract
		recipients []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contracts, err = store.Collect(s.Contracts.ActiveEndingWithin(gctx, w))
		if err != nil {
			return fmt.Errorf("query expiring contracts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recipients, err = s.Notifier.ResolveRecipients(gctx, notification.Recipients{
			Roles:      authz.Staff,
			ActiveOnly: true,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Error checking expiring contracts", zap.Error(err))
		return ScanResult{}, err
	}

	details, err := s.resolveAll(ctx, contracts)
	if err != nil {
		logger.Error("Error resolving contract details", zap.Error(err))
		return ScanResult{ContractsExpiring: len(contracts)}, err
	}

	result := ScanResult{ContractsExpiring: len(contracts)}
	for _, d := range details {
		res := s.Notifier.Dispatch(ctx, notification.Template{
			Title:     Title,
			Message:   Message(d, window.DaysUntil(now, d.Contract.EndDate)),
			Type:      models.NotificationContractExpiry,
			RelatedID: d.Contract.ID,
			CreatedAt: now,
			Push:      s.Push,
		}, recipients)
		result.NotificationsCreated += res.Created
		result.FailedWrites += len(res.Failed)
	}
	result.Success = true

	logger.Info("Created contract expiry notifications",
		zap.Int("notificationsCreated", result.NotificationsCreated),
		zap.Int("contractsExpiring", result.ContractsExpiring),
		zap.Int("recipients", len(recipients)),
		zap.Int("failedWrites", result.FailedWrites),
	)
	return result, nil
}

// resolveAll joins every contract on a bounded pool, keeping input order.
func (s *Scanner) resolveAll(ctx context.Context, contracts []models.Contract) ([]join.ContractDetails, error) {
	details := make([]join.ContractDetails, len(contracts))

	limit := s.JoinConcurrency
	if limit <= 0 {
		limit = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range contracts {
		g.Go(func() error {
			d, err := s.Resolver.ResolveContract(gctx, c)
			if err != nil {
				return fmt.Errorf("contract %s: %w", c.ID, err)
			}
			details[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}
