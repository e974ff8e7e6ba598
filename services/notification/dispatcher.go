package notification

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"rentwatch/models"
	"rentwatch/services/push"
	"rentwatch/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// Template is the payload materialized once per recipient.
type Template struct {
	Title     string
	Message   string
	Type      models.NotificationType
	RelatedID string
	// CreatedAt stamps every notification of the fan-out; zero means now.
	CreatedAt time.Time
	// Push hands each written notification to the push relay.
	Push bool
}

// Recipients is the predicate selecting who receives a fan-out.
type Recipients struct {
	Roles      []models.Role
	ActiveOnly bool
}

// RecipientError records one recipient whose notification was not written.
type RecipientError struct {
	UserID string
	Err    error
}

func (e RecipientError) Error() string {
	return fmt.Sprintf("notify %s: %v", e.UserID, e.Err)
}

func (e RecipientError) Unwrap() error { return e.Err }

// DispatchResult counts only notifications that were persisted.
type DispatchResult struct {
	Created         int
	NotificationIDs []string
	Failed          []RecipientError
}

// ResolveRecipients loads the users matching sel, each at most once.
func (s *DefaultNotificationService) ResolveRecipients(ctx context.Context, sel Recipients) ([]models.User, error) {
	var users []models.User
	seen := make(map[string]bool)
	for u, err := range s.Users.FindByRoles(ctx, sel.Roles, sel.ActiveOnly) {
		if err != nil {
			return nil, fmt.Errorf("resolve recipients: %w", err)
		}
		if u.ID == "" || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		users = append(users, u)
	}
	return users, nil
}

// Dispatch writes one notification per distinct recipient on a bounded pool.
// A failed write is recorded and the remaining recipients still proceed.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, tpl Template, recipients []models.User) DispatchResult {
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = s.now()
	}
	if tpl.Type == "" {
		tpl.Type = models.NotificationGeneral
	}

	limit := s.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var (
		g      errgroup.Group
		mu     sync.Mutex
		result DispatchResult
		seen   = make(map[string]bool, len(recipients))
	)
	g.SetLimit(limit)

	for _, user := range recipients {
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true

		g.Go(func() error {
			n := &models.Notification{
				ID:        s.newID(),
				UserID:    user.ID,
				Title:     tpl.Title,
				Message:   tpl.Message,
				Type:      tpl.Type,
				RelatedID: tpl.RelatedID,
				IsRead:    false,
				CreatedAt: tpl.CreatedAt,
			}

			err := ctx.Err()
			if err == nil {
				err = s.Notifications.Create(ctx, n)
			}
			if err != nil {
				utils.GetLogger().Error("Failed to write notification",
					zap.String("userId", user.ID),
					zap.String("relatedId", tpl.RelatedID),
					zap.Error(err),
				)
				mu.Lock()
				result.Failed = append(result.Failed, RecipientError{UserID: user.ID, Err: err})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.Created++
			result.NotificationIDs = append(result.NotificationIDs, n.ID)
			mu.Unlock()

			if tpl.Push {
				s.Relay.Deliver(ctx, user, push.Payload{
					Title:     tpl.Title,
					Body:      tpl.Message,
					Type:      tpl.Type,
					RelatedID: tpl.RelatedID,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(result.Failed, func(a, b RecipientError) int {
		return strings.Compare(a.UserID, b.UserID)
	})
	return result
}
