package notification

import (
	"context"
	"time"

	"rentwatch/database/repository"
	"rentwatch/models"
	"rentwatch/services/push"

	"github.com/google/uuid"
)

// NotificationService fans notifications out to recipients and serves the
// manual send job.
type NotificationService interface {
	ResolveRecipients(ctx context.Context, sel Recipients) ([]models.User, error)
	Dispatch(ctx context.Context, tpl Template, recipients []models.User) DispatchResult
	Send(ctx context.Context, actorID string, req SendRequest) (*SendResult, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Notifications repository.NotificationRepository
	Users         repository.UserRepository
	Relay         *push.Relay
	// Concurrency bounds the number of in-flight notification writes.
	Concurrency int
	Now         func() time.Time
	NewID       func() string
}

func NewDefaultNotificationService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	relay *push.Relay,
	concurrency int,
) *DefaultNotificationService {
	return &DefaultNotificationService{
		Notifications: notifications,
		Users:         users,
		Relay:         relay,
		Concurrency:   concurrency,
		Now:           time.Now,
		NewID:         func() string { return uuid.New().String() },
	}
}

func (s *DefaultNotificationService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultNotificationService) newID() string {
	if s.NewID == nil {
		return uuid.New().String()
	}
	return s.NewID()
}
