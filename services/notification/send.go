package notification

import (
	"context"
	"errors"
	"strings"

	"rentwatch/database/store"
	"rentwatch/models"
	"rentwatch/services/authz"
	"rentwatch/utils"

	"go.uber.org/zap"
)

// SendRequest is the manual notification job's input.
type SendRequest struct {
	UserID    string                  `json:"userId"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      models.NotificationType `json:"type,omitempty"`
	RelatedID string                  `json:"relatedId,omitempty"`
}

type SendResult struct {
	Success        bool   `json:"success"`
	NotificationID string `json:"notificationId"`
}

func (r SendRequest) validate() error {
	if strings.TrimSpace(r.UserID) == "" || strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Message) == "" {
		return utils.InvalidArgument("userId, title, and message are required")
	}
	return nil
}

// Send lets an admin or manager notify one user. The notification is persisted
// before the push is attempted, and a failed push does not fail the call.
func (s *DefaultNotificationService) Send(ctx context.Context, actorID string, req SendRequest) (*SendResult, error) {
	if actorID == "" {
		return nil, utils.Unauthenticated("User must be authenticated")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	logger := utils.GetLogger().With(zap.String("senderId", actorID), zap.String("userId", req.UserID))

	sender, err := s.Users.GetByID(ctx, actorID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, utils.PermissionDenied("Insufficient permissions")
	case err != nil:
		logger.Error("Error loading sender", zap.Error(err))
		return nil, utils.Internal("Failed to send push notification", err)
	}
	if err := authz.Require(sender.Role, authz.Staff...); err != nil {
		return nil, err
	}

	target, err := s.Users.GetByID(ctx, req.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, utils.NotFound("Target user not found")
	case err != nil:
		logger.Error("Error loading target user", zap.Error(err))
		return nil, utils.Internal("Failed to send push notification", err)
	}

	notifType := req.Type
	if notifType == "" {
		notifType = models.NotificationGeneral
	}

	result := s.Dispatch(ctx, Template{
		Title:     req.Title,
		Message:   req.Message,
		Type:      notifType,
		RelatedID: req.RelatedID,
		Push:      true,
	}, []models.User{*target})

	if result.Created == 0 {
		var cause error = errors.New("notification was not written")
		if len(result.Failed) > 0 {
			cause = result.Failed[0].Err
		}
		return nil, utils.Internal("Failed to send push notification", cause)
	}

	logger.Info("Manual notification created", zap.String("notificationId", result.NotificationIDs[0]))
	return &SendResult{Success: true, NotificationID: result.NotificationIDs[0]}, nil
}
