// Package push relays notifications to devices through Firebase Cloud Messaging.
// Delivery is best effort: nothing here ever fails the calling job.
package push

import (
	"context"
	"time"

	"rentwatch/models"
	"rentwatch/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender is the push gateway. *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Payload is the visible part of a push plus its routing data.
type Payload struct {
	Title     string
	Body      string
	Type      models.NotificationType
	RelatedID string
}

// Relay makes exactly one delivery attempt per call.
type Relay struct {
	Sender  Sender
	Timeout time.Duration
}

func NewRelay(sender Sender, timeout time.Duration) *Relay {
	return &Relay{Sender: sender, Timeout: timeout}
}

// Message builds the FCM message for token.
func Message(token string, p Payload) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
		Data: map[string]string{
			"type":      string(p.Type),
			"relatedId": p.RelatedID,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
}

// Deliver pushes p to user if they registered a token. Failures and missing
// tokens are logged and swallowed; the return value only reports the outcome.
func (r *Relay) Deliver(ctx context.Context, user models.User, p Payload) bool {
	logger := utils.GetLogger().With(zap.String("userId", user.ID), zap.String("type", string(p.Type)))

	if user.PushToken == "" {
		logger.Debug("No push token registered, skipping push")
		return false
	}
	if r == nil || r.Sender == nil {
		logger.Warn("Push gateway not configured, skipping push")
		return false
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	id, err := r.Sender.Send(ctx, Message(user.PushToken, p))
	if err != nil {
		logger.Error("Error sending push notification", zap.Error(err))
		return false
	}
	logger.Info("Push notification sent successfully", zap.String("messageId", id))
	return true
}
