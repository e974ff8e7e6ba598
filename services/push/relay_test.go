package push_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentwatch/models"
	"rentwatch/services/push"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type senderFunc func(ctx context.Context, m *messaging.Message) (string, error)

func (f senderFunc) Send(ctx context.Context, m *messaging.Message) (string, error) {
	return f(ctx, m)
}

var payload = push.Payload{
	Title:     "Contract Expiring Soon",
	Body:      "Ana's contract at Sunset, Room 101 expires in 3 days",
	Type:      models.NotificationContractExpiry,
	RelatedID: "c1",
}

func TestMessage(t *testing.T) {
	m := push.Message("tok", payload)

	assert.Equal(t, "tok", m.Token)
	assert.Equal(t, payload.Title, m.Notification.Title)
	assert.Equal(t, payload.Body, m.Notification.Body)
	assert.Equal(t, map[string]string{"type": "contract_expiry", "relatedId": "c1"}, m.Data)
	assert.Equal(t, "high", m.Android.Priority)
}

func TestDeliver(t *testing.T) {
	var got *messaging.Message
	relay := push.NewRelay(senderFunc(func(ctx context.Context, m *messaging.Message) (string, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		got = m
		return "projects/p/messages/1", nil
	}), time.Second)

	ok := relay.Deliver(context.Background(), models.User{ID: "u1", PushToken: "tok"}, payload)
	assert.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, "tok", got.Token)
}

func TestDeliver_SkipsAndSwallows(t *testing.T) {
	calls := 0
	failing := push.NewRelay(senderFunc(func(context.Context, *messaging.Message) (string, error) {
		calls++
		return "", errors.New("unregistered")
	}), 0)

	assert.False(t, failing.Deliver(context.Background(), models.User{ID: "u1"}, payload), "no token")
	assert.Equal(t, 0, calls)

	assert.False(t, failing.Deliver(context.Background(), models.User{ID: "u1", PushToken: "tok"}, payload))
	assert.Equal(t, 1, calls, "exactly one attempt")

	var unconfigured *push.Relay
	assert.False(t, unconfigured.Deliver(context.Background(), models.User{ID: "u1", PushToken: "tok"}, payload))
}
