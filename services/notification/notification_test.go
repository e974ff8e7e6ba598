package notification_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/database/store/storetest"
	"rentwatch/models"
	"rentwatch/services/notification"
	"rentwatch/services/push"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

// fakeSender records every message and fails for the tokens in failFor.
type fakeSender struct {
	mu      sync.Mutex
	sent    []*messaging.Message
	failFor map[string]bool
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	if f.failFor[m.Token] {
		return "", errors.New("registration token is not registered")
	}
	return "msg-" + m.Token, nil
}

func (f *fakeSender) tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.Token)
	}
	return out
}

type fixture struct {
	mem    *store.Memory
	gw     *storetest.Faulty
	sender *fakeSender
	svc    *notification.DefaultNotificationService
}

func newFixture(t *testing.T, users ...models.User) *fixture {
	mem := store.NewMemory(0)
	storetest.Seed(t, mem, repository.Users, users...)
	gw := &storetest.Faulty{Gateway: mem}
	sender := &fakeSender{failFor: map[string]bool{}}

	var seq atomic.Int64
	svc := notification.NewDefaultNotificationService(
		repository.NewNotificationRepo(gw),
		repository.NewUserRepo(gw),
		push.NewRelay(sender, time.Second),
		3,
	)
	svc.Now = func() time.Time { return fixedNow }
	svc.NewID = func() string { return fmt.Sprintf("n%03d", seq.Add(1)) }
	return &fixture{mem: mem, gw: gw, sender: sender, svc: svc}
}

func (f *fixture) notifications(t *testing.T) []models.Notification {
	t.Helper()
	cur, err := f.mem.Find(context.Background(), store.Query{Collection: repository.Notifications})
	require.NoError(t, err)
	out, err := store.Collect(store.Each[models.Notification](context.Background(), cur))
	require.NoError(t, err)
	return out
}

func staff(n int) []models.User {
	users := make([]models.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, models.User{
			ID:        fmt.Sprintf("u%d", i),
			Role:      models.RoleManager,
			IsActive:  true,
			PushToken: fmt.Sprintf("tok%d", i),
		})
	}
	return users
}

func TestResolveRecipients_FiltersRoleAndActivity(t *testing.T) {
	f := newFixture(t,
		models.User{ID: "admin", Role: models.RoleAdmin, IsActive: true},
		models.User{ID: "manager", Role: models.RoleManager, IsActive: true},
		models.User{ID: "inactive", Role: models.RoleManager, IsActive: false},
		models.User{ID: "viewer", Role: models.RoleViewer, IsActive: true},
	)

	users, err := f.svc.ResolveRecipients(context.Background(), notification.Recipients{
		Roles:      []models.Role{models.RoleAdmin, models.RoleManager},
		ActiveOnly: true,
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []string{"admin", "manager"}, ids)
}

func TestDispatch_OneNotificationPerRecipient(t *testing.T) {
	users := staff(5)
	f := newFixture(t)

	res := f.svc.Dispatch(context.Background(), notification.Template{
		Title:     "Contract Expiring Soon",
		Message:   "body",
		Type:      models.NotificationContractExpiry,
		RelatedID: "c1",
	}, append(users, users[0], users[2]))

	assert.Equal(t, 5, res.Created)
	assert.Empty(t, res.Failed)

	stored := f.notifications(t)
	require.Len(t, stored, 5)
	seen := map[string]bool{}
	for _, n := range stored {
		assert.False(t, seen[n.UserID], "duplicate notification for %s", n.UserID)
		seen[n.UserID] = true
		assert.Equal(t, "c1", n.RelatedID)
		assert.Equal(t, models.NotificationContractExpiry, n.Type)
		assert.False(t, n.IsRead)
		assert.True(t, n.CreatedAt.Equal(fixedNow))
	}
	assert.Empty(t, f.sender.tokens(), "push is opt-in")
}

func TestDispatch_PartialFailureIsIsolated(t *testing.T) {
	users := staff(6)
	f := newFixture(t)
	f.gw.FailInsert = func(_ string, doc any) bool {
		n, ok := doc.(*models.Notification)
		return ok && n.UserID == "u4"
	}

	res := f.svc.Dispatch(context.Background(), notification.Template{Title: "t", Message: "m", Push: true}, users)

	assert.Equal(t, 5, res.Created)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "u4", res.Failed[0].UserID)
	assert.ErrorIs(t, res.Failed[0], store.ErrUnavailable)
	assert.Len(t, f.notifications(t), 5)
	assert.NotContains(t, f.sender.tokens(), "tok4", "no push without a stored notification")
}

func TestDispatch_PushFailureDoesNotFailWrite(t *testing.T) {
	users := staff(3)
	users[2].PushToken = ""
	f := newFixture(t)
	f.sender.failFor["tok1"] = true

	res := f.svc.Dispatch(context.Background(), notification.Template{Title: "t", Message: "m", Push: true}, users)

	assert.Equal(t, 3, res.Created)
	assert.Empty(t, res.Failed)
	assert.ElementsMatch(t, []string{"tok1", "tok2"}, f.sender.tokens())
}

func TestDispatch_DefaultsTypeToGeneral(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Dispatch(context.Background(), notification.Template{Title: "t", Message: "m"}, staff(1))
	require.Equal(t, 1, res.Created)

	stored := f.notifications(t)
	require.Len(t, stored, 1)
	assert.Equal(t, models.NotificationGeneral, stored[0].Type)
}
