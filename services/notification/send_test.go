package notification_test

import (
	"context"
	"testing"

	"rentwatch/database/repository"
	"rentwatch/models"
	"rentwatch/services/notification"
	"rentwatch/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendFixture(t *testing.T) *fixture {
	return newFixture(t,
		models.User{ID: "boss", Role: models.RoleAdmin, IsActive: true},
		models.User{ID: "mgr", Role: models.RoleManager, IsActive: true},
		models.User{ID: "viewer", Role: models.RoleViewer, IsActive: true},
		models.User{ID: "tenant-care", Role: models.RoleViewer, IsActive: true, PushToken: "tok-care"},
	)
}

func validRequest() notification.SendRequest {
	return notification.SendRequest{UserID: "tenant-care", Title: "Rent due", Message: "Please pay by Friday"}
}

func TestSend_StaffCanNotify(t *testing.T) {
	for _, actor := range []string{"boss", "mgr"} {
		t.Run(actor, func(t *testing.T) {
			f := sendFixture(t)

			res, err := f.svc.Send(context.Background(), actor, validRequest())
			require.NoError(t, err)
			assert.True(t, res.Success)

			stored := f.notifications(t)
			require.Len(t, stored, 1)
			assert.Equal(t, res.NotificationID, stored[0].ID)
			assert.Equal(t, "tenant-care", stored[0].UserID)
			assert.Equal(t, models.NotificationGeneral, stored[0].Type)
			assert.Equal(t, []string{"tok-care"}, f.sender.tokens())
		})
	}
}

func TestSend_ViewerIsDenied(t *testing.T) {
	f := sendFixture(t)

	_, err := f.svc.Send(context.Background(), "viewer", validRequest())
	require.Error(t, err)
	assert.Equal(t, utils.CodePermissionDenied, utils.CodeOf(err))
	assert.Equal(t, 0, f.mem.Count(repository.Notifications))
	assert.Empty(t, f.sender.tokens())
}

func TestSend_UnknownSenderIsDenied(t *testing.T) {
	f := sendFixture(t)

	_, err := f.svc.Send(context.Background(), "stranger", validRequest())
	assert.Equal(t, utils.CodePermissionDenied, utils.CodeOf(err))
	assert.Equal(t, 0, f.mem.Count(repository.Notifications))
}

func TestSend_Errors(t *testing.T) {
	cases := []struct {
		name  string
		actor string
		req   notification.SendRequest
		code  utils.ErrorCode
	}{
		{"unauthenticated", "", validRequest(), utils.CodeUnauthenticated},
		{"missing user", "boss", notification.SendRequest{Title: "t", Message: "m"}, utils.CodeInvalidArgument},
		{"missing title", "boss", notification.SendRequest{UserID: "mgr", Message: "m"}, utils.CodeInvalidArgument},
		{"blank message", "boss", notification.SendRequest{UserID: "mgr", Title: "t", Message: "  "}, utils.CodeInvalidArgument},
		{"unknown target", "boss", notification.SendRequest{UserID: "ghost", Title: "t", Message: "m"}, utils.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := sendFixture(t)

			_, err := f.svc.Send(context.Background(), tc.actor, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, utils.CodeOf(err))
			assert.Equal(t, 0, f.mem.Count(repository.Notifications))
		})
	}
}

func TestSend_PushFailureStillSucceeds(t *testing.T) {
	f := sendFixture(t)
	f.sender.failFor["tok-care"] = true

	res, err := f.svc.Send(context.Background(), "boss", validRequest())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, f.mem.Count(repository.Notifications))
}

func TestSend_WriteFailureIsInternal(t *testing.T) {
	f := sendFixture(t)
	f.gw.FailInsert = func(collection string, _ any) bool { return collection == repository.Notifications }

	_, err := f.svc.Send(context.Background(), "boss", validRequest())
	require.Error(t, err)
	assert.Equal(t, utils.CodeInternal, utils.CodeOf(err))
	assert.Empty(t, f.sender.tokens())
}
