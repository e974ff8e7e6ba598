package handlers

import (
	"net/http"

	"rentwatch/services/notification"
	"rentwatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Notifications notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: svc}
}

// SendNotification handles POST /api/notifications/send.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req notification.SendRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := actorID(c)
	res, err := h.Notifications.Send(c.Request.Context(), actor, req)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	getLogger(c).Info("Sent notification",
		zap.String("actor", actor),
		zap.String("userId", req.UserID),
		zap.String("notificationId", res.NotificationID))
	c.JSON(http.StatusOK, res)
}
