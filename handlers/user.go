package handlers

import (
	"net/http"

	"rentwatch/middleware"
	"rentwatch/models"
	"rentwatch/services/provisioning"
	"rentwatch/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Provisioner *provisioning.Provisioner
}

func NewUserHandler(p *provisioning.Provisioner) *UserHandler {
	return &UserHandler{Provisioner: p}
}

type provisionResponse struct {
	User    *models.User `json:"user"`
	Created bool         `json:"created"`
}

// ProvisionUser handles POST /api/users/provision. The identity comes from the
// verified token, never from the body.
func (h *UserHandler) ProvisionUser(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		utils.WriteError(c, utils.Unauthenticated("User must be authenticated"))
		return
	}
	user, created, err := h.Provisioner.EnsureUser(c.Request.Context(), provisioning.Identity{
		UID:         caller.UID,
		Email:       caller.Email,
		DisplayName: caller.Name,
		PhotoURL:    caller.Picture,
	})
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, provisionResponse{User: user, Created: created})
}
