package handlers

import (
	"context"
	"errors"
	"net/http"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/services/authz"
	"rentwatch/services/expiry"
	"rentwatch/services/retention"
	"rentwatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobRunner is the part of tasks.Runner the handlers trigger.
type JobRunner interface {
	RunExpiryScan(ctx context.Context) (expiry.ScanResult, error)
	RunPurge(ctx context.Context) (retention.PurgeResult, error)
}

// JobsHandler lets staff trigger the scheduled jobs outside their schedule.
type JobsHandler struct {
	Jobs  JobRunner
	Users repository.UserRepository
}

func NewJobsHandler(jobs JobRunner, users repository.UserRepository) *JobsHandler {
	return &JobsHandler{Jobs: jobs, Users: users}
}

func (h *JobsHandler) requireStaff(c *gin.Context) bool {
	uid := actorID(c)
	if uid == "" {
		utils.WriteError(c, utils.Unauthenticated("User must be authenticated"))
		return false
	}
	user, err := h.Users.GetByID(c.Request.Context(), uid)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(c, utils.PermissionDenied("Insufficient permissions"))
		return false
	}
	if err != nil {
		utils.WriteError(c, utils.Internal("Failed to load caller", err))
		return false
	}
	if err := authz.Require(user.Role, authz.Staff...); err != nil {
		utils.WriteError(c, err)
		return false
	}
	return true
}

// RunExpiryScan handles POST /api/jobs/expiry-scan.
func (h *JobsHandler) RunExpiryScan(c *gin.Context) {
	if !h.requireStaff(c) {
		return
	}
	res, err := h.Jobs.RunExpiryScan(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Expiry scan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RunPurge handles POST /api/jobs/purge.
func (h *JobsHandler) RunPurge(c *gin.Context) {
	if !h.requireStaff(c) {
		return
	}
	res, err := h.Jobs.RunPurge(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Notification purge failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
