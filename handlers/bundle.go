package handlers

import (
	"rentwatch/database/repository"
	"rentwatch/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo      repository.UserRepository
	Authenticator middleware.Authenticator

	// Callable jobs
	GenerateMonthlyReport gin.HandlerFunc
	SendNotification      gin.HandlerFunc
	ProvisionUser         gin.HandlerFunc

	// On-demand runs of the scheduled jobs
	RunExpiryScan gin.HandlerFunc
	RunPurge      gin.HandlerFunc

	Health gin.HandlerFunc
}
