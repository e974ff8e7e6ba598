package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rentwatch/config"
	"rentwatch/cron"
	"rentwatch/database"
	"rentwatch/handlers"
	"rentwatch/routes"
	"rentwatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			noWorker, _ := cmd.Flags().GetBool("no-worker")
			return serve(cmd.Context(), !noWorker)
		},
	}
	cmd.Flags().Bool("no-worker", false, "Serve the API without scheduling jobs")
	return cmd
}

func serve(parent context.Context, withWorker bool) error {
	logger := bootstrap()
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer database.Close(context.Background())

	authn, err := authenticator()
	if err != nil {
		return err
	}

	var redisClients []*redis.Client
	if withWorker {
		if err := utils.InitRedis(ctx); err != nil {
			return err
		}
		defer utils.QueueClient.Close()
		redisClients = append(redisClients, utils.QueueClient)

		worker, err := cron.NewWorker(a.runner)
		if err != nil {
			return err
		}
		if err := worker.Start(); err != nil {
			return err
		}
		defer worker.Shutdown()
	}

	utils.CheckHealth(ctx, redisClients, a.gateway)
	utils.StartHealthMonitor(ctx, redisClients, a.gateway, 30*time.Second)

	reportHandler := handlers.NewReportHandler(a.reports)
	notificationHandler := handlers.NewNotificationHandler(a.notifications)
	userHandler := handlers.NewUserHandler(a.provisioner)
	jobsHandler := handlers.NewJobsHandler(a.runner, a.users)

	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      a.users,
		Authenticator: authn,

		GenerateMonthlyReport: reportHandler.GenerateMonthlyReport,
		SendNotification:      notificationHandler.SendNotification,
		ProvisionUser:         userHandler.ProvisionUser,

		RunExpiryScan: jobsHandler.RunExpiryScan,
		RunPurge:      jobsHandler.RunPurge,

		Health: handlers.HealthHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
