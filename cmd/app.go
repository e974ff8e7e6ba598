package cmd

import (
	"context"
	"fmt"

	"rentwatch/config"
	"rentwatch/database"
	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/middleware"
	"rentwatch/services/expiry"
	"rentwatch/services/join"
	"rentwatch/services/notification"
	"rentwatch/services/provisioning"
	"rentwatch/services/push"
	"rentwatch/services/report"
	"rentwatch/services/retention"
	"rentwatch/services/tasks"
	"rentwatch/utils"

	"go.uber.org/zap"
)

// app is the wired service graph shared by every subcommand.
type app struct {
	gateway       store.Gateway
	users         repository.UserRepository
	reports       *report.DefaultReportService
	notifications *notification.DefaultNotificationService
	provisioner   *provisioning.Provisioner
	runner        *tasks.Runner
}

// bootstrap loads config and the logger. Every subcommand calls it first.
func bootstrap() *zap.Logger {
	config.LoadConfig()
	utils.InitializeLogger()
	return utils.GetLogger()
}

// newApp opens the store and the push gateway and builds the services on top.
// Firebase is optional outside production: without it pushes are skipped.
func newApp(ctx context.Context) (*app, error) {
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if err := utils.FirebaseInit(ctx); err != nil {
		if config.IsProduction() {
			return nil, err
		}
		logger.Warn("Firebase unavailable, push delivery disabled", zap.Error(err))
	}

	gw, err := database.OpenGateway(ctx)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	contracts := repository.NewContractRepo(gw)
	lookups := repository.NewLookupRepo(gw)
	users := repository.NewUserRepo(gw)
	txs := repository.NewTransactionRepo(gw)
	notifs := repository.NewNotificationRepo(gw)

	var relay *push.Relay
	if utils.FCMClient != nil {
		relay = push.NewRelay(utils.FCMClient, cfg.PushTimeout)
	}
	notifier := notification.NewDefaultNotificationService(notifs, users, relay, cfg.FanoutConcurrency)

	scanner := &expiry.Scanner{
		Contracts:       contracts,
		Resolver:        join.NewResolver(lookups),
		Notifier:        notifier,
		LookaheadDays:   cfg.ExpiryLookaheadDays,
		JoinConcurrency: cfg.JoinConcurrency,
		Push:            cfg.PushOnExpiry,
	}

	return &app{
		gateway:       gw,
		users:         users,
		reports:       report.NewReportService(txs, lookups, config.ReportLocation()),
		notifications: notifier,
		provisioner:   provisioning.NewProvisioner(users),
		runner: &tasks.Runner{
			Expiry:  scanner,
			Purge:   retention.NewPurger(notifs, cfg.RetentionDays),
			Timeout: cfg.JobTimeout,
		},
	}, nil
}

// authenticator picks the bearer-token verifier named by AUTH_PROVIDER.
func authenticator() (middleware.Authenticator, error) {
	switch config.AppConfig.AuthProvider {
	case "jwt":
		if config.AppConfig.JWTSecret == "" {
			return nil, fmt.Errorf("AUTH_PROVIDER=jwt requires JWT_SECRET")
		}
		return &middleware.JWTAuthenticator{Secret: []byte(config.AppConfig.JWTSecret)}, nil
	case "firebase", "":
		if utils.AuthClient == nil {
			return nil, fmt.Errorf("AUTH_PROVIDER=firebase requires a Firebase app")
		}
		return &middleware.FirebaseAuthenticator{Client: utils.AuthClient}, nil
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", config.AppConfig.AuthProvider)
	}
}
