// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"rentwatch/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FCMClient  *messaging.Client
	AuthClient *auth.Client
)

// FirebaseInit initializes the Firebase App with its Messaging and Auth clients.
func FirebaseInit(ctx context.Context) error {
	var opts []option.ClientOption
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	var fbConfig *firebase.Config
	if id := config.AppConfig.FirebaseProjectID; id != "" {
		fbConfig = &firebase.Config{ProjectID: id}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	FCMClient = msgClient
	AuthClient = authClient
	return nil
}
