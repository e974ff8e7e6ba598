package cmd

import (
	"errors"
	"fmt"
	"time"

	"rentwatch/config"
	"rentwatch/utils"

	"github.com/spf13/cobra"
)

// TokenCmd mints an HS256 bearer token for AUTH_PROVIDER=jwt deployments.
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token [uid]",
		Short: "Issue a signed bearer token for a user id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap()
			ttl, _ := cmd.Flags().GetDuration("ttl")
			if config.AppConfig.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := utils.GenerateToken([]byte(config.AppConfig.JWTSecret), args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
