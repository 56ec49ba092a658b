package cli

import (
	"errors"
	"fmt"
	"time"

	"go-pipelinereport/internal/utils"

	"github.com/spf13/cobra"
)

func newTokenCommand(rt *appRuntime) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the report API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rt.cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set; the report API is unauthenticated")
			}
			token, err := utils.GenerateToken(subject, rt.cfg.JWTSecret, ttl, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "report-reader", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
