package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

var (
	tokenEmail string
	tokenTTL   time.Duration
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim for the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
}

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint an access token for local testing",
	Long: `Sign an access token with SUPABASE_JWT_SECRET, the same secret the
server verifies against. Useful against a local server without going
through the hosted sign-in flow.

Examples:
  contentctl token 0b6c7a52-7f5e-4c55-9a8e-3f2a4d1c9e10 --email dev@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Supabase.JWTSecret == "" {
		return errors.New("SUPABASE_JWT_SECRET is not set")
	}

	token, err := utils.GenerateAccessToken(userID, tokenEmail, cfg.Supabase.JWTSecret, tokenTTL)
	if err != nil {
		return err
	}
	cmd.Println(token)
	return nil
}
