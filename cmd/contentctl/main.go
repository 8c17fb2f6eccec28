// Command contentctl runs operator tasks against the same configuration as
// the server.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saileshbalu94/ecommerce-ai/internal/config"
)

// version is set with -ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "contentctl",
	Short: "Operator commands for the content generation backend",
	Long: `contentctl performs one-off maintenance against the backend's database
and storage. It reads the same environment (and .env file) as the server.`,
	Version:       version,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version)
	},
}

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, config.NewLogger(cfg), nil
}
