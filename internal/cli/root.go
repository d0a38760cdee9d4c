package cli

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"msgboard/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

// NewRootCommand creates the root command for the message board.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "msgboard",
		Short:         "Message board API server",
		Long:          "A JSON API for creating, reading, updating and deleting message board posts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// loadConfig reads the dotenv file, if any, then the environment.
func loadConfig(opts *RootOptions) config.Config {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			log.Printf("⚠️  %s not loaded, using environment and defaults: %v", opts.EnvFile, err)
		}
	}
	return config.Load()
}
