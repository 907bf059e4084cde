// Package cmd implements the CLI surface of the fsync tool.
package cmd

import (
	"fmt"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/hyliu/fundsync"
	"github.com/hyliu/fundsync/eastmoney"
	"github.com/hyliu/fundsync/notion"
)

// Register the subcommands.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&allCmd{}, "sync")
	c.Register(&linkCmd{}, "sync")
	c.Register(&marketCmd{}, "sync")
	c.Register(&positionCmd{}, "sync")

	c.Register(&topicCmd{}, "documentation")
}

// openSession loads the configuration from the environment (and an optional
// .env file, so cron deployments can keep settings next to the binary) and
// wires the live collaborators.
func openSession() (*fundsync.Session, error) {
	// a missing .env is fine, the environment may carry everything
	_ = godotenv.Load()

	cfg := fundsync.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return fundsync.NewSession(cfg, notion.NewClient(cfg.Token), eastmoney.NewResolver()), nil
}
