package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hyliu/fundsync"
)

type positionCmd struct{}

func (*positionCmd) Name() string { return "position" }
func (*positionCmd) Synopsis() string {
	return "write each holding's portfolio weight from its cost basis"
}
func (*positionCmd) Usage() string {
	return `fsync position

  Computes every holding's share of the total cost basis and writes it
  back as a fraction between 0 and 1. When the total cost is not strictly
  positive the pass writes nothing: there is no meaningful denominator.
`
}

func (c *positionCmd) SetFlags(f *flag.FlagSet) {}

func (c *positionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := session.Run(fundsync.ModePosition, false); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
