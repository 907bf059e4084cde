package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hyliu/fundsync"
)

type marketCmd struct{}

func (*marketCmd) Name() string { return "market" }
func (*marketCmd) Synopsis() string {
	return "refresh every holding's market valuation from the feeds"
}
func (*marketCmd) Usage() string {
	return `fsync market

  Fetches each holding's live estimated valuation from the fundgz feed,
  falling back to the eastmoney historical NAV when the estimate is
  unavailable, and writes the result back to the holdings database. A
  holding whose valuation could not be resolved is marked with a failure
  source label instead of being skipped silently.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {}

func (c *marketCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := session.Run(fundsync.ModeMarket, false); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
