package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hyliu/fundsync"
)

type allCmd struct {
	todayOnly bool
}

func (*allCmd) Name() string { return "all" }
func (*allCmd) Synopsis() string {
	return "run every phase: link trades, refresh valuations, write weights, recompute metrics"
}
func (*allCmd) Usage() string {
	return `fsync all [-t]

  Runs the full synchronization: trade linking, market valuation refresh,
  position weighting, and the trade-metric recomputation. This is the
  default when fsync is invoked without a command, and what a cron entry
  should run.
`
}

func (c *allCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.todayOnly, "t", false, "only link trades created today (UTC+8)")
	f.BoolVar(&c.todayOnly, "today-only", false, "alias for -t")
}

func (c *allCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := session.Run(fundsync.ModeAll, c.todayOnly); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
