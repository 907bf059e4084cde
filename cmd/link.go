package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hyliu/fundsync"
)

type linkCmd struct {
	todayOnly bool
}

func (*linkCmd) Name() string { return "link" }
func (*linkCmd) Synopsis() string {
	return "link unlinked trades to their holdings, creating holdings as needed"
}
func (*linkCmd) Usage() string {
	return `fsync link [-t]

  Finds every trade that carries a fund code but no holding relation,
  matches it to the holding with the same 6-digit code (creating the
  holding when it does not exist yet), backfills fund names, and computes
  the trade's metrics. Already linked trades are never touched, so the
  command is safe to re-run.
`
}

func (c *linkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.todayOnly, "t", false, "only link trades created today (UTC+8)")
	f.BoolVar(&c.todayOnly, "today-only", false, "alias for -t")
}

func (c *linkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := session.Run(fundsync.ModeLink, c.todayOnly); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
