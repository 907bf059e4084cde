// Command fsync synchronizes a Notion fund ledger with market data. It is
// meant to be run on a schedule; see `fsync topic readme`.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/hyliu/fundsync/cmd"
)

func main() {
	// invoked bare (the usual cron form), run the full synchronization
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "all")
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
