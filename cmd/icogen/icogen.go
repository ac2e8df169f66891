package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"icogen/cli"
	"icogen/cli/command"
	"icogen/cli/command/convert"
	"icogen/pkg/output"

	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string, ops ...command.CLIOption) int {
	icogenCli, err := command.NewIcogenCli(ops...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newIcogenCommand(icogenCli)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		out := output.New(icogenCli.Out(), icogenCli.Err())
		out.PrettyErrorln(output.Styled("✘", err.Error(), aec.RedF))

		var statusErr command.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode != 0 {
			return statusErr.StatusCode
		}
		return 1
	}
	return 0
}

func newIcogenCommand(icogenCli *command.IcogenCli) *cobra.Command {
	cmd := convert.NewConvertCommand(icogenCli)
	opts := cli.SetupRootCommand(cmd)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return icogenCli.Initialize(opts)
	}

	return cmd
}
