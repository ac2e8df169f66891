package cli

import (
	"fmt"

	"icogen/cli/command"
	cliflags "icogen/cli/flags"
	"icogen/cli/version"

	"github.com/spf13/cobra"
)

// SetupRootCommand sets default usage, version, flag error handling and the
// global flags for the root command.
func SetupRootCommand(rootCmd *cobra.Command) *cliflags.ClientOptions {
	opts := cliflags.NewClientOptions()
	opts.InstallFlags(rootCmd.PersistentFlags())

	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("icogen version {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(FlagErrorFunc)

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Print usage")
	rootCmd.PersistentFlags().MarkShorthandDeprecated("help", "use --help")
	rootCmd.PersistentFlags().Lookup("help").Hidden = true

	return opts
}

// FlagErrorFunc prints an error message which matches the format of the
// icogen error messages and exits with status 125, the status used for
// invocation errors.
func FlagErrorFunc(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	return command.StatusError{
		Status:     fmt.Sprintf("%s\n\nRun '%s --help' for more information", err, cmd.CommandPath()),
		StatusCode: 125,
		Cause:      err,
	}
}
