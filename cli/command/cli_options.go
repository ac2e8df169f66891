package command

import (
	"io"

	"icogen/pkg/config/configfile"
	"icogen/pkg/streams"

	"github.com/moby/term"
)

// CLIOption is a functional argument to apply options to a [IcogenCli]. These
// options can be passed to [NewIcogenCli] to initialize a new CLI, or
// applied with [IcogenCli.Initialize] or [IcogenCli.Apply].
type CLIOption func(cli *IcogenCli) error

// WithStandardStreams sets a cli out and err streams with the standard streams.
func WithStandardStreams() CLIOption {
	return func(cli *IcogenCli) error {
		// Set terminal emulation based on platform as required.
		_, stdout, stderr := term.StdStreams()
		cli.out = streams.NewOut(stdout)
		cli.err = streams.NewOut(stderr)
		return nil
	}
}

// WithCombinedStreams uses the same stream for the output and error streams.
func WithCombinedStreams(combined io.Writer) CLIOption {
	return func(cli *IcogenCli) error {
		s := streams.NewOut(combined)
		cli.out = s
		cli.err = s
		return nil
	}
}

// WithOutputStream sets a cli output stream.
func WithOutputStream(out io.Writer) CLIOption {
	return func(cli *IcogenCli) error {
		cli.out = streams.NewOut(out)
		return nil
	}
}

// WithErrorStream sets a cli error stream.
func WithErrorStream(err io.Writer) CLIOption {
	return func(cli *IcogenCli) error {
		cli.err = streams.NewOut(err)
		return nil
	}
}

// WithConfigFile sets the configuration used instead of loading icogen.json.
func WithConfigFile(configFile *configfile.ConfigFile) CLIOption {
	return func(cli *IcogenCli) error {
		cli.configFile = configFile
		return nil
	}
}
