package command

import (
	"icogen/cli/debug"
	cliflags "icogen/cli/flags"
	"icogen/pkg/config"
	"icogen/pkg/config/configfile"
	"icogen/pkg/progress"
	"icogen/pkg/streams"
)

// Streams is an interface which exposes the standard output streams
type Streams interface {
	Out() *streams.Out
	Err() *streams.Out
}

// Cli represents the icogen command line client.
type Cli interface {
	Streams
	ConfigFile() *configfile.ConfigFile
	Progress() *progress.Progress
	Apply(ops ...CLIOption) error
}

// IcogenCli is an instance the icogen command line client.
// Instances of the client can be returned from NewIcogenCli.
type IcogenCli struct {
	out        *streams.Out
	err        *streams.Out
	configFile *configfile.ConfigFile
	progress   *progress.Progress
}

// NewIcogenCli returns a IcogenCli instance with all operators applied on it.
// It applies by default the standard streams.
func NewIcogenCli(ops ...CLIOption) (*IcogenCli, error) {
	defaultOps := []CLIOption{
		WithStandardStreams(),
	}
	ops = append(defaultOps, ops...)

	cli := &IcogenCli{}
	if err := cli.Apply(ops...); err != nil {
		return nil, err
	}
	return cli, nil
}

// Out returns the writer used for stdout
func (cli *IcogenCli) Out() *streams.Out {
	return cli.out
}

// Err returns the writer used for stderr
func (cli *IcogenCli) Err() *streams.Out {
	return cli.err
}

// Apply all the operation on the cli
func (cli *IcogenCli) Apply(ops ...CLIOption) error {
	for _, op := range ops {
		if err := op(cli); err != nil {
			return err
		}
	}
	return nil
}

// ConfigFile returns the ConfigFile
func (cli *IcogenCli) ConfigFile() *configfile.ConfigFile {
	// Commands run without Initialize in tests.
	if cli.configFile == nil {
		cli.configFile = config.LoadDefaultConfigFile(cli.err)
	}
	return cli.configFile
}

// Progress returns the spinner shared by commands. It only animates when
// stderr is a terminal.
func (cli *IcogenCli) Progress() *progress.Progress {
	if cli.progress == nil {
		cli.progress = &progress.Progress{
			ProgressIndicatorEnabled: cli.err.IsTerminal(),
			ProgressColorEnabled:     cli.err.IsColorEnabled(),
		}
	}
	return cli.progress
}

// Initialize the icogenCli runs initialization that must happen after command
// line flags are parsed.
func (cli *IcogenCli) Initialize(opts *cliflags.ClientOptions, ops ...CLIOption) error {
	for _, o := range ops {
		if err := o(cli); err != nil {
			return err
		}
	}
	if err := cliflags.SetLogLevel(opts.LogLevel); err != nil {
		return err
	}

	if opts.ConfigDir != "" {
		config.SetDir(opts.ConfigDir)
	}

	if opts.Debug || debug.IsEnabled() {
		debug.Enable()
	}

	if cli.configFile == nil {
		cli.configFile = config.LoadDefaultConfigFile(cli.err)
	}

	return nil
}
