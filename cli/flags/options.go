package flags

import (
	"icogen/pkg/config"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// ClientOptions are the options used to configure the client cli.
type ClientOptions struct {
	Debug     bool
	LogLevel  string
	ConfigDir string
}

// NewClientOptions returns a new ClientOptions.
func NewClientOptions() *ClientOptions {
	return &ClientOptions{}
}

// InstallFlags adds flags for the common options on the FlagSet
func (o *ClientOptions) InstallFlags(flags *pflag.FlagSet) {
	configDir := config.Dir()

	flags.StringVar(&o.ConfigDir, "config", configDir, "Location of the icogen.json config file")
	flags.BoolVarP(&o.Debug, "debug", "D", false, "Enable debug mode")
	flags.StringVarP(&o.LogLevel, "log-level", "l", "info", `Set the logging level ("debug", "info", "warn", "error", "fatal")`)
}

// SetLogLevel sets the logrus logging level
func SetLogLevel(logLevel string) error {
	if logLevel == "" {
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errors.Errorf("unable to parse logging level: %s", logLevel)
	}
	logrus.SetLevel(lvl)
	return nil
}
