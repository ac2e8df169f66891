package debug

import (
	"os"

	"github.com/sirupsen/logrus"
)

// EnvDebug enables debug logging when set to a non-empty value.
const EnvDebug = "ICOGEN_DEBUG"

// Enable sets the ICOGEN_DEBUG env var to true
// and makes the logger to log at debug level.
func Enable() {
	os.Setenv(EnvDebug, "1")
	logrus.SetLevel(logrus.DebugLevel)
}

// Disable sets the ICOGEN_DEBUG env var to false
// and makes the logger to log at info level.
func Disable() {
	os.Setenv(EnvDebug, "")
	logrus.SetLevel(logrus.InfoLevel)
}

// IsEnabled checks whether the debug flag is set or not.
func IsEnabled() bool {
	return os.Getenv(EnvDebug) != ""
}
