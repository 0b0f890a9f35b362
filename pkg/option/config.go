// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package option

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cilium/ipcolumn/pkg/logging"
	"github.com/cilium/ipcolumn/pkg/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "option")

// Configuration keys. Each key is both the command line flag name and the
// viper key; the environment variable is derived with getEnvName.
const (
	// StrictNetworks rejects network text with host bits set
	StrictNetworks = "strict-networks"

	// FactorizeNASentinel is the label given to missing elements when
	// factorizing through an accessor
	FactorizeNASentinel = "factorize-na-sentinel"

	// PartitionWorkers is the number of workers used to process partitions
	PartitionWorkers = "partition-workers"

	// LogLevel is the logging level
	LogLevel = "log-level"

	// LogFormat is the logging format, text or json
	LogFormat = "log-format"

	// LogFile is a rotated file receiving the log output instead of stderr
	LogFile = "log-file"

	// DebugArg enables debug logging and overrides LogLevel
	DebugArg = "debug"

	// EnvPrefix is the prefix of all environment variables
	EnvPrefix = "IPCOLUMN"
)

// Defaults
const (
	DefaultStrictNetworks      = true
	DefaultFactorizeNASentinel = -1
)

// ColumnConfig is the configuration shared by the address column packages.
type ColumnConfig struct {
	StrictNetworks      bool   `mapstructure:"strict-networks"`
	FactorizeNASentinel int    `mapstructure:"factorize-na-sentinel"`
	PartitionWorkers    int    `mapstructure:"partition-workers"`
	LogLevel            string `mapstructure:"log-level"`
	LogFormat           string `mapstructure:"log-format"`
	LogFile             string `mapstructure:"log-file"`
	Debug               bool   `mapstructure:"debug"`
}

// Config is the process-wide configuration. Packages read it when the caller
// does not pass an explicit configuration.
var Config = DefaultConfig()

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *ColumnConfig {
	return &ColumnConfig{
		StrictNetworks:      DefaultStrictNetworks,
		FactorizeNASentinel: DefaultFactorizeNASentinel,
		PartitionWorkers:    runtime.NumCPU(),
		LogLevel:            logging.DefaultLogLevel.String(),
		LogFormat:           string(logging.DefaultLogFormat),
	}
}

// Flags registers all configuration flags with their default values.
func (c *ColumnConfig) Flags(flags *pflag.FlagSet) {
	flags.Bool(StrictNetworks, c.StrictNetworks, "Reject networks with host bits set")
	flags.Int(FactorizeNASentinel, c.FactorizeNASentinel, "Label assigned to missing elements by factorize")
	flags.Int(PartitionWorkers, c.PartitionWorkers, "Number of workers processing column partitions")
	flags.String(LogLevel, c.LogLevel, "Logging level")
	flags.String(LogFormat, c.LogFormat, "Logging format (text, json)")
	flags.String(LogFile, c.LogFile, "Write logs to this file, rotated by size")
	flags.Bool(DebugArg, c.Debug, "Enable debugging mode")
}

// BindEnv binds every configuration key to its environment variable.
func BindEnv(vp *viper.Viper) {
	for _, key := range []string{StrictNetworks, FactorizeNASentinel, PartitionWorkers, LogLevel, LogFormat, LogFile, DebugArg} {
		vp.BindEnv(key, getEnvName(key))
	}
}

// getEnvName returns the environment variable to be used for the given option name.
func getEnvName(option string) string {
	under := strings.Replace(option, "-", "_", -1)
	upper := strings.ToUpper(under)
	return EnvPrefix + "_" + upper
}

// Populate sets all options with the values from viper.
func (c *ColumnConfig) Populate(vp *viper.Viper) error {
	c.StrictNetworks = vp.GetBool(StrictNetworks)
	c.FactorizeNASentinel = vp.GetInt(FactorizeNASentinel)
	c.PartitionWorkers = vp.GetInt(PartitionWorkers)
	c.LogLevel = vp.GetString(LogLevel)
	c.LogFormat = vp.GetString(LogFormat)
	c.LogFile = vp.GetString(LogFile)
	c.Debug = vp.GetBool(DebugArg)

	if err := c.Validate(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		StrictNetworks:      c.StrictNetworks,
		FactorizeNASentinel: c.FactorizeNASentinel,
		PartitionWorkers:    c.PartitionWorkers,
	}).Debug("Populated configuration")
	return nil
}

// Validate checks the configuration for values no component can work with.
func (c *ColumnConfig) Validate() error {
	if c.FactorizeNASentinel >= 0 {
		return fmt.Errorf("%s must be negative, got %d", FactorizeNASentinel, c.FactorizeNASentinel)
	}
	if c.PartitionWorkers < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", PartitionWorkers, c.PartitionWorkers)
	}
	return nil
}

// LogOptions returns the logging options derived from the configuration.
func (c *ColumnConfig) LogOptions() logging.LogOptions {
	opts := logging.LogOptions{
		logging.LevelOpt:  c.LogLevel,
		logging.FormatOpt: c.LogFormat,
	}
	if c.LogFile != "" {
		opts[logging.FileOpt] = c.LogFile
	}
	return opts
}

// SetupLogging configures the default logger from the configuration.
func (c *ColumnConfig) SetupLogging() error {
	return logging.SetupLogging(c.LogOptions(), c.Debug)
}

// ReadDirConfig reads the given directory and returns a map that maps the
// filename to the contents of that file.
func ReadDirConfig(dirName string) (map[string]interface{}, error) {
	m := map[string]interface{}{}
	files, err := os.ReadDir(dirName)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("unable to read configuration directory: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		fName := filepath.Join(dirName, f.Name())

		// the file can still be a symlink to a directory
		fi, err := os.Stat(fName)
		if err != nil {
			log.WithError(err).Warnf("Unable to read configuration file %q", fName)
			continue
		}
		if fi.Mode().IsDir() {
			continue
		}

		b, err := os.ReadFile(fName)
		if err != nil {
			log.WithError(err).Warnf("Unable to read configuration file %q", fName)
			continue
		}
		m[f.Name()] = strings.TrimSpace(string(b))
	}
	return m, nil
}

// MergeConfig merges the given configuration map with viper's configuration.
func MergeConfig(vp *viper.Viper, m map[string]interface{}) error {
	err := vp.MergeConfigMap(m)
	if err != nil {
		return fmt.Errorf("unable to read merge directory configuration: %w", err)
	}
	return nil
}
