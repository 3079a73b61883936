package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blackwell-systems/enigma/keyexpr"
	"github.com/blackwell-systems/enigma/machine"
	"github.com/blackwell-systems/enigma/registry"
)

// configEnv names the registry file when --config is not given.
const configEnv = "ENIGMA_CONFIG"

// errCheckFailed is returned after a failing report has been printed.
var errCheckFailed = errors.New("check failed")

// app carries the global flags and the logger shared by subcommands.
type app struct {
	configPath string
	key        string
	verbose    bool

	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "enigma",
		Short: "Rotor cipher machine emulator",
		Long: `enigma emulates a rotor cipher machine: up to eight wheels, a reflector and
a notch-driven stepping chain. Encoding is its own inverse; run the output
through a machine with the same starting key to get the text back.

Without --config the canonical eight-wheel preset is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	a.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newEncodeCmd(a),
		newDemoCmd(a),
		newCheckCmd(a),
		newWheelsCmd(a),
	)
	return root
}

func (a *app) bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&a.configPath, "config", "c", "", "machine registry YAML (default $"+configEnv+", else the built-in preset)")
	fs.StringVarP(&a.key, "key", "k", "", `daily key, e.g. "V I VII @ F R X"`)
	fs.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
}

// loadRegistry loads the configured registry, or the preset when none is set.
func (a *app) loadRegistry() (*registry.Registry, string, error) {
	path := a.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return registry.Default(), "built-in preset", nil
	}
	reg, err := registry.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return reg, path, nil
}

// newMachine builds a machine in its starting state from the registry and the
// --key flag. Each call returns a fresh machine, which is how replays work.
func (a *app) newMachine(reg *registry.Registry) (*machine.Machine, error) {
	m, err := reg.Machine(machine.WithLogger(a.log()))
	if err != nil {
		return nil, fmt.Errorf("registry %q: %w", reg.Name, err)
	}
	if a.key != "" {
		key, err := keyexpr.Parse(a.key)
		if err != nil {
			return nil, fmt.Errorf("parse key: %w", err)
		}
		if err := key.Apply(m, reg.Names(), len(reg.Wheels)); err != nil {
			return nil, err
		}
	}
	a.log().Debug("machine configured",
		zap.String("registry", reg.Name),
		zap.Ints("order", m.Order()),
		zap.Ints("positions", m.Positions()))
	return m, nil
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}
