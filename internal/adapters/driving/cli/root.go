package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/entigraph/internal/core/ports/driving"
	"github.com/custodia-labs/entigraph/internal/logger"
)

// version is set at build time via -ldflags or SetVersion.
var version = "dev"

// Services used by the commands. Nil services are built on first use
// through wiring.
var (
	collector       driving.Collector
	topologyService driving.TopologyService
	wiring          Wiring
)

// Global flags.
var (
	verboseFlag bool
	configFlag  string
	envFileFlag string
)

// Options carries the global flags needed to build services.
type Options struct {
	// ConfigFile is the TOML config path. Empty means the default location.
	ConfigFile string

	// EnvFile is the dotenv file path. Empty means ./.env when present.
	EnvFile string

	// DryRun keeps snapshots in memory instead of writing files.
	DryRun bool
}

// Wiring builds the services behind the commands. Collection needs
// environment credentials while topology does not, so they are built
// separately.
type Wiring interface {
	Collector(opts Options) (driving.Collector, error)
	Topology(opts Options) (driving.TopologyService, error)
}

var rootCmd = &cobra.Command{
	Use:   "entigraph",
	Short: "Collect monitoring entities and build topology graphs",
	Long: `entigraph pulls process, process-group and host entities from one or more
monitoring environments, stores them as raw JSON snapshots, and turns
snapshots into a normalised topology of components and relationships.

Environments and credentials are read from the environment and an optional
.env file. Query settings may also come from a TOML config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.entigraph/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "Dotenv file (default ./.env)")
}

// SetWiring registers how services are built when a command first needs them.
func SetWiring(w Wiring) {
	wiring = w
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func globalOptions() Options {
	return Options{
		ConfigFile: configFlag,
		EnvFile:    envFileFlag,
	}
}

func ensureCollector() error {
	if collector != nil {
		return nil
	}
	if wiring == nil {
		return errors.New("collect service not configured")
	}
	opts := globalOptions()
	opts.DryRun = collectDryRun
	c, err := wiring.Collector(opts)
	if err != nil {
		return err
	}
	collector = c
	return nil
}

func ensureTopologyService() error {
	if topologyService != nil {
		return nil
	}
	if wiring == nil {
		return errors.New("topology service not configured")
	}
	s, err := wiring.Topology(globalOptions())
	if err != nil {
		return err
	}
	topologyService = s
	return nil
}
