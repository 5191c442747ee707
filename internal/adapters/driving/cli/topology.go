package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driving"
	"github.com/custodia-labs/entigraph/internal/logger"
)

const defaultOutputSuffix = "topology"

var (
	topologyComponentType string
	topologyOutputSuffix  string
	watchOutputSuffix     string
)

var topologyCmd = &cobra.Command{
	Use:   "topology <input>",
	Short: "Build a topology file from a snapshot",
	Long: `Reads a raw snapshot (a v1 array or a v2 entities document), normalises
every entity into a component, extracts relationships and writes the
topology to the output directory (OUTPUT_DIR, default the working
directory) as <stem>_<suffix>_<unixtime>.json.

The component type is detected from the file name unless --component-type
is given. Entities that fail to normalise are logged and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runTopology,
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Build topology for new snapshots as they arrive",
	Long: `Watches a directory and builds a topology file for every new JSON snapshot
written to it. Topology outputs are ignored. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	topologyCmd.Flags().StringVar(&topologyComponentType, "component-type", "",
		"Component type (process, process-group, host, entity); detected from the file name when empty")
	topologyCmd.Flags().StringVar(&topologyOutputSuffix, "output-suffix", defaultOutputSuffix,
		"Suffix for the output file name")
	watchCmd.Flags().StringVar(&watchOutputSuffix, "output-suffix", defaultOutputSuffix,
		"Suffix for output file names")
	rootCmd.AddCommand(topologyCmd)
	rootCmd.AddCommand(watchCmd)
}

func runTopology(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseComponentKind(topologyComponentType)
	if err != nil {
		return err
	}
	if err := ensureTopologyService(); err != nil {
		return err
	}

	result, err := topologyService.BuildFile(cmd.Context(), args[0], kind, topologyOutputSuffix)
	if err != nil {
		return fmt.Errorf("topology failed: %w", err)
	}

	printTopology(newPrinter(cmd.OutOrStdout()), result)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := ensureTopologyService(); err != nil {
		return err
	}

	logger.SetTimestamps(true)
	defer logger.SetTimestamps(false)

	out := newPrinter(cmd.OutOrStdout())
	out.printf("%s %s %s\n", out.heading("Watching"), out.path(args[0]), out.muted("(Ctrl+C to stop)"))

	err := topologyService.Watch(cmd.Context(), args[0], watchOutputSuffix, func(r *driving.TopologyResult) {
		printTopology(out, r)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

func printTopology(out printer, r *driving.TopologyResult) {
	out.printf("Wrote topology to %s\n", out.path(r.OutputPath))
	if r.Topology == nil {
		return
	}
	m := r.Topology.Metadata
	out.printf("  %s components, %s relationships (%s)\n",
		out.count(m.ComponentCount), out.count(m.RelationshipCount), m.ComponentType)
}
