package main

import (
	"time"

	"github.com/custodia-labs/entigraph/internal/adapters/driven/auth"
	"github.com/custodia-labs/entigraph/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/entigraph/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/entigraph/internal/adapters/driven/watch"
	"github.com/custodia-labs/entigraph/internal/adapters/driving/cli"
	"github.com/custodia-labs/entigraph/internal/config"
	"github.com/custodia-labs/entigraph/internal/connectors/dynatrace"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
	"github.com/custodia-labs/entigraph/internal/core/ports/driving"
	"github.com/custodia-labs/entigraph/internal/core/services"
	"github.com/custodia-labs/entigraph/internal/logger"
	"github.com/custodia-labs/entigraph/internal/normalisers/entity"
)

// Verify interface compliance.
var _ cli.Wiring = (*wiring)(nil)

// wiring builds services from configuration on demand.
type wiring struct {
	now func() time.Time
}

func newWiring() *wiring {
	return &wiring{now: time.Now}
}

// Collector loads configuration, resolves every environment and returns a
// collect service writing to the configured output directory, or to memory
// for a dry run.
func (w *wiring) Collector(opts cli.Options) (driving.Collector, error) {
	cfg, err := config.Load(opts.ConfigFile, opts.EnvFile)
	if err != nil {
		return nil, err
	}

	environments, err := cfg.Environments()
	if err != nil {
		return nil, err
	}

	var store driven.SnapshotStore
	if opts.DryRun {
		store = memory.NewSnapshotStore(cfg.OutputDir, w.now)
		logger.Debug("Dry run: snapshots are kept in memory")
	} else {
		fileStore, err := jsonfile.New(cfg.OutputDir, jsonfile.WithClock(w.now))
		if err != nil {
			return nil, err
		}
		store = fileStore
	}

	logger.Debug("Configured %d environments, output to %s", len(environments), cfg.OutputDir)

	clients := dynatrace.NewFactory(auth.NewFactory(auth.WithClock(w.now)))
	return services.NewCollectService(clients, store, environments, cfg.Settings), nil
}

// Topology returns a topology service. It needs no credentials.
func (w *wiring) Topology(opts cli.Options) (driving.TopologyService, error) {
	cfg, err := config.Load(opts.ConfigFile, opts.EnvFile)
	if err != nil {
		return nil, err
	}

	store, err := jsonfile.New(cfg.OutputDir, jsonfile.WithClock(w.now))
	if err != nil {
		return nil, err
	}

	builder := services.NewTopologyBuilder(entity.New(), w.now)
	return services.NewTopologyService(store, watch.New(watch.DefaultDebounce), builder), nil
}
