package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
	"github.com/custodia-labs/entigraph/internal/core/ports/driving"
	"github.com/custodia-labs/entigraph/internal/logger"
)

// Ensure CollectService implements the interface.
var _ driving.Collector = (*CollectService)(nil)

// CollectService pulls v1 and v2 snapshots from each environment and
// persists them.
type CollectService struct {
	clients      driven.ClientFactory
	store        driven.SnapshotStore
	environments []domain.Environment
	settings     domain.CollectSettings
}

// NewCollectService creates a collect service.
func NewCollectService(
	clients driven.ClientFactory,
	store driven.SnapshotStore,
	environments []domain.Environment,
	settings domain.CollectSettings,
) *CollectService {
	return &CollectService{
		clients:      clients,
		store:        store,
		environments: environments,
		settings:     settings,
	}
}

// Collect runs collection for a single environment.
func (s *CollectService) Collect(
	ctx context.Context,
	env domain.Environment,
	opts driving.CollectOptions,
) (*driving.CollectReport, error) {
	report := &driving.CollectReport{RunID: uuid.NewString()}
	if err := s.collect(ctx, env, opts, report); err != nil {
		return report, err
	}
	return report, nil
}

// CollectAll runs collection for every configured environment in order.
func (s *CollectService) CollectAll(ctx context.Context, opts driving.CollectOptions) (*driving.CollectReport, error) {
	if len(s.environments) == 0 {
		return nil, fmt.Errorf("%w: no environments configured", domain.ErrMissingConfig)
	}

	report := &driving.CollectReport{RunID: uuid.NewString()}
	for _, env := range s.environments {
		if err := s.collect(ctx, env, opts, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// collect fetches every selected type from env, v1 first then v2, and
// appends each written snapshot to report.
func (s *CollectService) collect(
	ctx context.Context,
	env domain.Environment,
	opts driving.CollectOptions,
	report *driving.CollectReport,
) error {
	for _, t := range opts.EntityTypes {
		if !t.IsValid() {
			return fmt.Errorf("%w: entity type %q", domain.ErrUnsupportedType, t)
		}
	}

	logger.Section("Collecting from " + env.Name)

	client, err := s.clients.Create(ctx, env, s.settings)
	if err != nil {
		return fmt.Errorf("environment %s: %w", env.Name, err)
	}

	types := orderedTypes(opts.EntityTypes)

	for _, t := range types {
		dataType := domain.DataTypeName(t, domain.APIv1)
		logger.Info("Fetching %s data (v1) for %s", t, env.Name)

		items, err := client.FetchV1(ctx, t, logPage)
		if err != nil {
			return fmt.Errorf("environment %s: fetch %s: %w", env.Name, dataType, err)
		}
		if err := s.write(ctx, env, dataType, items, len(items), report); err != nil {
			return err
		}
	}

	for _, t := range types {
		dataType := domain.DataTypeName(t, domain.APIv2)
		logger.Info("Fetching %s data (v2) for %s", t, env.Name)

		collection, err := client.FetchV2(ctx, t, logPage)
		if err != nil {
			return fmt.Errorf("environment %s: fetch %s: %w", env.Name, dataType, err)
		}
		if err := s.write(ctx, env, dataType, collection, len(collection.Entities), report); err != nil {
			return err
		}
	}

	return nil
}

func (s *CollectService) write(
	ctx context.Context,
	env domain.Environment,
	dataType string,
	content any,
	records int,
	report *driving.CollectReport,
) error {
	path, err := s.store.WriteSnapshot(ctx, env.Name, dataType, content)
	if err != nil {
		return fmt.Errorf("environment %s: write %s: %w", env.Name, dataType, err)
	}
	logger.Info("Saved %s (%d records)", path, records)

	report.Snapshots = append(report.Snapshots, domain.SnapshotRecord{
		Environment: env.Name,
		DataType:    dataType,
		Path:        path,
		Records:     records,
	})
	return nil
}

// orderedTypes returns the selected types in collection order without
// duplicates. An empty selection means the defaults.
func orderedTypes(selected []domain.EntityType) []domain.EntityType {
	if len(selected) == 0 {
		return domain.DefaultEntityTypes()
	}
	want := make(map[domain.EntityType]bool, len(selected))
	for _, t := range selected {
		want[t] = true
	}
	var out []domain.EntityType
	for _, t := range domain.AllEntityTypes() {
		if want[t] {
			out = append(out, t)
		}
	}
	return out
}

func logPage(label string, page, records int) {
	logger.Info("%s: page %d returned %d records", label, page, records)
}
