// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - TokenProvider: Supplies and refreshes API credentials
//   - TokenProviderFactory: Builds a TokenProvider per environment
//   - EnvironmentClient: Drains the paginated v1 and v2 APIs
//   - ClientFactory: Builds an EnvironmentClient per environment
//   - EntityNormaliser: Turns raw entities into components and edges
//   - SnapshotStore: Flat-file persistence of snapshots and topologies
//   - SnapshotWatcher: Directory watching for new snapshots
//   - ConfigStore: Optional file-based configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
