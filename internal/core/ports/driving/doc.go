// Package driving defines the use cases the CLI invokes: Collector fetches
// entity snapshots from every configured environment, and TopologyService
// turns a snapshot file into a component graph, once or on every change.
//
// Implementations live in internal/core/services.
package driving
