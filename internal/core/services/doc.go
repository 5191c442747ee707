// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// CollectService drains every configured environment into raw snapshots.
// TopologyService and TopologyBuilder turn snapshots into topology files.
package services
