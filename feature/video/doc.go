// Package video implements the video asset reconciliation feature.
//
// It keeps a library of video asset records converged with the state the
// transcoding provider reports, through three cooperating paths:
//  1. Webhook ingestion: verified provider events drive a pure state machine
//     and are persisted with optimistic concurrency (see webhook and state).
//  2. Sweep reconciliation: a bulk comparison against the provider's asset
//     list that catches lost webhooks, orphans and stuck records (see
//     reconcile).
//  3. Identifier repair: re-keys records created under a local id before the
//     provider asset id was known (see reconcile).
//
// # Components
//
//   - Service: Wires the ingestor, sweeper and repairer on one store.
//   - Handler: Exposes HTTP endpoints for ingestion and maintenance.
//   - Feature: Registers the feature with the application loader.
//
// # HTTP Endpoints
//
//   - POST /video/webhook : Ingest one provider event (signature-verified).
//   - POST /video/sweep : Reconcile all records against the provider.
//   - POST /video/sweep/:id : Reconcile a single record.
//   - POST /video/repair : Re-key miskeyed records.
package video
