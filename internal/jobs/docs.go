// Package jobs provides scheduled background tasks for the parcel logistics
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the shipment lifecycle requires.
//
// # Available Jobs
//
// 1. WebhookDeliveryJob - claims and pushes due webhook delivery records
// 2. OutboxRelayJob - re-dispatches accepted events whose reactions did not all complete
// 3. SLAMonitorJob - alerts on shipments that exceeded their elapsed-time budget
// 4. ConsolidationLockJob - closes consolidation batches past their cutoff
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		deliverWebhooksHandler, relayOutboxHandler, sweepSLAHandler, lockConsolidationsHandler, logger,
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Concurrency
//
// Every sweep is safe to run while another instance runs the same sweep: the
// hot paths are single conditional writes (version compare-and-swap, breach
// marker insert, lock guard, delivery claim), so two overlapping runs agree
// on one winner per record and the loser finds nothing to do.
//
// # Error Handling
//
// Job callbacks log failures and return; a failed tick never stops the
// schedule. Per-record failures inside a pass are logged with the record's
// identifiers and do not abort the rest of the pass.
package jobs
