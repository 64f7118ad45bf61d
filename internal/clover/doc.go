// Package clover is the HTTP client for the Clover v3 merchant API.
//
// The client covers the two read endpoints the reporter needs: the bulk batch
// listing (fetched once per month with a bounded page size and filtered
// locally by creation time) and the single-batch detail lookup. All requests
// carry a bearer token and are never retried.
//
// Fetch failures on the two batch operations degrade rather than fail: the
// error is logged and an empty result returned, so an unreachable API reports
// as a month with no activity.
//
// Example usage:
//
//	client := clover.NewClient(cfg.BaseURL, cfg.MerchantID, cfg.AccessToken)
//
//	// All batches created in June 2025, local time.
//	batches := client.MonthBatches(ctx, 2025, time.June)
//
//	// One batch by id.
//	batch := client.BatchDetail(ctx, "S0M3BATCHID")
package clover
