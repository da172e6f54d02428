package metrics

import (
	"time"
)

// RecordFeedFetch records the outcome of a provider fetch.
// Outcome should be "success", "failure" or "stale".
func RecordFeedFetch(operation, outcome string) {
	FeedFetchesTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordFeedFetchDuration records how long the provider took to answer.
func RecordFeedFetchDuration(operation string, d time.Duration) {
	FeedFetchDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordTriggerDropped records a trigger that was ignored.
func RecordTriggerDropped(operation, reason string) {
	FeedTriggersDroppedTotal.WithLabelValues(operation, reason).Inc()
}

// RecordMerge records how many records a merge added and how many it skipped.
func RecordMerge(placement string, added, skipped int) {
	if added > 0 {
		FeedRecordsMergedTotal.WithLabelValues(placement).Add(float64(added))
	}
	if skipped > 0 {
		FeedDuplicatesSkippedTotal.Add(float64(skipped))
	}
}

// RecordStaleResult records a fetch result that arrived after reset or close.
func RecordStaleResult() {
	FeedStaleResultsTotal.Inc()
}

// UpdateRecordsLoaded sets the number of records held by the feed.
func UpdateRecordsLoaded(n int) {
	FeedRecordsLoaded.Set(float64(n))
}

// RecordAutoRefreshTick records one auto-refresh timer tick.
func RecordAutoRefreshTick() {
	AutoRefreshTicksTotal.Inc()
}
