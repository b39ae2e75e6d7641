// Package dedupe provides shared singleflight groups used to collapse
// concurrent duplicate work. Using a centralized singleflight.Group ensures
// only one job runs for a given key while other callers wait for the result.
package dedupe

import "golang.org/x/sync/singleflight"

// SnapshotGroup deduplicates battle snapshot loads keyed by battle id
// (e.g. "battle:42"). Polling clients share one store round-trip.
var SnapshotGroup singleflight.Group
