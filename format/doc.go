// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package format produces the display strings used by card projections.

# Compact Numbers

Metric counts shrink above 1000:

	format.CompactNumber(999)       // "999"
	format.CompactNumber(1500)      // "1.5k"
	format.CompactNumber(2_300_000) // "2.3m"

Deterministic and monotonic in magnitude for a given input.

# Timestamps

Relative phrasing for question age, via go-humanize:

	format.RelativeTime(q.CreatedAt) // "3 days ago"

Author membership dates:

	format.JoinedDate(a.JoinedAt) // "joined March 2023"

# Exact Counts

Comma grouping where the exact figure matters:

	format.MetricCount(1234567) // "1,234,567"
*/
package format
