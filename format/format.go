// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// CompactNumber renders a metric count the way the card displays it:
// below 1000 the plain digits, then one decimal with a "k" or "m"
// suffix. Trailing ".0" is trimmed, so 2000 is "2k", not "2.0k".
func CompactNumber(n int64) string {
	if n < 0 {
		return "-" + CompactNumber(-n)
	}

	switch {
	case n >= 1_000_000:
		return trimZero(strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64)) + "m"
	case n >= 1000:
		return trimZero(strconv.FormatFloat(float64(n)/1000, 'f', 1, 64)) + "k"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// RelativeTime renders a timestamp as "3 days ago" style text.
func RelativeTime(t time.Time) string {
	return humanize.Time(t)
}

// MetricCount renders an exact count with comma grouping ("1,234,567").
func MetricCount(n int64) string {
	return humanize.Comma(n)
}

// JoinedDate renders author membership dates ("joined January 2006").
func JoinedDate(t time.Time) string {
	return "joined " + t.Format("January 2006")
}
