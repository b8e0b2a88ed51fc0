// Package timeago renders compact relative timestamps ("3d", "5m") for feed items.
package timeago

import (
	"strconv"
	"time"
)

var units = []struct {
	seconds int64
	suffix  string
}{
	{31536000, "y"},
	{2592000, "mo"},
	{86400, "d"},
	{3600, "h"},
	{60, "m"},
}

// Since formats the time elapsed between t and now.
//
// A unit is used only when the elapsed time strictly exceeds one whole unit, so exactly
// 3600s renders as "60m" and 3601s as "1h". Quantities are truncated. Timestamps in the
// future render as "0s".
func Since(t, now time.Time) string {
	elapsed := int64(now.Sub(t) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	for _, u := range units {
		if elapsed > u.seconds {
			return strconv.FormatInt(elapsed/u.seconds, 10) + u.suffix
		}
	}
	return strconv.FormatInt(elapsed, 10) + "s"
}
