// SPDX-License-Identifier: MIT

package propval

import "time"

// 100ns intervals between the FILETIME epoch (1601-01-01) and the Unix epoch.
const fileTimeEpochDelta = 116444736000000000

// FileTime converts a time to a Windows FILETIME (100ns ticks since
// 1601-01-01 UTC). Times before the FILETIME epoch clamp to zero.
func FileTime(t time.Time) uint64 {
	ticks := t.Unix()*10_000_000 + int64(t.Nanosecond())/100 + fileTimeEpochDelta
	if ticks < 0 {
		return 0
	}
	return uint64(ticks)
}

// FileTimeToTime converts a Windows FILETIME to a UTC time.
func FileTimeToTime(ft uint64) time.Time {
	ticks := int64(ft) - fileTimeEpochDelta
	return time.Unix(ticks/10_000_000, (ticks%10_000_000)*100).UTC()
}
