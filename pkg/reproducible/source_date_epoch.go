// Package reproducible provides the notion of "now" used when stamping copyright years, so that
// regenerated headers can be pinned with SOURCE_DATE_EPOCH.
package reproducible

import (
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	nowOnce sync.Once
	now     time.Time
)

// Now returns the time given by $SOURCE_DATE_EPOCH, or the wall-clock time if that is unset or
// invalid.  The value is computed once per process.
func Now() time.Time {
	nowOnce.Do(func() {
		now = fromEnv(os.Getenv("SOURCE_DATE_EPOCH"), time.Now)
	})
	return now
}

func fromEnv(val string, fallback func() time.Time) time.Time {
	secs, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback()
	}
	return time.Unix(secs, 0).UTC()
}

// Fixed returns a clock that always reports the given calendar year, for pinning the copyright
// end year.
func Fixed(year int) func() time.Time {
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		return t
	}
}
