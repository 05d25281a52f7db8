package headers

import (
	"regexp"
	"strconv"
	"time"
)

var reCopyright = regexp.MustCompile(`(?m)^#\s*Copyright\s+(\d+)(?:-(\d+))?(?:$|\s)`)

// CopyrightRange is the span of years in a "# Copyright BEGIN-END ..." line.
type CopyrightRange struct {
	Begin int
	End   int
}

// ExtractCopyright returns the years of the first copyright line of the header.  A missing end
// year is `now`'s year.  If there is no copyright line, both years are `now`'s year and ok is
// false; the same goes for a copyright line whose years don't fit in an int.
func ExtractCopyright(header string, now time.Time) (rng CopyrightRange, ok bool) {
	year := now.Year()
	missing := CopyrightRange{Begin: year, End: year}
	match := reCopyright.FindStringSubmatch(header)
	if match == nil {
		return missing, false
	}
	var err error
	if rng.Begin, err = strconv.Atoi(match[1]); err != nil {
		return missing, false
	}
	rng.End = year
	if match[2] != "" {
		if rng.End, err = strconv.Atoi(match[2]); err != nil {
			return missing, false
		}
	}
	return rng, true
}
