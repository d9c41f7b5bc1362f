package collector

import (
	"regexp"
	"strconv"
	"time"
)

var monthsWindowPattern = regexp.MustCompile(`^(\d{1,2})m$`)

// WindowRange converts a window expression into a [start, end] date range
// ending today. Accepted forms: "Xm" for the last X months (clamped to
// 1–12), the alias "1y" for "12m", and "all" for an unbounded start (zero
// time). Anything else falls back to three months.
func WindowRange(window string, today time.Time) (start, end time.Time) {
	if window == "1y" {
		window = "12m"
	}

	if m := monthsWindowPattern.FindStringSubmatch(window); m != nil {
		months, _ := strconv.Atoi(m[1])
		if months < 1 {
			months = 1
		}
		if months > 12 {
			months = 12
		}
		year, month := today.Year(), int(today.Month())-months
		for month <= 0 {
			month += 12
			year--
		}
		day := today.Day()
		if day > 28 {
			day = 28 // keep the start date valid in every month
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), today
	}

	if window == "all" {
		return time.Time{}, today
	}

	return today.AddDate(0, 0, -93), today
}
