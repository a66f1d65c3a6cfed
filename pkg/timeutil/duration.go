// Package timeutil parses the relative windows accepted by --since, such as
// "3d" or "1w2d".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

type unit struct {
	aliases []string
	size    time.Duration
}

var units = []unit{
	{[]string{"w", "wk", "wks", "week", "weeks"}, week},
	{[]string{"d", "day", "days"}, day},
	{[]string{"h", "hr", "hrs", "hour", "hours"}, time.Hour},
	{[]string{"m", "min", "mins", "minute", "minutes"}, time.Minute},
}

var segment = regexp.MustCompile(`^(\d+)\s*([a-z]+)\s*`)

func lookup(name string) (time.Duration, bool) {
	for _, u := range units {
		for _, a := range u.aliases {
			if a == name {
				return u.size, true
			}
		}
	}
	return 0, false
}

// ParseWindow sums segments like "1w2d6h". An empty window is an error.
func ParseWindow(input string) (time.Duration, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		return 0, fmt.Errorf("empty window")
	}
	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("invalid window segment %q", rest)
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		size, ok := lookup(m[2])
		if !ok {
			return 0, fmt.Errorf("unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * size
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("window must be greater than zero")
	}
	return total, nil
}

// Since returns the start of the window ending at now.
func Since(now time.Time, window string) (time.Time, error) {
	d, err := ParseWindow(window)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
