package templates

import (
	"time"

	"github.com/dustin/go-humanize"
)

type Row struct {
	Name      string
	Listeners int
	Avg       time.Duration
	Min       time.Duration
	P75       time.Duration
	P99       time.Duration
	Max       time.Duration
}

func listenerCount(n int) string {
	return humanize.Comma(int64(n))
}

// perListener spreads d over the listeners that were notified.
func perListener(d time.Duration, listeners int) string {
	if listeners <= 0 {
		return d.String()
	}
	return (d / time.Duration(listeners)).String()
}
