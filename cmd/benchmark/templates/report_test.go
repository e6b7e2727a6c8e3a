package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	out := Report("Cell FireChanged", 1000, []Row{
		{Name: "sync: 10 listeners", Listeners: 10, Avg: 20 * time.Microsecond, Max: time.Millisecond},
		{Name: "debounced: 1000 listeners", Listeners: 1000, Avg: time.Millisecond},
	})

	assert.Contains(t, out, "# Cell FireChanged")
	assert.Contains(t, out, "1,000 FireChanged calls per row.")
	assert.Contains(t, out, "| sync: 10 listeners | 10 | 20µs | 2µs | 0s | 0s | 0s | 1ms |")
	assert.Contains(t, out, "| debounced: 1000 listeners | 1,000 | 1ms | 1µs |")
}

func TestPerListener(t *testing.T) {
	assert.Equal(t, "5ms", perListener(10*time.Millisecond, 2))
	assert.Equal(t, "10ms", perListener(10*time.Millisecond, 0))
}
