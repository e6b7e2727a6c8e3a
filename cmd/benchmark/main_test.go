package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCounts(t *testing.T) {
	counts, err := parseCounts("1, 10,100")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 10, 100}, counts)

	_, err = parseCounts("ten")
	assert.Error(t, err)

	_, err = parseCounts("")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	for _, kind := range []string{"sync", "debounced"} {
		row, err := run(kind, 3, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, row.Listeners)
		assert.Equal(t, kind+": 3 listeners", row.Name)
		assert.LessOrEqual(t, row.Min, row.Max)
	}
}
