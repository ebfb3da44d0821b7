package renderer

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionBands_CoversEveryRowOnce(t *testing.T) {
	tests := []struct {
		height, workers int
		expectedBands   int
	}{
		{1, 1, 1},
		{10, 3, 3},
		{10, 10, 10},
		{7, 16, 7}, // more workers than rows
		{1080, 8, 8},
		{1081, 8, 8},
		{225, 7, 7},
	}

	for _, tt := range tests {
		bands := PartitionBands(tt.height, tt.workers)
		require.Len(t, bands, tt.expectedBands, "height=%d workers=%d", tt.height, tt.workers)

		covered := make([]int, tt.height)
		next := 0
		minRows, maxRows := tt.height, 0
		for _, b := range bands {
			assert.Equal(t, next, b.Start, "bands must be contiguous")
			assert.Greater(t, b.End, b.Start, "bands must not be empty")
			for row := b.Start; row < b.End; row++ {
				covered[row]++
			}
			next = b.End
			minRows = min(minRows, b.Rows())
			maxRows = max(maxRows, b.Rows())
		}

		assert.Equal(t, tt.height, next)
		for row, n := range covered {
			assert.Equal(t, 1, n, "row %d rendered %d times", row, n)
		}
		assert.LessOrEqual(t, maxRows-minRows, 1)
	}
}

func TestPartitionBands_RemainderGoesFirst(t *testing.T) {
	bands := PartitionBands(10, 4)
	assert.Equal(t, []Band{{0, 3}, {3, 6}, {6, 8}, {8, 10}}, bands)
}

func TestPartitionBands_AutoWorkers(t *testing.T) {
	height := runtime.NumCPU() * 4
	assert.Len(t, PartitionBands(height, 0), runtime.NumCPU())
	assert.Len(t, PartitionBands(height, -2), runtime.NumCPU())
}

func TestPartitionBands_EmptyImage(t *testing.T) {
	assert.Empty(t, PartitionBands(0, 4))
}
