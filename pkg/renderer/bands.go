package renderer

import "runtime"

// Band is a contiguous range of framebuffer rows [Start, End) owned by one worker
type Band struct {
	Start int
	End   int
}

// Rows returns the number of rows in the band
func (b Band) Rows() int {
	return b.End - b.Start
}

// PartitionBands splits height rows into contiguous bands, one per worker.
// Band sizes differ by at most one row; the first height%workers bands take
// the extra rows. workers <= 0 uses runtime.NumCPU() and the count is
// clamped to [1, height].
func PartitionBands(height, workers int) []Band {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(1, min(workers, height))

	base := height / workers
	remainder := height % workers

	bands := make([]Band, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < remainder {
			size++
		}
		bands = append(bands, Band{Start: start, End: start + size})
		start += size
	}
	return bands
}
