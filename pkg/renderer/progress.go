package renderer

import (
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// progressReporter logs completed scanlines on a ticker. The counts are
// best effort and never affect the render itself.
type progressReporter struct {
	total    int64
	done     atomic.Int64
	interval time.Duration
	logger   core.Logger
	stop     chan struct{}
	finished chan struct{}
}

func newProgressReporter(total int, interval time.Duration, logger core.Logger) *progressReporter {
	return &progressReporter{
		total:    int64(total),
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// rowDone records one finished scanline; safe for concurrent use
func (p *progressReporter) rowDone() {
	p.done.Add(1)
}

func (p *progressReporter) start() {
	start := time.Now()
	go func() {
		defer close(p.finished)
		if p.interval <= 0 {
			<-p.stop
			return
		}

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				d := p.done.Load()
				if d > 0 {
					elapsed := time.Since(start).Seconds()
					p.logger.Printf("Scanlines remaining: %d (%.1f rows/sec)\n", p.total-d, float64(d)/elapsed)
				}
			}
		}
	}()
}

// close stops the ticker and waits for the reporting goroutine to exit
func (p *progressReporter) close() {
	close(p.stop)
	<-p.finished
}
