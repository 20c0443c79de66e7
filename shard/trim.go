package shard

import (
	"math"
	"runtime"
	"runtime/debug"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dreamware/internpool"
)

// pressureLevel is the host memory-pressure reading the trim scheduler
// reacts to (spec §4.4 step 2).
type pressureLevel int

const (
	pressureLow pressureLevel = iota
	pressureMedium
	pressureHigh
)

const (
	highPressureRatio   = 0.90
	mediumPressureRatio = 0.70
)

func defaultLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// gcSentinel is a deliberately unreferenced object: once it becomes
// unreachable, its finalizer fires on the next GC sweep, narrates that
// sweep to the trimmer, and arms a fresh sentinel for the next one. This
// is the standard Go idiom for "tell me when a GC happened" in the
// absence of a generational-collector callback API (spec §4.4 "registers
// a one-shot handle with the host memory-collector").
type gcSentinel struct{}

// trimmer is the sharded pool's background trim scheduler (spec §4.4).
type trimmer struct {
	logger *zap.SugaredLogger

	trimming         atomic.Bool
	collectionsCount atomic.Int64
	stopped          atomic.Bool
}

func (tr *trimmer) start(p *Pool) {
	tr.arm(p)
}

func (tr *trimmer) stop() {
	tr.stopped.Store(true)
}

// arm registers one gcSentinel whose finalizer performs the scheduler's
// work and then re-arms itself for the next sweep, unless the trimmer has
// been stopped.
func (tr *trimmer) arm(p *Pool) {
	sentinel := &gcSentinel{}
	runtime.SetFinalizer(sentinel, func(*gcSentinel) {
		if tr.stopped.Load() {
			return
		}
		go tr.onGCSweep(p)
		tr.arm(p)
	})
}

// onGCSweep is the work item enqueued once per generational sweep (spec
// §4.4). It guards against re-entry, measures pressure, and either
// detaches every shard (high pressure) or cycles one trim level across
// shards (medium/low pressure).
func (tr *trimmer) onGCSweep(p *Pool) {
	if !tr.trimming.CompareAndSwap(false, true) {
		return
	}
	defer tr.trimming.Store(false)

	level := currentPressure()
	switch level {
	case pressureHigh:
		tr.logger.Warnw("memory pressure high, detaching shard tables", "ratio", "high")
		for i := range p.shards {
			p.shards[i].detach()
		}
	default:
		trimLevel := internpool.TrimLevel(tr.collectionsCount.Load() % 3)
		tr.logger.Debugw("trimming shards", "level", trimLevel, "pressure", level)
		for i := range p.shards {
			s := &p.shards[i]
			if t := s.table.Load(); t != nil {
				s.mu.Lock()
				t.Trim(trimLevel)
				s.mu.Unlock()
			}
		}
	}
	tr.collectionsCount.Add(1)
}

// currentPressure estimates host memory pressure as the ratio of live
// heap bytes to the applicable ceiling: the process's soft memory limit
// if one is configured (debug.SetMemoryLimit), else the runtime's next-GC
// target as a proxy for "how full is the heap allowed to get before the
// next collection" (spec §4.4 step 2).
func currentPressure() pressureLevel {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	ceiling := debug.SetMemoryLimit(-1)
	var ratio float64
	switch {
	case ceiling > 0 && ceiling != math.MaxInt64:
		ratio = float64(ms.HeapAlloc) / float64(ceiling)
	case ms.NextGC > 0:
		ratio = float64(ms.HeapAlloc) / float64(ms.NextGC)
	}

	switch {
	case ratio >= highPressureRatio:
		return pressureHigh
	case ratio >= mediumPressureRatio:
		return pressureMedium
	default:
		return pressureLow
	}
}
