package arena

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// InUse returns the number of bytes below the cursor, alignment padding and
// leaked blocks included.
func (a *LinearAllocator) InUse() int {
	if a.block == nil {
		return 0
	}
	return a.cursor
}

// Committed returns the number of bytes backed by physical memory.
func (a *LinearAllocator) Committed() int {
	if a.block == nil {
		return 0
	}
	return a.block.Load()
}

// Capacity returns the size of the reservation in bytes.
func (a *LinearAllocator) Capacity() int {
	if a.block == nil {
		return 0
	}
	return a.block.Capacity()
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
func (a *LinearAllocator) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.InUse()) / float64(capacity)
}

// Metrics returns a snapshot of allocator statistics.
func (a *LinearAllocator) Metrics() ArenaMetrics {
	return ArenaMetrics{
		InUse:          a.InUse(),
		Committed:      a.Committed(),
		Capacity:       a.Capacity(),
		Utilization:    a.Utilization(),
		Allocations:    a.stats.allocations,
		InPlaceResizes: a.stats.inPlaceResizes,
		Moves:          a.stats.moves,
		Leaked:         a.stats.leaked,
		CommitFailures: a.stats.commitFailures,
	}
}

// ArenaMetrics contains statistical information about a linear allocator.
type ArenaMetrics struct {
	InUse          int     // Bytes below the cursor
	Committed      int     // Bytes backed by physical memory
	Capacity       int     // Bytes of reserved address space
	Utilization    float64 // InUse / Capacity
	Allocations    uint64  // Fresh blocks handed out
	InPlaceResizes uint64  // Tail blocks resized without moving
	Moves          uint64  // Blocks copied to a new location
	Leaked         uint64  // Bytes unreachable until the next rollback
	CommitFailures uint64  // Allocations refused for lack of memory
}

// Metrics exports allocator statistics to prometheus. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	cursor         prometheus.Gauge
	committed      prometheus.Gauge
	capacity       prometheus.Gauge
	allocations    prometheus.Counter
	inPlaceResizes prometheus.Counter
	moves          prometheus.Counter
	leakedBytes    prometheus.Counter
	commitFailures prometheus.Counter
}

// NewMetrics creates the metrics of the allocator called name and registers
// them with reg, which may be nil. Metrics already registered under the same
// name are reused.
func NewMetrics(reg prometheus.Registerer, name string) (*Metrics, error) {
	labels := prometheus.Labels{"arena": name}
	gauge := func(metric, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		})
	}
	counter := func(metric, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		})
	}

	m := &Metrics{
		cursor:         gauge("arena_cursor_bytes", "Bytes below the allocation cursor."),
		committed:      gauge("arena_committed_bytes", "Bytes of committed memory."),
		capacity:       gauge("arena_capacity_bytes", "Bytes of reserved address space."),
		allocations:    counter("arena_allocations_total", "Total number of fresh blocks allocated."),
		inPlaceResizes: counter("arena_in_place_resizes_total", "Total number of blocks resized in place."),
		moves:          counter("arena_moves_total", "Total number of blocks moved on resize."),
		leakedBytes:    counter("arena_leaked_bytes_total", "Total bytes left unreachable until rollback."),
		commitFailures: counter("arena_commit_failures_total", "Total number of allocations refused because memory could not be committed."),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.cursor, err = register(reg, m.cursor); err != nil {
		return nil, err
	}
	if m.committed, err = register(reg, m.committed); err != nil {
		return nil, err
	}
	if m.capacity, err = register(reg, m.capacity); err != nil {
		return nil, err
	}
	if m.allocations, err = register(reg, m.allocations); err != nil {
		return nil, err
	}
	if m.inPlaceResizes, err = register(reg, m.inPlaceResizes); err != nil {
		return nil, err
	}
	if m.moves, err = register(reg, m.moves); err != nil {
		return nil, err
	}
	if m.leakedBytes, err = register(reg, m.leakedBytes); err != nil {
		return nil, err
	}
	if m.commitFailures, err = register(reg, m.commitFailures); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Wrap(err, "register arena metrics")
	}
	return c, nil
}

func (m *Metrics) observe(a *LinearAllocator) {
	if m == nil {
		return
	}
	m.cursor.Set(float64(a.InUse()))
	m.committed.Set(float64(a.Committed()))
	m.capacity.Set(float64(a.Capacity()))
}

func (m *Metrics) allocation() {
	if m != nil {
		m.allocations.Inc()
	}
}

func (m *Metrics) inPlaceResize() {
	if m != nil {
		m.inPlaceResizes.Inc()
	}
}

func (m *Metrics) move() {
	if m != nil {
		m.moves.Inc()
	}
}

func (m *Metrics) leak(n int) {
	if m != nil && n > 0 {
		m.leakedBytes.Add(float64(n))
	}
}

func (m *Metrics) commitFailure() {
	if m != nil {
		m.commitFailures.Inc()
	}
}
