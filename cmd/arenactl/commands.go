package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	arena "github.com/pavanmanishd/arena/v2"
	"github.com/pavanmanishd/arena/v2/hashing"
	"github.com/pavanmanishd/arena/v2/hashset"
)

// rollbackCommand fills the arena after a checkpoint and rolls back to it.
type rollbackCommand struct {
	app *app
}

func (cmd *rollbackCommand) run(*kingpin.ParseContext) error {
	a := cmd.app.newAllocator()
	defer a.Release()

	res, err := rollback(a)
	if err != nil {
		exitWithErr(err)
	}
	bold := color.New(color.Bold)
	bold.Println("Rollback:")
	fmt.Printf("\tfilled %d objects, %v in use, %v committed\n",
		res.fillers, humanize.Bytes(uint64(res.filled.InUse)), humanize.Bytes(uint64(res.filled.Committed)))
	fmt.Printf("\tafter rollback: first=%d second=%d, %v in use\n",
		res.first, res.second, humanize.Bytes(uint64(a.InUse())))
	return nil
}

type rollbackResult struct {
	fillers       int
	filled        arena.ArenaMetrics
	first, second int64
}

func rollback(a *arena.LinearAllocator) (rollbackResult, error) {
	var res rollbackResult
	first, err := arena.New[int64](a)
	if err != nil {
		return res, errors.Wrap(err, "allocate first object")
	}
	*first = 17
	checkpoint := a.Cursor()

	for {
		p, err := arena.New[int64](a)
		if err != nil {
			if !errors.Is(err, arena.ErrOutOfMemory) {
				return res, err
			}
			break
		}
		*p = -1
		res.fillers++
	}
	res.filled = a.Metrics()

	a.ResetTo(checkpoint)
	second, err := arena.New[int64](a)
	if err != nil {
		return res, errors.Wrap(err, "allocate after rollback")
	}
	*second = 55

	res.first, res.second = *first, *second
	if res.first != 17 || res.second != 55 {
		return res, errors.Errorf("rollback corrupted live data: first=%d second=%d", res.first, res.second)
	}
	return res, nil
}

func addRollbackCommand(ka *kingpin.Application, a *app) {
	cmd := &rollbackCommand{app: a}
	ka.Command("rollback", "Fill the arena past a checkpoint, then roll back to it.").Action(cmd.run)
}

// resizeCommand grows and shrinks an array in place at the tail.
type resizeCommand struct {
	app   *app
	count int
}

func (cmd *resizeCommand) run(*kingpin.ParseContext) error {
	a := cmd.app.newAllocator()
	defer a.Release()

	if err := resize(a, cmd.count); err != nil {
		exitWithErr(err)
	}
	m := a.Metrics()
	bold := color.New(color.Bold)
	bold.Println("Resize:")
	fmt.Printf("\t%d -> %d -> %d elements, %d in-place resizes, %d moves, %v in use\n",
		cmd.count, cmd.count+1, cmd.count-1, m.InPlaceResizes, m.Moves, humanize.Bytes(uint64(m.InUse)))
	return nil
}

func resize(a arena.MemoryAllocator, count int) error {
	if count < 1 {
		return errors.Errorf("count must be positive, got %d", count)
	}
	owner, err := arena.NewArrayOwner[int64](a, count)
	if err != nil {
		return errors.Wrap(err, "allocate array")
	}
	defer owner.Destroy(a)

	for i := range owner.Slice() {
		*owner.Get(i) = int64(i)
	}
	for _, length := range []int{count + 1, count - 1} {
		if err := owner.Resize(a, length); err != nil {
			return errors.Wrapf(err, "resize to %d", length)
		}
		for i := range min(count, length) {
			if v := *owner.Get(i); v != int64(i) {
				return errors.Errorf("element %d changed to %d after resize to %d", i, v, length)
			}
		}
	}
	return nil
}

func addResizeCommand(ka *kingpin.Application, a *app) {
	cmd := &resizeCommand{app: a}
	c := ka.Command("resize", "Grow and shrink an array of int64 at the arena tail.").Action(cmd.run)
	c.Flag("count", "Initial number of elements.").Default("1024").IntVar(&cmd.count)
}

// hashsetCommand builds a set on the arena and reports probe lengths.
type hashsetCommand struct {
	app       *app
	keys      int
	colliding int
}

func (cmd *hashsetCommand) run(*kingpin.ParseContext) error {
	a := cmd.app.newAllocator()
	defer a.Release()

	st, err := buildSet(a, cmd.keys, cmd.colliding)
	if err != nil {
		exitWithErr(err)
	}
	bold := color.New(color.Bold)
	bold.Println("Hash set:")
	fmt.Printf("\t%d keys in %d buckets (load %.2f), %v in use\n",
		st.keys, st.buckets, float64(st.keys)/float64(st.buckets), humanize.Bytes(uint64(a.InUse())))
	fmt.Printf("\tprobe length: mean %.2f, max %d\n", st.probes.Mean(st.keys), st.probes.Max)
	return nil
}

type setStats struct {
	keys    int
	buckets int
	probes  hashset.ProbeStats
}

// buildSet inserts keys into a set and checks that each is found and that
// as many absent keys are not. With colliding > 0 keys hash into that many
// values only.
func buildSet(a arena.MemoryAllocator, keys, colliding int) (setStats, error) {
	var traits hashing.Traits[int64] = hashing.Integer[int64]{}
	if colliding > 0 {
		traits = hashing.Funcs[int64]{
			HashFunc:  func(h *hashing.Hasher, v *int64) { h.Combine(uint64(*v % int64(colliding))) },
			EqualFunc: func(x, y *int64) bool { return *x == *y },
		}
	}

	s := hashset.New[int64](a, traits)
	defer s.Destroy()
	for k := range int64(keys) {
		if _, _, err := s.Add(k); err != nil {
			return setStats{}, errors.Wrapf(err, "add key %d", k)
		}
	}
	for k := range int64(2 * keys) {
		index, ok := s.Locate(k)
		if want := k < int64(keys); ok != want || (ok && index != int(k)) {
			return setStats{}, errors.Errorf("locate %d: got index %d found %v", k, index, ok)
		}
	}

	v := s.View()
	return setStats{keys: v.Len(), buckets: v.BucketCount(), probes: v.ProbeStats()}, nil
}

func addHashsetCommand(ka *kingpin.Application, a *app) {
	cmd := &hashsetCommand{app: a}
	c := ka.Command("hashset", "Build a Robin-Hood hash set on the arena and report probe lengths.").Action(cmd.run)
	c.Flag("keys", "Number of keys to insert.").Default("10000").IntVar(&cmd.keys)
	c.Flag("colliding", "Hash keys into only this many values; 0 disables.").Default("0").IntVar(&cmd.colliding)
}

// statsCommand allocates blocks and prints the allocator statistics.
type statsCommand struct {
	app       *app
	blocks    int
	size      int
	alignment int
	grow      int
}

func (cmd *statsCommand) run(*kingpin.ParseContext) error {
	a := cmd.app.newAllocator()
	defer a.Release()

	if err := fill(a, cmd.blocks, cmd.size, cmd.alignment, cmd.grow); err != nil {
		level.Warn(cmd.app.logger).Log("msg", "allocation stopped early", "err", err)
	}
	printMetrics(a.Metrics())
	return nil
}

// fill allocates blocks of size bytes, growing every other one by grow bytes
// right after the next is allocated, which forces a move.
func fill(a arena.MemoryAllocator, blocks, size, alignment, grow int) error {
	if size < 0 || alignment <= 0 || alignment&(alignment-1) != 0 {
		return errors.Errorf("invalid block size %d or alignment %d", size, alignment)
	}
	var prev []byte
	for i := range blocks {
		b, err := arena.Allocate(a, size, alignment)
		if err != nil {
			return errors.Wrapf(err, "block %d", i)
		}
		if grow > 0 && prev != nil && i%2 == 1 {
			if _, err := arena.Reallocate(a, prev, len(prev)+grow, alignment); err != nil {
				return errors.Wrapf(err, "grow block %d", i-1)
			}
		}
		prev = b
	}
	return nil
}

func printMetrics(m arena.ArenaMetrics) {
	bold := color.New(color.Bold)
	bold.Println("Arena:")
	fmt.Printf("\tin use: %v, committed: %v, capacity: %v, utilization: %.2f%%\n",
		humanize.Bytes(uint64(m.InUse)), humanize.Bytes(uint64(m.Committed)), humanize.Bytes(uint64(m.Capacity)), m.Utilization*100)
	fmt.Printf("\tallocations: %d, in-place resizes: %d, moves: %d, leaked: %v, commit failures: %d\n",
		m.Allocations, m.InPlaceResizes, m.Moves, humanize.Bytes(m.Leaked), m.CommitFailures)
}

func addStatsCommand(ka *kingpin.Application, a *app) {
	cmd := &statsCommand{app: a}
	c := ka.Command("stats", "Allocate blocks and print allocator statistics.").Action(cmd.run)
	c.Flag("blocks", "Number of blocks to allocate.").Default("1000").IntVar(&cmd.blocks)
	c.Flag("size", "Size of each block in bytes.").Default("64").IntVar(&cmd.size)
	c.Flag("alignment", "Alignment of each block.").Default("8").IntVar(&cmd.alignment)
	c.Flag("grow", "Bytes to grow every other block by after the next is allocated.").Default("0").IntVar(&cmd.grow)
}
