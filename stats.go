package internpool

// Stats is a snapshot of a table's (or, aggregated, a sharded pool's)
// runtime counters. Fields obey the counter algebra from spec §8:
// Considered >= Added, Deduped == Considered-Added, Count <= Added, and
// Count <= MaxCount when the table is bounded.
type Stats struct {
	Count      int
	Considered int64
	Added      int64
	Evicted    int64
}

// Deduped is the number of interning calls that did not result in a new
// entry: repeat lookups of an already-present value, plus every null,
// empty, or over-length short circuit (spec §8 "Counter algebra").
func (s Stats) Deduped() int64 {
	return s.Considered - s.Added
}
