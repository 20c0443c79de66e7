package shard

import "go.uber.org/zap"

// PoolOption configures a Pool at construction.
type PoolOption func(*Pool)

// WithLogger attaches a logger the trim scheduler narrates high-pressure
// detaches and trim-level cycling to (spec §4.4); hash-mode flips are not
// logged. The
// default is a no-op logger: the shard façade, like the teacher's
// single-table Cache, stays silent unless a caller asks for visibility.
func WithLogger(logger *zap.SugaredLogger) PoolOption {
	return func(p *Pool) {
		p.trimmer.logger = logger
	}
}
