package bptree

const (
	// DefaultFanout is the number of keys a node holds before it splits.
	// 256 keys keep a node's key array within a handful of cache lines
	// while amortizing descent cost.
	DefaultFanout = 256

	// MinFanout is the smallest supported fanout. Below this a split
	// cannot produce two non-empty halves plus a separator.
	MinFanout = 4
)

type options struct {
	fanout   int
	strategy Strategy
	logger   *Logger
	metrics  MetricsCollector
}

func defaultOptions() options {
	return options{
		fanout:   DefaultFanout,
		strategy: StrategyAuto,
		logger:   NoopLogger(),
	}
}

// Option configures tree construction.
type Option func(*options)

// WithFanout sets the maximum number of keys per node (M). A node
// reaching M keys splits. Must be at least MinFanout.
func WithFanout(m int) Option {
	return func(o *options) {
		o.fanout = m
	}
}

// WithStrategy pins the search strategy used by Find. The default,
// StrategyAuto, picks the vectorized path for eligible key types and
// binary search otherwise. The strategy-specific FindLinear, FindBinary
// and FindVector methods remain available regardless.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. The default is no collection; Find and Insert skip the
// clock entirely when no collector is installed.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}
