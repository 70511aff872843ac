package bigarray

import (
	"fmt"

	"github.com/hupe1980/bigarray/resource"
	"github.com/hupe1980/bigarray/snapshot"
	"github.com/hupe1980/bigarray/store"
)

type options struct {
	segmentBits       int
	growthNumerator   uint64
	growthDenominator uint64
	logger            *Logger
	metrics           MetricsCollector
	controller        *resource.Controller
	compression       snapshot.Compression
}

func defaultOptions() options {
	return options{
		segmentBits:       store.DefaultSegmentBits,
		growthNumerator:   3,
		growthDenominator: 2,
		logger:            NoopLogger(),
		metrics:           NoopMetricsCollector{},
		compression:       snapshot.None,
	}
}

// buildOptions applies option funcs and validates the result, so invalid
// configuration surfaces as an error from the constructor instead of a panic
// from the backing store.
func buildOptions(optFns []Option) (options, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.segmentBits < store.MinSegmentBits || opts.segmentBits > store.MaxSegmentBits {
		return opts, fmt.Errorf("%w: segment bits %d", ErrInvalidCapacity, opts.segmentBits)
	}
	if opts.growthDenominator == 0 || opts.growthNumerator <= opts.growthDenominator {
		return opts, fmt.Errorf("%w: growth factor %d/%d", ErrInvalidCapacity, opts.growthNumerator, opts.growthDenominator)
	}
	return opts, nil
}

func (o options) storeOptions() []func(*store.Options) {
	return []func(*store.Options){
		store.WithSegmentBits(o.segmentBits),
		store.WithGrowthFactor(o.growthNumerator, o.growthDenominator),
	}
}

// Option configures BigArray construction and loading.
type Option func(*options)

// WithSegmentBits sets the log2 of the segment size. The default of 16
// yields segments of 65536 elements.
func WithSegmentBits(bits int) Option {
	return func(o *options) {
		o.segmentBits = bits
	}
}

// WithGrowthFactor sets the amortized growth factor as a fraction. The
// default 3/2 grows by 50% when capacity is exhausted without a hint.
func WithGrowthFactor(numerator, denominator uint64) Option {
	return func(o *options) {
		o.growthNumerator = numerator
		o.growthDenominator = denominator
	}
}

// WithLogger configures structured logging. Pass nil to disable.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithResourceController attaches a shared memory budget. Growth that would
// exceed the budget fails with ErrMemoryLimit instead of allocating.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithCompression selects the snapshot compression codec. The codec name is
// recorded in the snapshot header, so loading auto-detects it regardless of
// this option.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		if c == nil {
			c = snapshot.None
		}
		o.compression = c
	}
}
