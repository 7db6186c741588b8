package cache

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"reportapi/internal/curriculum"
)

// entryKey is the only key: the dataset takes no arguments.
const entryKey = "none"

// DefaultLoadTimeout bounds a shared load unless WithLoadTimeout says otherwise.
const DefaultLoadTimeout = time.Minute

// Loader builds a fresh aggregated dataset.
type Loader func(ctx context.Context) (*curriculum.Dataset, error)

// Metrics counts cache outcomes.
type Metrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	loads  *prometheus.CounterVec
}

// NewMetrics registers the cache counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dataset_cache_hits_total",
			Help: "Dataset requests served from the cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dataset_cache_misses_total",
			Help: "Dataset requests that needed a load.",
		}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "Dataset loads by outcome.",
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{m.hits, m.misses, m.loads} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Option configures a Dataset cache.
type Option func(*Dataset)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Dataset) { d.now = now }
}

// WithLoadTimeout bounds each shared load. Zero means no bound.
func WithLoadTimeout(timeout time.Duration) Option {
	return func(d *Dataset) { d.loadTimeout = timeout }
}

func WithMetrics(m *Metrics) Option {
	return func(d *Dataset) { d.metrics = m }
}

// Dataset caches the aggregated dataset as one entry. A zero ttl keeps the
// entry until Invalidate; otherwise it goes stale ttl after it was loaded.
// Concurrent misses share one load and failed loads are not kept. The shared
// load is detached from the caller that started it: a caller whose context
// ends stops waiting, the others still get the result.
type Dataset struct {
	load        Loader
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time
	metrics     *Metrics

	mu       sync.RWMutex
	ds       *curriculum.Dataset
	loadedAt time.Time
	gen      uint64

	group singleflight.Group
}

func New(load Loader, ttl time.Duration, opts ...Option) *Dataset {
	d := &Dataset{load: load, ttl: ttl, loadTimeout: DefaultLoadTimeout, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Get returns the cached dataset, loading it when absent or stale.
func (d *Dataset) Get(ctx context.Context) (*curriculum.Dataset, error) {
	if ds, _, ok := d.fresh(); ok {
		d.count(func(m *Metrics) { m.hits.Inc() })
		return ds, nil
	}
	d.count(func(m *Metrics) { m.misses.Inc() })

	ch := d.group.DoChan(entryKey, func() (any, error) {
		ds, gen, ok := d.fresh()
		if ok {
			return ds, nil
		}
		lctx := context.WithoutCancel(ctx)
		if d.loadTimeout > 0 {
			var cancel context.CancelFunc
			lctx, cancel = context.WithTimeout(lctx, d.loadTimeout)
			defer cancel()
		}
		ds, err := d.load(lctx)
		if err != nil {
			d.count(func(m *Metrics) { m.loads.WithLabelValues("error").Inc() })
			return nil, err
		}
		d.count(func(m *Metrics) { m.loads.WithLabelValues("ok").Inc() })

		d.mu.Lock()
		// An Invalidate during the load makes this result stale already.
		if d.gen == gen {
			d.ds = ds
			d.loadedAt = d.now()
		}
		d.mu.Unlock()
		return ds, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*curriculum.Dataset), nil
	}
}

// Invalidate drops the cached entry; the next Get loads again.
func (d *Dataset) Invalidate() {
	d.mu.Lock()
	d.ds = nil
	d.loadedAt = time.Time{}
	d.gen++
	d.mu.Unlock()
	d.group.Forget(entryKey)
}

// Refresh invalidates and reloads. On failure the cache stays empty.
func (d *Dataset) Refresh(ctx context.Context) (*curriculum.Dataset, error) {
	d.Invalidate()
	return d.Get(ctx)
}

// LoadedAt returns when the cached entry was loaded, zero if there is none.
func (d *Dataset) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}

func (d *Dataset) fresh() (*curriculum.Dataset, uint64, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.ds == nil {
		return nil, d.gen, false
	}
	if d.ttl > 0 && d.now().Sub(d.loadedAt) >= d.ttl {
		return nil, d.gen, false
	}
	return d.ds, d.gen, true
}

func (d *Dataset) count(f func(*Metrics)) {
	if d.metrics != nil {
		f(d.metrics)
	}
}
