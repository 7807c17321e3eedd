package series

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"
)

// Registry provides thread-safe storage for aggregated series, keyed by an
// external series id. Values are copied on the way in and on the way out.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
	clock   clockwork.Clock
	maxAge  time.Duration
}

type registryEntry struct {
	result       Result
	registeredAt time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock swaps the time source used for expiry.
func WithClock(c clockwork.Clock) RegistryOption {
	return func(r *Registry) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithMaxAge evicts entries older than d on read. Zero keeps entries forever.
func WithMaxAge(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.maxAge = d
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]registryEntry),
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SeriesKey builds a registry id from its parts, e.g. a withdrawal point and a parameter.
func SeriesKey(parts ...string) string {
	return slug.Make(strings.Join(parts, "-"))
}

// Register stores a deep copy of result, replacing any prior entry for id.
func (r *Registry) Register(id string, result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[id] = registryEntry{
		result:       cloneResult(result, "", ""),
		registeredAt: r.clock.Now(),
	}
}

// Get returns a deep copy of the entry for id, restricted to the inclusive
// yyyy-MM-dd range [start, end]. An empty bound leaves that side open.
func (r *Registry) Get(id, start, end string) (Result, bool) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return Result{}, false
	}

	if r.expired(entry) {
		r.mu.Lock()
		// re-check: a concurrent Register may have refreshed the entry
		if current, still := r.entries[id]; still && r.expired(current) {
			delete(r.entries, id)
		}
		r.mu.Unlock()
		return Result{}, false
	}

	return cloneResult(entry.result, start, end), true
}

// RegisteredAt reports when id was last registered.
func (r *Registry) RegisteredAt(id string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	return entry.registeredAt, ok
}

// Clear removes one entry and reports whether it existed.
func (r *Registry) Clear(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[id]
	delete(r.entries, id)
	return ok
}

// ClearAll empties the registry.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]registryEntry)
}

// IDs returns the registered ids in lexical order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of entries, expired or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) expired(e registryEntry) bool {
	return r.maxAge > 0 && r.clock.Since(e.registeredAt) > r.maxAge
}

func cloneResult(src Result, start, end string) Result {
	out := EmptyResult()
	for _, d := range src.DailyValues {
		if inRange(DayKey(d.Date), start, end) {
			out.DailyValues = append(out.DailyValues, cloneDaily(d))
		}
	}
	for _, s := range src.TimelineSamples {
		if inRange(DayKey(s.Date), start, end) {
			out.TimelineSamples = append(out.TimelineSamples, cloneSample(s))
		}
	}
	return out
}

func inRange(day, start, end string) bool {
	if start != "" && day < start {
		return false
	}
	if end != "" && day > end {
		return false
	}
	return true
}

func cloneDaily(d DailyValue) DailyValue {
	return DailyValue{
		Date:   d.Date,
		Values: cloneValues(d.Values),
		Metas:  cloneMetas(d.Metas),
	}
}

func cloneSample(s TimelineSample) TimelineSample {
	out := TimelineSample{
		Date:      s.Date,
		Timestamp: s.Timestamp,
		Values:    cloneValues(s.Values),
		Metas:     cloneMetas(s.Metas),
	}
	if s.Time != nil {
		t := *s.Time
		out.Time = &t
	}
	return out
}

func cloneValues(values []*float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = floatPtr(*v)
		}
	}
	return out
}

func cloneMetas(metas []*Meta) []*Meta {
	out := make([]*Meta, len(metas))
	for i, m := range metas {
		if m != nil {
			c := *m
			out[i] = &c
		}
	}
	return out
}
