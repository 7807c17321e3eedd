package series

import (
	"slices"
	"strings"
	"time"
)

// WarnFunc receives samples that were skipped because they could not be placed
// on the timeline. Aggregation never fails on a single bad record.
type WarnFunc func(param string, sample RawSample, err error)

// Option configures Aggregate.
type Option func(*options)

type options struct {
	loc  *time.Location
	warn WarnFunc
}

// WithLocation sets the location used for dates without an explicit offset.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithWarnFunc installs a sink for skipped samples.
func WithWarnFunc(warn WarnFunc) Option {
	return func(o *options) {
		if warn != nil {
			o.warn = warn
		}
	}
}

// Aggregate folds per-parameter raw samples into daily values and a unified
// timeline. The order of selectedParams fixes the slot index of every parameter
// in the output arrays; parameters missing from loaded simply leave null slots.
func Aggregate(loaded map[string][]RawSample, selectedParams []string, opts ...Option) Result {
	if len(loaded) == 0 || len(selectedParams) == 0 {
		return EmptyResult()
	}

	o := options{loc: time.Local, warn: func(string, RawSample, error) {}}
	for _, opt := range opts {
		opt(&o)
	}

	b := newBuilder(len(selectedParams), o)
	for idx, param := range selectedParams {
		for _, sample := range loaded[param] {
			if sample.Date == "" {
				continue
			}
			b.add(param, idx, sample)
		}
	}
	return b.result()
}

type timelineKey struct {
	date  string
	clock string
	daily bool
}

type builder struct {
	width int
	opts  options

	days     map[string]*DailyValue
	dayOrder []string
	points   map[timelineKey]*TimelineSample
	pointSeq []*TimelineSample
}

func newBuilder(width int, opts options) *builder {
	return &builder{
		width:  width,
		opts:   opts,
		days:   make(map[string]*DailyValue),
		points: make(map[timelineKey]*TimelineSample),
	}
}

func (b *builder) add(param string, idx int, sample RawSample) {
	// 1. Directly reported daily value
	if v, ok := sample.Value.Float(); ok {
		ts, err := SampleTimestamp(sample.Date, nil, b.opts.loc)
		if err != nil {
			b.opts.warn(param, sample, err)
			return
		}
		meta := NormalizeRemarks(sample.Remark, sample.Remarks)

		day := b.day(sample.Date)
		day.Values[idx] = floatPtr(v)
		day.Metas[idx] = meta

		point := b.point(sample.Date, nil, ts)
		point.Values[idx] = floatPtr(v)
		point.Metas[idx] = meta
		return
	}

	if sample.Values.Form == SubDailyAbsent {
		return
	}

	// 2. Sub-daily readings, averaged into the daily slot
	if _, err := ParseTimestamp(sample.Date, b.opts.loc); err != nil {
		b.opts.warn(param, sample, err)
		return
	}

	sum, count := 0.0, 0
	for _, entry := range sample.Values.Entries {
		v, ok := entry.Value.Float()
		if !ok {
			continue
		}
		clock := strings.TrimSpace(entry.Time)
		ts, err := SampleTimestamp(sample.Date, &clock, b.opts.loc)
		if err != nil {
			b.opts.warn(param, sample, err)
			continue
		}

		point := b.point(sample.Date, &clock, ts)
		point.Values[idx] = floatPtr(v)
		if sample.Values.Form == SubDailyList {
			point.Metas[idx] = NormalizeRemarks(entry.Remark, entry.Remarks)
		}

		sum += v
		count++
	}

	if count > 0 {
		// the mean carries no remark, even over an earlier direct value
		day := b.day(sample.Date)
		day.Values[idx] = floatPtr(sum / float64(count))
		day.Metas[idx] = nil
	}
}

func (b *builder) day(date string) *DailyValue {
	if d, ok := b.days[date]; ok {
		return d
	}
	d := &DailyValue{
		Date:   date,
		Values: make([]*float64, b.width),
		Metas:  make([]*Meta, b.width),
	}
	b.days[date] = d
	b.dayOrder = append(b.dayOrder, date)
	return d
}

func (b *builder) point(date string, clock *string, ts time.Time) *TimelineSample {
	key := timelineKey{date: date, daily: clock == nil}
	if clock != nil {
		key.clock = *clock
	}
	if p, ok := b.points[key]; ok {
		return p
	}

	p := &TimelineSample{
		Date:      date,
		Timestamp: ts,
		Values:    make([]*float64, b.width),
		Metas:     make([]*Meta, b.width),
	}
	if clock != nil {
		c := *clock
		p.Time = &c
	}
	b.points[key] = p
	b.pointSeq = append(b.pointSeq, p)
	return p
}

func (b *builder) result() Result {
	res := EmptyResult()

	dates := slices.Clone(b.dayOrder)
	slices.Sort(dates)
	for _, date := range dates {
		res.DailyValues = append(res.DailyValues, *b.days[date])
	}

	for _, p := range b.pointSeq {
		res.TimelineSamples = append(res.TimelineSamples, *p)
	}
	slices.SortStableFunc(res.TimelineSamples, func(a, b TimelineSample) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return res
}

func floatPtr(v float64) *float64 {
	return &v
}
