package series

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Number is a coerced measurement value. JSON numbers and numeric strings are
// accepted; anything else decodes to an invalid Number, never to zero.
type Number struct {
	Value float64
	Valid bool
}

// Num wraps a float as a Number. Non-finite floats are invalid.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Value: v, Valid: true}
}

// ParseNumber coerces a string the way the upstream API encodes numbers.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}
	return Num(v)
}

// Float returns the value and whether it is usable.
func (n Number) Float() (float64, bool) {
	return n.Value, n.Valid
}

func (n Number) IsZero() bool {
	return !n.Valid
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			*n = ParseNumber(s)
		}
	case 'n', 't', 'f', '[', '{':
		// null, booleans and containers are not values
	default:
		var f float64
		if err := json.Unmarshal(trimmed, &f); err == nil {
			*n = Num(f)
		}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// SubDailyForm tells which wire shape a SubDailyValues was decoded from.
type SubDailyForm uint8

const (
	SubDailyAbsent SubDailyForm = iota
	// SubDailyList is the `[{time, value, remark?, remarks?}]` shape.
	SubDailyList
	// SubDailyMap is the `{"HH:MM": value}` shape. It carries no remarks.
	SubDailyMap
)

// SubDailyEntry is one intra-day reading.
type SubDailyEntry struct {
	Time    string   `json:"time"`
	Value   Number   `json:"value"`
	Remark  string   `json:"remark,omitempty"`
	Remarks []string `json:"remarks,omitempty"`
}

// SubDailyValues holds intra-day readings normalized to one canonical list,
// whatever shape they arrived in.
type SubDailyValues struct {
	Form    SubDailyForm
	Entries []SubDailyEntry
}

// NewSubDailyList builds list-form readings.
func NewSubDailyList(entries ...SubDailyEntry) SubDailyValues {
	return SubDailyValues{Form: SubDailyList, Entries: entries}
}

// NewSubDailyMap builds map-form readings, ordered by time key.
func NewSubDailyMap(values map[string]float64) SubDailyValues {
	entries := make([]SubDailyEntry, 0, len(values))
	for clock, v := range values {
		entries = append(entries, SubDailyEntry{Time: clock, Value: Num(v)})
	}
	sortEntries(entries)
	return SubDailyValues{Form: SubDailyMap, Entries: entries}
}

func (s SubDailyValues) IsZero() bool {
	return s.Form == SubDailyAbsent
}

func (s *SubDailyValues) UnmarshalJSON(data []byte) error {
	*s = SubDailyValues{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var entries []SubDailyEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		*s = SubDailyValues{Form: SubDailyList, Entries: entries}
	case '{':
		var values map[string]Number
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		entries := make([]SubDailyEntry, 0, len(values))
		for clock, v := range values {
			entries = append(entries, SubDailyEntry{Time: clock, Value: v})
		}
		sortEntries(entries)
		*s = SubDailyValues{Form: SubDailyMap, Entries: entries}
	}
	return nil
}

func (s SubDailyValues) MarshalJSON() ([]byte, error) {
	switch s.Form {
	case SubDailyList:
		return json.Marshal(s.Entries)
	case SubDailyMap:
		values := make(map[string]Number, len(s.Entries))
		for _, e := range s.Entries {
			values[e.Time] = e.Value
		}
		return json.Marshal(values)
	default:
		return []byte("null"), nil
	}
}

func sortEntries(entries []SubDailyEntry) {
	slices.SortFunc(entries, func(a, b SubDailyEntry) int {
		return strings.Compare(a.Time, b.Time)
	})
}

// RawSample is one measurement for one parameter at one date, as returned by
// the data API.
type RawSample struct {
	Date    string         `json:"date"`
	Value   Number         `json:"value,omitzero"`
	Values  SubDailyValues `json:"values,omitzero"`
	Remark  string         `json:"remark,omitempty"`
	Remarks []string       `json:"remarks,omitempty"`
}

// Meta annotates a value slot.
type Meta struct {
	Comment string `json:"comment"`
}

// DailyValue holds one slot per selected parameter, indexed by parameter position.
type DailyValue struct {
	Date   string     `json:"date"`
	Values []*float64 `json:"values"`
	Metas  []*Meta    `json:"metas"`
}

// TimelineSample is one timestamped point on the unified timeline.
// Time is nil for samples reported as a daily value.
type TimelineSample struct {
	Date      string     `json:"date"`
	Time      *string    `json:"time"`
	Timestamp time.Time  `json:"timestamp"`
	Values    []*float64 `json:"values"`
	Metas     []*Meta    `json:"metas"`
}

// Result is the output of Aggregate.
type Result struct {
	DailyValues     []DailyValue     `json:"dailyValues"`
	TimelineSamples []TimelineSample `json:"timelineSamples"`
}

// EmptyResult returns a Result whose slices are non-nil, so it encodes as [] rather than null.
func EmptyResult() Result {
	return Result{
		DailyValues:     []DailyValue{},
		TimelineSamples: []TimelineSample{},
	}
}
