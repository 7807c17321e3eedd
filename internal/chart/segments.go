package chart

import "fmt"

// Classifier names the class a value belongs to, e.g. "above" or "below".
type Classifier func(v float64) string

const (
	ClassAbove = "above"
	ClassBelow = "below"
)

// ThresholdClassifier classifies values at or above threshold as "above".
func ThresholdClassifier(threshold float64) Classifier {
	return func(v float64) string {
		if v >= threshold {
			return ClassAbove
		}
		return ClassBelow
	}
}

// Segment is one run of equally classified values. Data spans the whole x
// axis and is nil outside [Start, End].
type Segment struct {
	ID         string     `json:"id"`
	OriginalID string     `json:"originalId"`
	Class      string     `json:"class,omitempty"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Data       []*float64 `json:"data"`
}

// ClassifySegments splits data into index-disjoint runs, breaking at nil
// values and wherever the class changes. A nil classifier only breaks at gaps.
// Segment ids are "<originalID>-<n>".
func ClassifySegments(originalID string, data []*float64, classify Classifier) []Segment {
	if classify == nil {
		classify = func(float64) string { return "" }
	}

	var segments []Segment
	start, class := -1, ""

	flush := func(end int) {
		if start < 0 {
			return
		}
		seg := Segment{
			ID:         fmt.Sprintf("%s-%d", originalID, len(segments)),
			OriginalID: originalID,
			Class:      class,
			Start:      start,
			End:        end,
			Data:       make([]*float64, len(data)),
		}
		for i := start; i <= end; i++ {
			seg.Data[i] = floatPtr(*data[i])
		}
		segments = append(segments, seg)
		start = -1
	}

	for i, v := range data {
		if v == nil {
			flush(i - 1)
			continue
		}
		c := classify(*v)
		if start >= 0 && c != class {
			flush(i - 1)
		}
		if start < 0 {
			start, class = i, c
		}
	}
	flush(len(data) - 1)
	return segments
}

// SegmentAll classifies every aligned series with the same classifier.
func SegmentAll(aligned []AlignedSery, classify Classifier) map[string][]Segment {
	out := make(map[string][]Segment, len(aligned))
	for _, s := range aligned {
		out[s.ID] = ClassifySegments(s.ID, s.Data, classify)
	}
	return out
}
