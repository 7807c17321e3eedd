// Package visuals renders composed charts as Mermaid diagrams for clients
// that display markdown but no chart widget.
package visuals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"prelev-mcp/internal/chart"
)

// Options tunes GenerateChart.
type Options struct {
	Title    string
	YLabel   string
	Location *time.Location
}

type line struct {
	kind chart.SeriesType
	data []*float64
}

// GenerateChart creates a Mermaid xychart-beta block from a composed chart.
// Legend stubs and bands are skipped and the segments of a parameter are
// merged back into one line. Both axes share a single y scale.
func GenerateChart(c chart.Chart, opts Options) string {
	if len(c.XValues) == 0 {
		return ""
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	// 1. Merge drawable series per original id, in first-seen order
	var order []string
	lines := make(map[string]*line)
	for _, s := range c.Series {
		if s.Legend || s.Type == chart.TypeBand || len(s.Data) == 0 {
			continue
		}
		id := s.OriginalID
		if id == "" {
			id = s.ID
		}
		l, ok := lines[id]
		if !ok {
			l = &line{kind: s.Type, data: make([]*float64, len(c.XValues))}
			lines[id] = l
			order = append(order, id)
		}
		for i, v := range s.Data {
			if v != nil && i < len(l.data) {
				l.data[i] = v
			}
		}
	}
	if len(order) == 0 {
		return ""
	}

	// 2. Axis bounds
	minY, maxY := 0.0, 0.0
	for _, id := range order {
		for _, v := range lines[id].data {
			if v != nil {
				minY = math.Min(minY, *v)
				maxY = math.Max(maxY, *v)
			}
		}
	}
	maxY = math.Max(1, maxY*1.2)

	labels := make([]string, len(c.XValues))
	for i, ms := range c.XValues {
		labels[i] = strconv.Quote(time.UnixMilli(ms).In(loc).Format("2006-01-02"))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf("    title %s\n", strconv.Quote(opts.Title)))
	}
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	if opts.YLabel != "" {
		sb.WriteString(fmt.Sprintf("    y-axis %s %d --> %d\n", strconv.Quote(opts.YLabel), int(math.Floor(minY)), int(math.Ceil(maxY))))
	} else {
		sb.WriteString(fmt.Sprintf("    y-axis %d --> %d\n", int(math.Floor(minY)), int(math.Ceil(maxY))))
	}

	for _, id := range order {
		l := lines[id]
		kind := "line"
		if l.kind == chart.TypeBar {
			kind = "bar"
		}
		sb.WriteString(fmt.Sprintf("    %s [%s]\n", kind, formatValues(l.data)))
	}
	sb.WriteString("```")
	return sb.String()
}

// formatValues writes missing values as 0; xychart-beta has no gap syntax.
func formatValues(data []*float64) string {
	values := make([]string, len(data))
	for i, v := range data {
		if v == nil {
			values[i] = "0"
			continue
		}
		values[i] = strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return strings.Join(values, ", ")
}
