package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

var localeEnum = []any{"fr", "en"}

type aggregateInput struct {
	Samples  map[string]any `json:"samples" jsonschema:"raw samples keyed by parameter label, each a list of {date, value?, values?, remark?, remarks?}"`
	Params   []string       `json:"params" jsonschema:"selected parameters; their order fixes the slot of each parameter in every values array"`
	SeriesID string         `json:"series_id,omitempty" jsonschema:"when set, the result is also registered under this id for later range reads"`
}

type getSeriesInput struct {
	SeriesID string `json:"series_id,omitempty" jsonschema:"registered series id; omit to list registered ids"`
	Start    string `json:"start,omitempty" jsonschema:"inclusive yyyy-MM-dd lower bound"`
	End      string `json:"end,omitempty" jsonschema:"inclusive yyyy-MM-dd upper bound"`
}

type clearSeriesInput struct {
	SeriesID string `json:"series_id,omitempty" jsonschema:"series id to drop; omit to clear the whole registry"`
}

type periodsInput struct {
	Start string `json:"start,omitempty" jsonschema:"range start, yyyy-MM-dd or RFC 3339"`
	End   string `json:"end,omitempty" jsonschema:"range end, yyyy-MM-dd or RFC 3339"`
}

type entryInput struct {
	Date  string `json:"date" jsonschema:"entry date, dd-MM-yyyy"`
	Color string `json:"color,omitempty" jsonschema:"opaque status color"`
}

type calendarInput struct {
	Entries []entryInput `json:"entries" jsonschema:"calendar entries"`
	Locale  string       `json:"locale,omitempty" jsonschema:"label locale"`
}

type alignInput struct {
	Series []any `json:"series" jsonschema:"series to align, each {id, label?, axis?: left|right, color?, valueType?, data: [{x, y}]}; x is a date string or epoch milliseconds"`
}

type composeInput struct {
	Series  []any          `json:"series" jsonschema:"series to align and compose, same shape as align_series"`
	Profile map[string]any `json:"profile,omitempty" jsonschema:"drawing profile: series_types, hidden, hidden_color, colors, axes, thresholds, bands, classify_at"`
	Format  string         `json:"format,omitempty" jsonschema:"json (default) or mermaid for an xychart-beta block"`
	Title   string         `json:"title,omitempty" jsonschema:"chart title, mermaid only"`
}

type sortInput struct {
	Frequencies []string `json:"frequencies" jsonschema:"frequencies such as '15 minutes' or '1 day'"`
	Locale      string   `json:"locale,omitempty" jsonschema:"label locale"`
}

type pickInput struct {
	Target    string   `json:"target,omitempty" jsonschema:"wanted frequency"`
	Available []string `json:"available" jsonschema:"frequencies the data source offers"`
	Locale    string   `json:"locale,omitempty" jsonschema:"label locale"`
}

// inputSchema infers the schema of T and restricts the named string
// properties to the given values.
func inputSchema[T any](enums map[string][]any) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("input schema for %T: %v", *new(T), err))
	}
	for name, values := range enums {
		if prop, ok := schema.Properties[name]; ok {
			prop.Enum = values
		}
	}
	return schema
}

// addTool registers a handler whose result is rendered as JSON text.
func addTool[In any](s *Server, tool *sdk.Tool, fn func(ctx context.Context, in In) (any, error)) {
	sdk.AddTool(s.mcp, tool, func(ctx context.Context, _ *sdk.CallToolRequest, in In) (*sdk.CallToolResult, any, error) {
		data, err := fn(ctx, in)
		s.metrics.ToolCall(tool.Name, err)
		if err != nil {
			log.Warn().Str("tool", tool.Name).Err(err).Msg("Tool call failed")
			return nil, nil, err
		}
		res, err := textResult(data)
		return res, nil, err
	})
}

func (s *Server) registerTools() {
	addTool(s, &sdk.Tool{
		Name: "aggregate_samples",
		Description: "Fold raw per-parameter water-withdrawal samples into one value per day and a unified timeline. " +
			"Sub-daily readings are averaged into the daily slot; non-numeric values are null, never zero. " +
			"Samples whose date cannot be parsed are skipped and counted.",
		InputSchema: inputSchema[aggregateInput](nil),
	}, s.handleAggregate)

	addTool(s, &sdk.Tool{
		Name:        "get_registered_series",
		Description: "Read a registered aggregation, optionally restricted to an inclusive date range. Without series_id, lists registered ids.",
		InputSchema: inputSchema[getSeriesInput](nil),
	}, s.handleGetSeries)

	addTool(s, &sdk.Tool{
		Name:        "clear_registered_series",
		Description: "Drop one registered aggregation, or all of them when series_id is omitted.",
		InputSchema: inputSchema[clearSeriesInput](nil),
	}, s.handleClearSeries)

	addTool(s, &sdk.Tool{
		Name:        "calendar_periods",
		Description: "List the years and months a period picker may offer for a date range, and the periods preselected by default.",
		InputSchema: inputSchema[periodsInput](nil),
	}, s.handlePeriods)

	addTool(s, &sdk.Tool{
		Name: "build_calendar",
		Description: "Build calendar grids from dd-MM-yyyy entries. The display mode follows the span: " +
			"day cells up to 6 months, month cells up to 72 months, year cells beyond.",
		InputSchema: inputSchema[calendarInput](map[string][]any{"locale": localeEnum}),
	}, s.handleCalendar)

	addTool(s, &sdk.Tool{
		Name:        "align_series",
		Description: "Merge parameter series onto one sorted time axis. Missing points are null and all-null series are dropped.",
		InputSchema: inputSchema[alignInput](nil),
	}, s.handleAlign)

	addTool(s, &sdk.Tool{
		Name: "compose_series",
		Description: "Align series, split them into classified segments and compose the renderable list: " +
			"legend stubs, line segments, merged bars, bands, then thresholds.",
		InputSchema: inputSchema[composeInput](map[string][]any{"format": {"json", "mermaid"}}),
	}, s.handleCompose)

	addTool(s, &sdk.Tool{
		Name:        "sort_frequencies",
		Description: "Order sampling frequencies from finest to coarsest. Unknown frequencies go last in input order.",
		InputSchema: inputSchema[sortInput](map[string][]any{"locale": localeEnum}),
	}, s.handleSortFrequencies)

	addTool(s, &sdk.Tool{
		Name:        "pick_frequency",
		Description: "Pick the available frequency closest to a target: the target itself, else the finest coarser one, else the coarsest available.",
		InputSchema: inputSchema[pickInput](map[string][]any{"locale": localeEnum}),
	}, s.handlePickFrequency)
}
