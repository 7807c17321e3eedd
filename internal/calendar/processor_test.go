package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	var dropped []string
	warn := func(e Entry, err error) {
		assert.ErrorIs(t, err, ErrInvalidDate)
		dropped = append(dropped, e.Date)
	}

	data := Process([]Entry{
		{Date: "15-03-2024", Color: "green"},
		{Date: "2024-03-16"},
		{Date: "01-02-2023"},
		{Date: "31-02-2024"},
		{Date: "15-03-2024", Color: "red"},
	}, warn)

	assert.Equal(t, []string{"2024-03-16", "31-02-2024"}, dropped)
	assert.Equal(t, 5, data.Total)
	assert.Equal(t, 2, data.Invalid)
	assert.True(t, data.HasData())
	assert.False(t, data.AllInvalid())

	require.Len(t, data.ByDay["2024-03-15"], 2)
	assert.Equal(t, date(2024, 3, 15), data.ByDay["2024-03-15"][0].DateObj)
	assert.Len(t, data.ByMonth["2024-03"], 2)
	assert.Len(t, data.ByYear["2023"], 1)
	assert.Equal(t, date(2023, 2, 1), data.MinDate)
	assert.Equal(t, date(2024, 3, 15), data.MaxDate)
}

func TestProcess_NoDataVersusAllInvalid(t *testing.T) {
	empty := Process(nil, nil)
	assert.False(t, empty.HasData())
	assert.False(t, empty.AllInvalid())

	bad := Process([]Entry{{Date: "2024/01/01"}, {Date: ""}}, nil)
	assert.False(t, bad.HasData())
	assert.True(t, bad.AllInvalid())
	assert.Empty(t, bad.ByDay)
}

func TestResolveAggregatedColor(t *testing.T) {
	assert.Nil(t, ResolveAggregatedColor(nil))
	assert.Nil(t, ResolveAggregatedColor([]Entry{{Date: "01-01-2024"}}))

	got := ResolveAggregatedColor([]Entry{{Date: "a"}, {Color: "orange"}, {Color: "red"}})
	require.NotNil(t, got)
	assert.Equal(t, "orange", *got)
}
