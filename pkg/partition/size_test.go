package partition_test

import (
	"testing"
	"time"

	"github.com/pgcarve/pgcarve/pkg/partition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseUnit(t *testing.T) {
	for spelling, want := range map[string]partition.Unit{
		"daily":   partition.Day,
		"day":     partition.Day,
		"weekly":  partition.Week,
		"Monthly": partition.Month,
		"month":   partition.Month,
		"yearly":  partition.Year,
	} {
		unit, err := partition.ParseUnit(spelling)
		require.NoError(t, err)
		assert.Equal(t, want, unit)
	}

	_, err := partition.ParseUnit("hourly")
	require.Error(t, err)
}

func TestSizeStart(t *testing.T) {
	at := time.Date(2024, time.June, 15, 13, 37, 42, 0, time.UTC)

	assert.Equal(t, date(2024, time.January, 1), partition.Size{Unit: partition.Year}.Start(at))
	assert.Equal(t, date(2024, time.June, 1), partition.Size{Unit: partition.Month}.Start(at))
	assert.Equal(t, date(2024, time.June, 15), partition.Size{Unit: partition.Day}.Start(at))

	// 2024-06-15 is a Saturday; its week starts Monday 2024-06-10.
	assert.Equal(t, date(2024, time.June, 10), partition.Size{Unit: partition.Week}.Start(at))

	// A Monday is its own week start.
	assert.Equal(t, date(2024, time.June, 10), partition.Size{Unit: partition.Week}.Start(date(2024, time.June, 10)))
}

func TestSizeAdvanceRetreat(t *testing.T) {
	start := date(2024, time.January, 1)

	monthly := partition.Size{Unit: partition.Month}
	assert.Equal(t, date(2024, time.February, 1), monthly.Advance(start))
	assert.Equal(t, date(2023, time.December, 1), monthly.Retreat(start))

	quarterly := partition.Size{Unit: partition.Month, Count: 3}
	assert.Equal(t, date(2024, time.April, 1), quarterly.Advance(start))

	weekly := partition.Size{Unit: partition.Week}
	assert.Equal(t, date(2024, time.January, 8), weekly.Advance(start))
}

func TestSizeStartMultiCountGrid(t *testing.T) {
	quarterly := partition.Size{Unit: partition.Month, Count: 3}

	// Every instant inside a quarter aligns to the same calendar-quarter
	// start, no matter when the alignment runs.
	assert.Equal(t, date(2024, time.January, 1), quarterly.Start(date(2024, time.February, 15)))
	assert.Equal(t, date(2024, time.January, 1), quarterly.Start(date(2024, time.March, 15)))
	assert.Equal(t, date(2024, time.April, 1), quarterly.Start(date(2024, time.April, 1)))
	assert.Equal(t, date(2024, time.October, 1), quarterly.Start(date(2024, time.December, 31)))

	biennial := partition.Size{Unit: partition.Year, Count: 2}
	assert.Equal(t, date(2023, time.January, 1), biennial.Start(date(2024, time.June, 15)))
	assert.Equal(t, date(2023, time.January, 1), biennial.Start(date(2023, time.June, 15)))

	// 2024-06-10 is a Monday; a two-week grid puts both weeks of the
	// fortnight on one start.
	fortnightly := partition.Size{Unit: partition.Week, Count: 2}
	first := fortnightly.Start(date(2024, time.June, 10))
	assert.Equal(t, first, fortnightly.Start(first.AddDate(0, 0, 7)))
	assert.Equal(t, time.Monday, first.Weekday())

	tenDaily := partition.Size{Unit: partition.Day, Count: 10}
	assert.Equal(t,
		tenDaily.Start(date(2024, time.June, 11)),
		tenDaily.Start(date(2024, time.June, 12)))
}

func TestSizeName(t *testing.T) {
	assert.Equal(t, "2024", partition.Size{Unit: partition.Year}.Name(date(2024, time.June, 15)))
	assert.Equal(t, "2024_jan", partition.Size{Unit: partition.Month}.Name(date(2024, time.January, 1)))
	assert.Equal(t, "2024_jan_03", partition.Size{Unit: partition.Day}.Name(date(2024, time.January, 3)))
	assert.Equal(t, "2024_week_01", partition.Size{Unit: partition.Week}.Name(date(2024, time.January, 1)))
}
