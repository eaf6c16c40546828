package partition

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type (
	// Unit is the calendar unit a partition size is expressed in.
	Unit string

	// Size is the span of one partition: a calendar unit and a multiplier,
	// e.g. {Month, 1} for monthly partitions or {Day, 7} for week-sized
	// daily-aligned ones.
	Size struct {
		Unit  Unit
		Count int
	}
)

const (
	Day   Unit = "day"
	Week  Unit = "week"
	Month Unit = "month"
	Year  Unit = "year"
)

// ParseUnit maps a config string onto a Unit.
//
// Accepted spellings: "daily"/"day", "weekly"/"week", "monthly"/"month",
// "yearly"/"year".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "day", "daily":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "year", "yearly":
		return Year, nil
	default:
		return "", errors.Errorf("%q is not a recognized partition interval", s)
	}
}

func (s Size) count() int {
	if s.Count < 1 {
		return 1
	}
	return s.Count
}

// gridAnchor is the fixed origin multi-count periods are measured from:
// 2001-01-01, a Monday, so week grids stay Monday-aligned. Anchoring to a
// constant keeps the grid identical across maintenance runs; aligning to the
// period containing "now" would shift the grid every run and plan
// overlapping partitions.
var gridAnchor = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Start aligns t to the beginning of the period containing it, in UTC.
// Weeks start on Monday. Multi-count sizes align to a fixed grid of Count
// units anchored at gridAnchor, so every evaluation of the same instant
// lands on the same period regardless of when it runs.
func (s Size) Start(t time.Time) time.Time {
	t = t.UTC()
	count := s.count()

	switch s.Unit {
	case Year:
		year := t.Year() - floorMod(t.Year()-gridAnchor.Year(), count)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	case Month:
		months := (t.Year()-gridAnchor.Year())*12 + int(t.Month()) - 1
		months -= floorMod(months, count)
		return gridAnchor.AddDate(0, months, 0)
	case Week:
		weeks := floorDiv(daysSinceAnchor(t), 7)
		weeks -= floorMod(weeks, count)
		return gridAnchor.AddDate(0, 0, 7*weeks)
	default:
		days := daysSinceAnchor(t)
		days -= floorMod(days, count)
		return gridAnchor.AddDate(0, 0, days)
	}
}

func daysSinceAnchor(t time.Time) int {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(gridAnchor).Hours() / 24)
}

func floorDiv(n, m int) int {
	return (n - floorMod(n, m)) / m
}

func floorMod(n, m int) int {
	return ((n % m) + m) % m
}

// Advance moves a period start forward by one size.
func (s Size) Advance(t time.Time) time.Time {
	return s.step(t, 1)
}

// Retreat moves a period start backward by one size.
func (s Size) Retreat(t time.Time) time.Time {
	return s.step(t, -1)
}

func (s Size) step(t time.Time, direction int) time.Time {
	n := s.count() * direction

	switch s.Unit {
	case Year:
		return t.AddDate(n, 0, 0)
	case Month:
		return t.AddDate(0, n, 0)
	case Week:
		return t.AddDate(0, 0, 7*n)
	default:
		return t.AddDate(0, 0, n)
	}
}

// Name renders the partition-table suffix for the period starting at t.
//
// Examples: yearly "2024", monthly "2024_jan", weekly "2024_week_05" (ISO
// week numbering), daily "2024_jan_03".
func (s Size) Name(t time.Time) string {
	t = t.UTC()

	switch s.Unit {
	case Year:
		return t.Format("2006")
	case Month:
		return strings.ToLower(t.Format("2006_Jan"))
	case Week:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d_week_%02d", year, week)
	default:
		return strings.ToLower(t.Format("2006_Jan_02"))
	}
}
