package partition_test

import (
	"testing"
	"time"

	"github.com/pgcarve/pgcarve/pkg/partition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCreate(t *testing.T) {
	strategy := &partition.TimeStrategy{
		Size:  partition.Size{Unit: partition.Month},
		Count: 3,
	}

	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	partitions := strategy.ToCreate(now)
	require.Len(t, partitions, 3)

	assert.Equal(t, "2024_jun", partitions[0].Suffix())
	assert.Equal(t, "2024_jul", partitions[1].Suffix())
	assert.Equal(t, "2024_aug", partitions[2].Suffix())

	// Bounds are half-open, contiguous month intervals.
	assert.Equal(t, date(2024, time.June, 1), partitions[0].From())
	assert.Equal(t, date(2024, time.July, 1), partitions[0].To())
	assert.Equal(t, partitions[0].To(), partitions[1].From())
}

func TestToCreateSpansYearBoundary(t *testing.T) {
	strategy := &partition.TimeStrategy{
		Size:  partition.Size{Unit: partition.Month},
		Count: 3,
	}

	partitions := strategy.ToCreate(date(2024, time.December, 5))
	require.Len(t, partitions, 3)
	assert.Equal(t, "2024_dec", partitions[0].Suffix())
	assert.Equal(t, "2025_jan", partitions[1].Suffix())
	assert.Equal(t, "2025_feb", partitions[2].Suffix())
}

func TestToCreateCountBelowOne(t *testing.T) {
	strategy := &partition.TimeStrategy{Size: partition.Size{Unit: partition.Day}}
	assert.Len(t, strategy.ToCreate(date(2024, time.June, 1)), 1)
}

func TestToDelete(t *testing.T) {
	strategy := &partition.TimeStrategy{
		Size:      partition.Size{Unit: partition.Month},
		Count:     2,
		Retention: 2,
	}

	now := date(2024, time.June, 15)
	candidates := strategy.ToDelete(now)
	require.NotEmpty(t, candidates)

	// Retention keeps June (current), May, and April; March is the most
	// recent deletable period.
	assert.Equal(t, "2024_mar", candidates[0].Suffix())
	assert.Equal(t, "2024_feb", candidates[1].Suffix())

	for _, c := range candidates {
		assert.True(t, c.To().Before(date(2024, time.May, 1)) || c.To().Equal(date(2024, time.May, 1)))
	}
}

func TestToCreateStableAcrossRuns(t *testing.T) {
	strategy := &partition.TimeStrategy{
		Size:  partition.Size{Unit: partition.Month, Count: 3},
		Count: 2,
	}

	// Two maintenance runs a month apart, inside the same quarter, must
	// plan identical partitions; a shifted grid would produce overlapping
	// bounds the database rejects on the second run.
	first := strategy.ToCreate(date(2024, time.February, 15))
	second := strategy.ToCreate(date(2024, time.March, 15))
	require.Equal(t, first, second)

	assert.Equal(t, "2024_jan", first[0].Suffix())
	assert.Equal(t, date(2024, time.January, 1), first[0].From())
	assert.Equal(t, date(2024, time.April, 1), first[0].To())
	assert.Equal(t, first[0].To(), first[1].From())
}

func TestToDeleteWithoutRetention(t *testing.T) {
	strategy := &partition.TimeStrategy{
		Size:  partition.Size{Unit: partition.Month},
		Count: 2,
	}

	assert.Empty(t, strategy.ToDelete(date(2024, time.June, 15)))
}
