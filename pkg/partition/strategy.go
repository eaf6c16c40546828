package partition

import "time"

// maxDeleteLookback bounds how many expired periods the strategy walks back
// when proposing deletions. Anything older never had partitions created by
// this tool at a reasonable cadence, and deletion candidates are intersected
// with live partitions anyway.
const maxDeleteLookback = 256

type (
	// TimePartition is one planned partition: a half-open [From, To) time
	// range sized by the strategy.
	TimePartition struct {
		start time.Time
		size  Size
	}

	// TimeStrategy plans partitions around the current time: the partition
	// for the period containing "now" plus Count-1 upcoming ones always
	// exist, and partitions whose period ended more than Retention periods
	// ago are deleted.
	TimeStrategy struct {
		// Size of each partition.
		Size Size

		// Count is how many partitions to keep ahead, including the
		// current period. Values below 1 behave as 1.
		Count int

		// Retention is how many past periods to keep behind the current
		// one. Zero or negative means partitions are never deleted.
		Retention int
	}
)

// Suffix is the table-name suffix for this partition, e.g. "2024_jan".
func (p TimePartition) Suffix() string {
	return p.size.Name(p.start)
}

// From is the inclusive lower bound of the partition's range.
func (p TimePartition) From() time.Time {
	return p.start
}

// To is the exclusive upper bound of the partition's range.
func (p TimePartition) To() time.Time {
	return p.size.Advance(p.start)
}

func (s *TimeStrategy) count() int {
	if s.Count < 1 {
		return 1
	}
	return s.Count
}

// ToCreate returns the partitions that should exist as of now: the current
// period and Count-1 periods ahead, in chronological order.
func (s *TimeStrategy) ToCreate(now time.Time) []TimePartition {
	partitions := make([]TimePartition, 0, s.count())

	start := s.Size.Start(now)
	for i := 0; i < s.count(); i++ {
		partitions = append(partitions, TimePartition{start: start, size: s.Size})
		start = s.Size.Advance(start)
	}

	return partitions
}

// ToDelete returns candidate partitions whose period ended more than
// Retention periods before now, most recent first. Candidates are proposals;
// the manager only deletes ones that actually exist.
func (s *TimeStrategy) ToDelete(now time.Time) []TimePartition {
	if s.Retention <= 0 {
		return nil
	}

	start := s.Size.Start(now)
	for i := 0; i < s.Retention; i++ {
		start = s.Size.Retreat(start)
	}

	var partitions []TimePartition
	for i := 0; i < maxDeleteLookback; i++ {
		start = s.Size.Retreat(start)
		partitions = append(partitions, TimePartition{start: start, size: s.Size})
	}

	return partitions
}
