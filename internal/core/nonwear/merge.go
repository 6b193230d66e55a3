package nonwear

import (
	"sort"
	"time"
)

// mergeGap is the largest gap between two periods that still folds them into
// one; one minute matches the persistence granularity
const mergeGap = time.Minute

// Merge folds an unordered, possibly overlapping period list into the
// canonical sorted, non-overlapping list. Two periods merge when the later
// one starts no more than a minute after the earlier one ends.
//
// When periods merge, the metadata (source, participant) of the earlier
// accumulated period wins over the incoming one, end indexes merge by max
// only when both sides carry one, and the duration is recomputed only when
// the merged period has both endpoints resolved. Downstream code depends on
// that asymmetry, so it is pinned by tests rather than corrected here.
// Merge is idempotent over its own output
func Merge(periods []Period) []Period {
	if len(periods) == 0 {
		return nil
	}

	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := make([]Period, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start.Sub(cur.End) > mergeGap {
			out = append(out, cur)
			cur = next
			continue
		}
		cur = mergeInto(cur, next)
	}
	return append(out, cur)
}

// mergeInto absorbs next into cur, keeping cur's metadata
func mergeInto(cur, next Period) Period {
	if next.End.After(cur.End) {
		cur.End = next.End
	}

	switch {
	case cur.EndIndex != nil && next.EndIndex != nil:
		if *next.EndIndex > *cur.EndIndex {
			cur.EndIndex = intPtr(*next.EndIndex)
		}
	case cur.EndIndex == nil && next.EndIndex != nil:
		cur.EndIndex = intPtr(*next.EndIndex)
	}

	if cur.StartIndex != nil && cur.EndIndex != nil {
		cur.DurationMinutes = intPtr(*cur.EndIndex - *cur.StartIndex + 1)
	} else {
		cur.DurationMinutes = nil
	}
	return cur
}
