package nonwear

// Mask expands a canonical period list into a dense per-epoch 0/1 array of
// length n, writing 1 across each period's inclusive index range. Periods
// without resolved indexes are skipped: they stay valid for display and
// persistence but must be explicitly re-resolved before they can classify
// epochs, skipping is deliberate and never falls back to timestamps.
// The result always has length n, including the zero-period case
func Mask(n int, periods []Period) []uint8 {
	mask := make([]uint8, n)
	for _, p := range periods {
		if !p.HasIndices() {
			continue
		}
		lo, hi := *p.StartIndex, *p.EndIndex
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		for i := lo; i <= hi; i++ {
			mask[i] = 1
		}
	}
	return mask
}
