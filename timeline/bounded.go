package timeline

// boundedScan filters an already-ordered candidate window, keeping rows
// accepted by keep, and stops scanning as soon as max rows are kept. The
// filter is order-preserving, so the result retains the window's ordering
// without a re-sort. Anything past the earlier of (window end, max matches)
// is never surfaced; that truncation is the feed's bounded-latency contract.
func boundedScan[T any](window []T, max int, keep func(*T) (bool, error)) ([]T, error) {
	out := make([]T, 0, max)
	for i := range window {
		ok, err := keep(&window[i])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, window[i])
		if len(out) >= max {
			break
		}
	}
	return out, nil
}
