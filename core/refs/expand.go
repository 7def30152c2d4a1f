package refs

// expandRange turns a (start, next, end) triple into an explicit
// ascending enumeration:
//
//	start            → [start]
//	start, next      → [start, next]
//	start-end        → [start, start+1, …, end]
//	start-end, next  → [start, start+1, …, end, next]
//
// The trailing next value is appended as-is, never merged into or
// deduplicated against the run. A descending range (end < start)
// degrades to [start]: the end is ignored rather than producing an
// empty enumeration.
func expandRange(start int, next, end *int) []int {
	if end == nil {
		if next == nil {
			return []int{start}
		}
		return []int{start, *next}
	}

	size := *end - start + 1
	if size < 1 {
		size = 1
	}
	run := make([]int, 0, size+1)
	for v := start; v <= *end; v++ {
		run = append(run, v)
	}
	if len(run) == 0 {
		run = append(run, start)
	}
	if next != nil {
		run = append(run, *next)
	}
	return run
}
