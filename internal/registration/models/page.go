package models

// StatusCounts maps each status to its count over a (possibly filtered)
// registration collection. Unseen statuses are present with count 0 so the
// counts always sum to the collection total.
type StatusCounts map[Status]int

// NewStatusCounts returns counts with every legal status at zero.
func NewStatusCounts() StatusCounts {
	counts := make(StatusCounts, 3)
	for _, s := range Statuses() {
		counts[s] = 0
	}
	return counts
}

// Total sums the per-status counts.
func (c StatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Page is the paginated, status-summarized view of a registration collection
// consumed by listing surfaces. StatusCounts covers the full filtered
// collection, not just the items on this page.
type Page struct {
	Items        []*Registration
	Total        int
	StatusCounts StatusCounts
}
