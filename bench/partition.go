package bench

// Split divides items into exactly n contiguous chunks whose sizes
// differ by at most one, preserving the original order. It is a pure
// function of (items, n): the first len(items)%n chunks receive one
// extra item. When n exceeds the item count the trailing chunks are
// empty; their workers still report a zero count.
func Split(items WorkItemSet, n int) ([]WorkItemSet, error) {
	if n < 1 {
		return nil, ErrInvalidWorkers
	}

	base := len(items) / n
	remainder := len(items) % n

	chunks := make([]WorkItemSet, n)
	offset := 0
	for i := 0; i < n; i++ {
		size := base
		if i < remainder {
			size++
		}
		chunks[i] = items[offset : offset+size]
		offset += size
	}
	return chunks, nil
}
