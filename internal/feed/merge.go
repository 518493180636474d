package feed

// mergeDesc performs a k-way merge of per-source slices, each already sorted
// newest first, into one sequence ordered by itemLess. Duplicate (kind, id)
// pairs are dropped, keeping the first occurrence.
func mergeDesc(sources [][]Item) []Item {
	total := 0
	for _, s := range sources {
		total += len(s)
	}
	merged := make([]Item, 0, total)
	heads := make([]int, len(sources))

	type itemKey struct {
		kind ItemKind
		id   string
	}
	seen := make(map[itemKey]bool, total)

	for {
		best := -1
		for i, s := range sources {
			if heads[i] >= len(s) {
				continue
			}
			if best == -1 || itemLess(s[heads[i]], sources[best][heads[best]]) {
				best = i
			}
		}
		if best == -1 {
			return merged
		}

		it := sources[best][heads[best]]
		heads[best]++

		key := itemKey{kind: it.Kind, id: it.ID}
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, it)
	}
}
