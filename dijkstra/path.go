package dijkstra

import "fmt"

// PathTo walks the predecessor map back from target and returns the
// vertex sequence source → … → target.
//
// Returns ErrNoPath if target has no predecessor chain leading to source.
// Complexity: O(path length).
func PathTo(prev map[string]string, source, target string) ([]string, error) {
	if source == "" {
		return nil, ErrEmptySource
	}
	if source == target {
		return []string{source}, nil
	}

	// Walk backwards; a chain longer than len(prev) would mean a cycle.
	rev := []string{target}
	cur := target
	for steps := 0; cur != source; steps++ {
		p := prev[cur]
		if p == "" || steps > len(prev) {
			return nil, fmt.Errorf("%w: %s → %s", ErrNoPath, source, target)
		}
		rev = append(rev, p)
		cur = p
	}

	// Reverse in place.
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev, nil
}
