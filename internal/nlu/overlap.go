package nlu

import "sort"

// resolveOverlaps prunes candidate spans so that no two returned entities
// share a character offset. Candidates are walked in start order; on a
// conflict the strictly higher confidence wins and ties keep whichever was
// accepted first. The result stays ordered by start offset.
func resolveOverlaps(candidates []EntityMatch) []EntityMatch {
	sorted := make([]EntityMatch, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End > sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	accepted := make([]EntityMatch, 0, len(sorted))
	for _, c := range sorted {
		idx := -1
		for i, a := range accepted {
			if c.Start < a.End && a.Start < c.End {
				idx = i
				break
			}
		}
		if idx == -1 {
			accepted = append(accepted, c)
			continue
		}
		if c.Confidence > accepted[idx].Confidence {
			accepted[idx] = c
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}
