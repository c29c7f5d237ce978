package maturity

// Modal returns the most frequent assessed level in scores, or "" if no
// entry is assessed. Unassessed entries are filtered out before counting.
//
// Tie-break: the tally is scanned in first-seen order and a level only
// wins when its count strictly exceeds the running maximum, so among
// equally frequent levels the one encountered first in the input
// sequence wins. [Advanced, Initial] yields Advanced. The same rule is
// used everywhere a "most common level" is derived, including the
// interview narrative.
func Modal(scores []Level) Level {
	counts := map[Level]int{}
	var seen []Level
	for _, s := range scores {
		if !s.Assessed() {
			continue
		}
		if counts[s] == 0 {
			seen = append(seen, s)
		}
		counts[s]++
	}
	if len(seen) == 0 {
		return ""
	}

	var modal Level
	max := 0
	for _, level := range seen {
		if counts[level] > max {
			max = counts[level]
			modal = level
		}
	}
	return modal
}

// Average returns the mean numeric score (1-4) of the assessed entries
// and the number of entries that were assessed. ok is false when nothing
// is assessed.
func Average(scores []Level) (avg float64, assessed int, ok bool) {
	sum := 0
	for _, s := range scores {
		if !s.Assessed() {
			continue
		}
		sum += s.Score()
		assessed++
	}
	if assessed == 0 {
		return 0, 0, false
	}
	return float64(sum) / float64(assessed), assessed, true
}
