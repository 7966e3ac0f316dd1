/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

// boundedLevenshtein computes the edit distance between a and b, giving up as
// soon as it exceeds max. It returns max+1 in that case, so callers compare
// the result against max directly. Distances are measured in runes.
func boundedLevenshtein(a, b string, max int) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	if la > lb {
		ra, rb = rb, ra
		la, lb = lb, la
	}
	if lb-la > max {
		return max + 1
	}
	if la == 0 {
		return lb
	}

	row := make([]int, la+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= lb; j++ {
		prev := row[0]
		row[0] = j
		best := row[0]
		for i := 1; i <= la; i++ {
			cur := row[i]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := row[i] + 1
			ins := row[i-1] + 1
			sub := prev + cost
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			row[i] = min
			prev = cur
			if min < best {
				best = min
			}
		}
		if best > max {
			return max + 1
		}
	}

	if row[la] > max {
		return max + 1
	}
	return row[la]
}
