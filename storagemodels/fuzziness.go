/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"fmt"
	"strconv"
	"strings"
)

// Fuzziness is the maximum edit distance allowed between a query token and a
// stored variant. It is either a fixed distance or an auto-scaling policy keyed
// by token length: tokens shorter than Low match exactly, tokens shorter than
// High allow distance 1, longer tokens allow distance 2.
type Fuzziness struct {
	// set distinguishes an explicit FixedFuzziness(0) from the zero value.
	set   bool
	auto  bool
	fixed int
	low   int
	high  int
}

// Default auto buckets, matching the search engine's AUTO behavior.
const (
	defaultAutoLow  = 3
	defaultAutoHigh = 6
)

// DefaultFuzziness is the policy used when callers pass the zero value.
var DefaultFuzziness = AutoFuzziness(4, 7)

// FixedFuzziness returns a policy with a constant edit distance.
func FixedFuzziness(distance int) Fuzziness {
	if distance < 0 {
		distance = 0
	}
	return Fuzziness{set: true, fixed: distance}
}

// AutoFuzziness returns a length-scaled policy with the given bucket boundaries.
func AutoFuzziness(low, high int) Fuzziness {
	if low < 1 {
		low = defaultAutoLow
	}
	if high < low {
		high = low
	}
	return Fuzziness{set: true, auto: true, low: low, high: high}
}

// ParseFuzziness accepts "2", "auto" or "auto:4,7".
func ParseFuzziness(s string) (Fuzziness, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return DefaultFuzziness, nil
	}
	if s == "auto" {
		return AutoFuzziness(defaultAutoLow, defaultAutoHigh), nil
	}
	if rest, ok := strings.CutPrefix(s, "auto:"); ok {
		parts := strings.Split(rest, ",")
		if len(parts) != 2 {
			return Fuzziness{}, fmt.Errorf("invalid fuzziness %q: want auto:<low>,<high>", s)
		}
		low, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return Fuzziness{}, fmt.Errorf("invalid fuzziness %q: %w", s, err)
		}
		high, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Fuzziness{}, fmt.Errorf("invalid fuzziness %q: %w", s, err)
		}
		if low < 1 || high < low {
			return Fuzziness{}, fmt.Errorf("invalid fuzziness %q: want 1 <= low <= high", s)
		}
		return AutoFuzziness(low, high), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Fuzziness{}, fmt.Errorf("invalid fuzziness %q", s)
	}
	return FixedFuzziness(n), nil
}

// IsZero reports whether f is the zero value, i.e. no policy was specified.
func (f Fuzziness) IsZero() bool {
	return !f.set
}

// Distance returns the edit distance allowed for a token of the given length.
func (f Fuzziness) Distance(tokenLen int) int {
	if f.IsZero() {
		return DefaultFuzziness.Distance(tokenLen)
	}
	if !f.auto {
		return f.fixed
	}
	switch {
	case tokenLen < f.low:
		return 0
	case tokenLen < f.high:
		return 1
	default:
		return 2
	}
}

func (f Fuzziness) String() string {
	if f.IsZero() {
		return DefaultFuzziness.String()
	}
	if f.auto {
		return fmt.Sprintf("auto:%d,%d", f.low, f.high)
	}
	return strconv.Itoa(f.fixed)
}
