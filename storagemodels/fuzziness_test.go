/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFuzziness(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "0", want: "0"},
		{in: "2", want: "2"},
		{in: "auto", want: "auto:3,6"},
		{in: "auto:4,7", want: "auto:4,7"},
		{in: "AUTO:4,7", want: "auto:4,7"},
		{in: " auto:2,5 ", want: "auto:2,5"},
		{in: "", want: "auto:4,7"},
		{in: "-1", wantErr: true},
		{in: "auto:7,4", wantErr: true},
		{in: "auto:4", wantErr: true},
		{in: "auto:a,b", wantErr: true},
		{in: "fuzzy", wantErr: true},
	}

	for _, tt := range tests {
		f, err := ParseFuzziness(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, f.String(), "input %q", tt.in)
	}
}

func TestFuzzinessDistanceAuto(t *testing.T) {
	f := AutoFuzziness(4, 7)

	assert.Equal(t, 0, f.Distance(1))
	assert.Equal(t, 0, f.Distance(3))
	assert.Equal(t, 1, f.Distance(4))
	assert.Equal(t, 1, f.Distance(6))
	assert.Equal(t, 2, f.Distance(7))
	assert.Equal(t, 2, f.Distance(20))
}

func TestFuzzinessDistanceFixed(t *testing.T) {
	f := FixedFuzziness(2)

	for _, n := range []int{1, 4, 9} {
		assert.Equal(t, 2, f.Distance(n))
	}

	assert.Equal(t, 0, FixedFuzziness(-3).Distance(10))
}

func TestFuzzinessZeroValueFallsBackToDefault(t *testing.T) {
	var f Fuzziness

	assert.True(t, f.IsZero())
	assert.Equal(t, DefaultFuzziness.String(), f.String())
	assert.Equal(t, DefaultFuzziness.Distance(5), f.Distance(5))
}
