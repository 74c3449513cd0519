// seehuhn.de/go/iccprofile - colour conversion with ICC profiles
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package iccprofile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/iccprofile/internal/icctest"
)

func identityCLUT(inputs, points int) *CLUT {
	grid := make([]int, inputs)
	for i := range grid {
		grid[i] = points
	}
	return &CLUT{
		GridPoints: grid,
		Outputs:    inputs,
		Precision:  2,
		Values: icctest.Grid(inputs, points, func(in []float64) []float64 {
			return append([]float64(nil), in...)
		}),
	}
}

func TestCLUTMultilinear(t *testing.T) {
	c := identityCLUT(3, 2)
	tests := [][]float64{
		{0, 0, 0},
		{1, 1, 1},
		{0.5, 0.5, 0.5},
		{0.25, 0.75, 0.5},
		{0.1, 0.2, 0.9},
	}
	for _, in := range tests {
		out := c.Apply(in)
		for i := range 3 {
			assert.InDelta(t, in[i], out[i], 1e-12, "Apply(%v)", in)
		}
	}

	// multilinear interpolation reproduces bilinear functions exactly
	f := func(in []float64) []float64 {
		return []float64{in[0] * in[1], (1 - in[0]) * in[1] * in[2]}
	}
	c = &CLUT{GridPoints: []int{3, 5, 2}, Outputs: 2, Precision: 2}
	for i := range 3 {
		for j := range 5 {
			for k := range 2 {
				x := []float64{float64(i) / 2, float64(j) / 4, float64(k)}
				c.Values = append(c.Values, f(x)...)
			}
		}
	}
	for _, in := range tests {
		want := f(in)
		got := c.Apply(in)
		assert.InDelta(t, want[0], got[0], 1e-12)
		assert.InDelta(t, want[1], got[1], 1e-12)
	}
}

func TestCLUTInputs(t *testing.T) {
	c := identityCLUT(3, 5)

	// missing inputs are zero, extra inputs are ignored
	assert.Equal(t, c.Apply([]float64{0.5, 0, 0}), c.Apply([]float64{0.5}))
	assert.Equal(t, c.Apply([]float64{0.5, 0.25, 1}), c.Apply([]float64{0.5, 0.25, 1, 0.7}))

	// out of range inputs are clamped
	out := c.Apply([]float64{-1, 2, math.NaN()})
	assert.Equal(t, []float64{0, 1, 0}, out)
}

func TestCLUTFifteenChannels(t *testing.T) {
	c := identityCLUT(MaxChannels, 2)
	in := make([]float64, MaxChannels)
	for i := range in {
		in[i] = float64(i) / float64(MaxChannels)
	}
	out := c.Apply(in)
	for i := range in {
		assert.InDelta(t, in[i], out[i], 1e-9)
	}
}

func TestCLUTPrecision(t *testing.T) {
	f := func(in []float64) []float64 {
		return []float64{
			math.Sqrt(in[0]),
			in[1] * in[1],
			(in[0] + in[1] + in[2]) / 3,
		}
	}
	build := func(prec int) *Luts {
		l := &icctest.Luts{
			Inputs:  3,
			Outputs: 3,
			A:       curves(3),
			Grid:    []int{9, 9, 9},
			Prec:    prec,
			CLUT:    icctest.Grid(3, 9, f),
			B:       curves(3),
		}
		res, err := decodeLuts(l.AToB(), DeviceToPCS)
		require.NoError(t, err)
		return res
	}
	l8 := build(1)
	l16 := build(2)
	assert.Equal(t, 1, l8.CLUT.Precision)
	assert.Equal(t, 2, l16.CLUT.Precision)

	for _, in := range [][]float64{{0, 0, 0}, {0.3, 0.6, 0.9}, {1, 0.5, 0.125}, {0.77, 0.01, 0.5}} {
		out8 := l8.Apply(in)
		out16 := l16.Apply(in)
		for i := range out8 {
			assert.InDelta(t, out16[i], out8[i], 1.0/255, "input %v channel %d", in, i)
		}
	}
}

func TestCLUTSizeLimit(t *testing.T) {
	assert.Zero(t, clutSize([]int{255, 255, 255, 255, 255}, 15))
	assert.Equal(t, 2*3*4*5, clutSize([]int{2, 3, 4}, 5))
}

func TestCLUTString(t *testing.T) {
	c := &CLUT{GridPoints: []int{9, 9, 9, 9}, Outputs: 3, Precision: 1}
	assert.Equal(t, "CLUT [4→3, 9x9x9x9, 8-bit]", c.String())
}

// curves returns n identity curve elements.
func curves(n int) [][]byte {
	res := make([][]byte, n)
	for i := range res {
		res[i] = icctest.Identity()
	}
	return res
}
