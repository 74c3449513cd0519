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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/iccprofile/internal/icctest"
)

func TestTableCurvePower(t *testing.T) {
	c := &TableCurve{Samples: []float64{2}}
	if y := c.Lookup(8); y != 64 {
		t.Errorf("Lookup(8) = %g, want 64", y)
	}
	if y := c.Lookup(-1); y != 0 {
		t.Errorf("Lookup(-1) = %g, want 0", y)
	}

	tests := []struct {
		gamma float64
		input float64
		want  float64
	}{
		{1.0, 0.5, 0.5},
		{2.0, 0.5, 0.25},
		{2.2, 0.5, 0.2176},
		{2.2, 0.0, 0.0},
		{2.2, 1.0, 1.0},
	}
	for _, tt := range tests {
		c := &TableCurve{Samples: []float64{tt.gamma}}
		got := c.Lookup(tt.input)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("gamma %.1f: Lookup(%.2f) = %.4f, want %.4f",
				tt.gamma, tt.input, got, tt.want)
		}
	}
}

func TestTableCurveInvert(t *testing.T) {
	inputs := []float64{0.0, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0}

	for _, gamma := range []float64{1.0, 1.8, 2.2, 2.4} {
		c := &TableCurve{Samples: []float64{gamma}}
		for _, x := range inputs {
			y := c.Lookup(x)
			if xBack := c.Invert(y); math.Abs(xBack-x) > 1e-6 {
				t.Errorf("gamma %.1f: round-trip failed: %f -> %f -> %f", gamma, x, y, xBack)
			}
		}
	}

	// sampled gamma 2.2 curve
	samples := make([]float64, 256)
	for i := range samples {
		samples[i] = math.Pow(float64(i)/255, 2.2)
	}
	c := &TableCurve{Samples: samples}
	for _, x := range inputs {
		y := c.Lookup(x)
		if xBack := c.Invert(y); math.Abs(xBack-x) > 0.01 {
			t.Errorf("sampled: round-trip failed: %f -> %f -> %f", x, y, xBack)
		}
	}

	// decreasing tables are inverted too
	dec := &TableCurve{Samples: []float64{1, 0.5, 0}}
	assert.InDelta(t, 0.25, dec.Invert(0.75), 1e-12)
}

func TestTableCurveInterpolation(t *testing.T) {
	c := &TableCurve{Samples: []float64{0, 0.5, 0.6}}
	tests := []struct{ x, want float64 }{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{0.5, 0.5},
		{0.75, 0.55},
		{1, 0.6},
		{2, 0.6},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.Lookup(tt.x), 1e-12, "x=%g", tt.x)
	}

	identity := &TableCurve{}
	assert.Equal(t, 0.3, identity.Lookup(0.3))
	assert.Equal(t, 0.3, identity.Invert(0.3))
}

func TestParametricType2(t *testing.T) {
	c := &ParametricCurve{Type: 2, G: 1, A: 2, B: 3, C: 4}
	if y := c.Lookup(8); y != 23 {
		t.Errorf("Lookup(8) = %g, want 23", y)
	}
	if y := c.Lookup(-8); y != 4 {
		t.Errorf("Lookup(-8) = %g, want 4", y)
	}
	// at the breakpoint the power branch applies
	if y := c.Lookup(-1.5); y != 4 {
		t.Errorf("Lookup(-1.5) = %g, want 4", y)
	}
}

func TestParametricBranches(t *testing.T) {
	tests := []struct {
		name  string
		curve ParametricCurve
		x     float64
		want  float64
	}{
		{"type 0", ParametricCurve{Type: 0, G: 2.2}, 0.5, math.Pow(0.5, 2.2)},
		{"type 0 negative", ParametricCurve{Type: 0, G: 2.2}, -0.5, 0},
		{"type 1 above", ParametricCurve{Type: 1, G: 2, A: 1, B: -0.5}, 1, 0.25},
		{"type 1 below", ParametricCurve{Type: 1, G: 2, A: 1, B: -0.5}, 0.25, 0},
		{"type 3 linear", ParametricCurve{Type: 3, G: 2.4, A: 1 / 1.055, B: 0.055 / 1.055, C: 1 / 12.92, D: 0.04045}, 0.02, 0.02 / 12.92},
		{"type 4 linear", ParametricCurve{Type: 4, G: 1, A: 1, C: 2, D: 0.5, E: 0.1, F: 0.05}, 0.25, 0.55},
		{"type 4 power", ParametricCurve{Type: 4, G: 1, A: 1, C: 2, D: 0.5, E: 0.1, F: 0.05}, 0.75, 0.85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.curve.Lookup(tt.x), 1e-12)
		})
	}
}

func TestParametricInvert(t *testing.T) {
	// sRGB: g=2.4, a=1/1.055, b=0.055/1.055, c=1/12.92, d=0.04045
	srgb := &ParametricCurve{Type: 3, G: 2.4, A: 1 / 1.055, B: 0.055 / 1.055, C: 1 / 12.92, D: 0.04045}
	for _, x := range []float64{0.0, 0.01, 0.04, 0.04045, 0.05, 0.1, 0.5, 1.0} {
		y := srgb.Lookup(x)
		if xBack := srgb.Invert(y); math.Abs(xBack-x) > 1e-5 {
			t.Errorf("sRGB: round-trip failed: %f -> %f -> %f", x, y, xBack)
		}
	}

	g := &ParametricCurve{Type: 0, G: 2.2}
	y := g.Lookup(0.5)
	if xBack := g.Invert(y); math.Abs(xBack-0.5) > 1e-6 {
		t.Errorf("type 0: round-trip failed: 0.5 -> %f -> %f", y, xBack)
	}
}

func TestDecodeCurve(t *testing.T) {
	c, err := DecodeCurve(icctest.Gamma(2.2))
	require.NoError(t, err)
	require.IsType(t, &TableCurve{}, c)
	assert.InDelta(t, 2.2, c.(*TableCurve).Samples[0], 1.0/256)

	c, err = DecodeCurve(icctest.Table(0, 0.5, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 32768.0 / 65535, 1}, c.(*TableCurve).Samples)

	c, err = DecodeCurve(icctest.Identity())
	require.NoError(t, err)
	assert.Equal(t, "identity", c.String())

	c, err = DecodeCurve(icctest.SRGBCurve())
	require.NoError(t, err)
	p, ok := c.(*ParametricCurve)
	require.True(t, ok)
	assert.Equal(t, 3, p.Type)
	assert.InDelta(t, 2.4, p.G, 1e-4)
	assert.InDelta(t, 0.04045, p.D, 1e-4)
	assert.Zero(t, p.E)
}

func TestDecodeCurveInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short table", icctest.Table(0, 1)[:14]},
		{"bad function type", icctest.Parametric(5, 1)},
		{"missing parameters", icctest.Parametric(3, 2.4, 1)},
		{"wrong type", icctest.XYZ(icctest.D50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCurve(tt.data)
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, ErrUnsupported) {
				t.Errorf("structural error reported as unsupported: %v", err)
			}
		})
	}
}

func TestTableCurveClamp(t *testing.T) {
	c := &TableCurve{Samples: []float64{0.2, 0.4, 0.8}}
	assert.Equal(t, 0.2, c.Lookup(math.NaN()))
	assert.Equal(t, 0.2, c.Lookup(-1))
	assert.InDelta(t, 0.8, c.Lookup(2), 1e-12)
	assert.InDelta(t, 0.6, c.Lookup(0.75), 1e-12)

	// single-entry tables and the identity are not clamped
	assert.Equal(t, 4.0, (&TableCurve{Samples: []float64{2}}).Lookup(2))
	assert.Equal(t, -0.5, (&TableCurve{}).Lookup(-0.5))
}
