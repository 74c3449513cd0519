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
	"fmt"
	"math"
	"sort"
)

// Curve is a one-dimensional transfer function, decoded from a curveType
// ("curv") or parametricCurveType ("para") element.  The concrete types are
// [*TableCurve] and [*ParametricCurve].
//
// Sampled tables with two or more entries clamp the argument of Lookup to
// [0, 1], and NaN is looked up as 0.  Otherwise Lookup and Invert do not
// clamp their arguments or results.
type Curve interface {
	// Lookup evaluates the curve at x.
	Lookup(x float64) float64

	// Invert returns an x with Lookup(x) ≈ y, for x in [0, 1].
	Invert(y float64) float64

	String() string
}

// TableCurve is a curve given by equally spaced samples over [0, 1].
//
// An empty table is the identity.  A table with a single entry g
// represents the power function y = x^g.  Longer tables are evaluated by
// linear interpolation between neighbouring samples.
type TableCurve struct {
	Samples []float64
}

// Lookup implements the [Curve] interface.
func (c *TableCurve) Lookup(x float64) float64 {
	n := len(c.Samples)
	switch n {
	case 0:
		return x
	case 1:
		if x <= 0 {
			return 0
		}
		return math.Pow(x, c.Samples[0])
	}

	pos := clamp(x, 0, 1) * float64(n-1)
	idx := min(int(pos), n-2)
	frac := pos - float64(idx)
	v0 := c.Samples[idx]
	v1 := c.Samples[idx+1]
	return v0 + frac*(v1-v0)
}

// Invert implements the [Curve] interface.  The table must be monotonic.
func (c *TableCurve) Invert(y float64) float64 {
	s := c.Samples
	n := len(s)
	switch n {
	case 0:
		return y
	case 1:
		if y <= 0 || s[0] == 0 {
			return 0
		}
		return math.Pow(y, 1/s[0])
	}

	decreasing := s[n-1] < s[0]
	idx := sort.Search(n, func(i int) bool {
		if decreasing {
			return s[i] <= y
		}
		return s[i] >= y
	})

	switch {
	case idx == 0:
		return 0
	case idx >= n:
		return 1
	}
	v0, v1 := s[idx-1], s[idx]
	if v1 == v0 {
		return float64(idx) / float64(n-1)
	}
	frac := (y - v0) / (v1 - v0)
	return (float64(idx-1) + frac) / float64(n-1)
}

func (c *TableCurve) String() string {
	switch len(c.Samples) {
	case 0:
		return "identity"
	case 1:
		return fmt.Sprintf("gamma %.4g", c.Samples[0])
	default:
		return fmt.Sprintf("table[%d]", len(c.Samples))
	}
}

// ParametricCurve is one of the five parametric function types of the ICC
// specification:
//
//	type 0: y = x^g
//	type 1: y = (ax+b)^g      for x >= -b/a, else y = 0
//	type 2: y = (ax+b)^g + c  for x >= -b/a, else y = c
//	type 3: y = (ax+b)^g      for x >= d,    else y = cx
//	type 4: y = (ax+b)^g + e  for x >= d,    else y = cx + f
//
// Coefficients not used by the function type are zero.
type ParametricCurve struct {
	Type                int
	G, A, B, C, D, E, F float64
}

// parametricCount gives the number of coefficients for each function type.
var parametricCount = [5]int{1, 3, 4, 5, 7}

// Lookup implements the [Curve] interface.
func (c *ParametricCurve) Lookup(x float64) float64 {
	switch c.Type {
	case 0:
		if x <= 0 {
			return 0
		}
		return math.Pow(x, c.G)
	case 1:
		if x >= -c.B/c.A {
			return powPos(c.A*x+c.B, c.G)
		}
		return 0
	case 2:
		if x >= -c.B/c.A {
			return powPos(c.A*x+c.B, c.G) + c.C
		}
		return c.C
	case 3:
		if x >= c.D {
			return powPos(c.A*x+c.B, c.G)
		}
		return c.C * x
	case 4:
		if x >= c.D {
			return powPos(c.A*x+c.B, c.G) + c.E
		}
		return c.C*x + c.F
	}
	return x
}

// Invert implements the [Curve] interface.
func (c *ParametricCurve) Invert(y float64) float64 {
	if c.G == 0 {
		return 0
	}
	invG := 1 / c.G

	switch c.Type {
	case 0:
		return powPos(y, invG)
	case 1:
		if c.A == 0 {
			return 0
		}
		if y <= 0 {
			return -c.B / c.A
		}
		return (math.Pow(y, invG) - c.B) / c.A
	case 2:
		if c.A == 0 {
			return 0
		}
		if y-c.C <= 0 {
			return -c.B / c.A
		}
		return (math.Pow(y-c.C, invG) - c.B) / c.A
	case 3:
		if y < c.C*c.D {
			if c.C == 0 {
				return 0
			}
			return y / c.C
		}
		if c.A == 0 || y <= 0 {
			return c.D
		}
		return (math.Pow(y, invG) - c.B) / c.A
	case 4:
		if y < c.C*c.D+c.F {
			if c.C == 0 {
				return 0
			}
			return (y - c.F) / c.C
		}
		if c.A == 0 || y-c.E <= 0 {
			return c.D
		}
		return (math.Pow(y-c.E, invG) - c.B) / c.A
	}
	return y
}

func (c *ParametricCurve) String() string {
	params := []float64{c.G, c.A, c.B, c.C, c.D, c.E, c.F}
	if c.Type >= 0 && c.Type < len(parametricCount) {
		params = params[:parametricCount[c.Type]]
	}
	return fmt.Sprintf("parametric type %d %.4g", c.Type, params)
}

// powPos computes v^g, treating negative bases as zero.
func powPos(v, g float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Pow(v, g)
}

// DecodeCurve decodes a curve from ICC tag data.
// The data must be a curveType or parametricCurveType element.
func DecodeCurve(data []byte) (Curve, error) {
	c, _, err := decodeCurve(data)
	return c, err
}

// decodeCurve decodes a curve and also returns the number of bytes used,
// without padding.
func decodeCurve(data []byte) (Curve, int, error) {
	if len(data) < 12 {
		return nil, 0, errInvalidTagData
	}

	switch Signature(getUint32(data, 0)) {
	case typeCurve:
		n := getUint32(data, 8)
		size := 12 + 2*uint64(n)
		if uint64(len(data)) < size {
			return nil, 0, errInvalidTagData
		}
		c := &TableCurve{}
		if n == 1 {
			c.Samples = []float64{getU8Fixed8(data, 12)}
		} else if n > 1 {
			c.Samples = make([]float64, n)
			for i := range c.Samples {
				c.Samples[i] = float64(getUint16(data, 12+2*i)) / 65535
			}
		}
		return c, int(size), nil

	case typeParametric:
		funcType := int(getUint16(data, 8))
		if funcType >= len(parametricCount) {
			return nil, 0, errInvalidTagData
		}
		numParams := parametricCount[funcType]
		size := 12 + 4*numParams
		if len(data) < size {
			return nil, 0, errInvalidTagData
		}
		var p [7]float64
		for i := range numParams {
			p[i] = getS15Fixed16(data, 12+4*i)
		}
		c := &ParametricCurve{
			Type: funcType,
			G:    p[0], A: p[1], B: p[2], C: p[3], D: p[4], E: p[5], F: p[6],
		}
		return c, size, nil

	default:
		return nil, 0, errUnexpectedType
	}
}
