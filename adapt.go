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

// Standard illuminants, normalised to Y = 1.
var (
	D65 = XYZ{0.95047, 1.0, 1.08883}
	A   = XYZ{1.09850, 1.0, 0.35585}
)

// matrix3 is a 3×3 matrix, stored row by row.
type matrix3 [9]float64

var (
	bradford = matrix3{
		0.8951, 0.2664, -0.1614,
		-0.7502, 1.7135, 0.0367,
		0.0389, -0.0685, 1.0296,
	}
	bradfordInv = bradford.inverse()
)

// AdaptFromD50 converts a D50-relative XYZ value, as used in the PCS, to
// the given reference white, using the Bradford chromatic adaptation
// transform.
func AdaptFromD50(xyz, white XYZ) XYZ {
	return adaptationMatrix(D50, white).apply(xyz)
}

// AdaptToD50 converts an XYZ value relative to the given reference white
// into the D50 connection space.  It is the inverse of [AdaptFromD50].
func AdaptToD50(xyz, white XYZ) XYZ {
	return adaptationMatrix(white, D50).apply(xyz)
}

// adaptationMatrix returns the Bradford matrix mapping colours seen under
// src to the corresponding colours under dst.
func adaptationMatrix(src, dst XYZ) matrix3 {
	s := bradford.apply(src)
	d := bradford.apply(dst)
	scale := matrix3{
		d[0] / s[0], 0, 0,
		0, d[1] / s[1], 0,
		0, 0, d[2] / s[2],
	}
	return bradfordInv.mul(scale.mul(bradford))
}

func (m matrix3) apply(v XYZ) XYZ {
	return XYZ{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

func (m matrix3) mul(n matrix3) matrix3 {
	var res matrix3
	for i := range 3 {
		for j := range 3 {
			var sum float64
			for k := range 3 {
				sum += m[3*i+k] * n[3*k+j]
			}
			res[3*i+j] = sum
		}
	}
	return res
}

// inverse returns the inverse of m.  The result is all zeros if m is singular.
func (m matrix3) inverse() matrix3 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 {
		return matrix3{}
	}
	inv := 1 / det
	return matrix3{
		(e*i - f*h) * inv, (c*h - b*i) * inv, (b*f - c*e) * inv,
		(f*g - d*i) * inv, (a*i - c*g) * inv, (c*d - a*f) * inv,
		(d*h - e*g) * inv, (b*g - a*h) * inv, (a*e - b*d) * inv,
	}
}
