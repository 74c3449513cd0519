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

package icctest

import "math"

// D50 is the PCS white point.
var D50 = [3]float64{0.9642, 1.0, 0.8249}

// SRGBToXYZ maps linear sRGB to D50 XYZ.  The columns are the
// Bradford-adapted sRGB primaries.
var SRGBToXYZ = [9]float64{
	0.4360747, 0.3850649, 0.1430804,
	0.2225045, 0.7168786, 0.0606169,
	0.0139322, 0.0971045, 0.7141733,
}

// XYZToSRGB is the inverse of SRGBToXYZ.
var XYZToSRGB = invert(SRGBToXYZ)

// xyzScale is the factor between u1Fixed15 XYZ and the normalised range.
const xyzScale = 65535.0 / 32768.0

// legacyLabScale relates v4 and lut16Type Lab encodings.
const legacyLabScale = 65535.0 / 65280.0

// PressToXYZ is the characterisation shared by the synthetic press
// profiles: an ideal subtractive CMYK process with sRGB primaries.
func PressToXYZ(cmyk []float64) [3]float64 {
	k := 1 - cmyk[3]
	rgb := [3]float64{(1 - cmyk[0]) * k, (1 - cmyk[1]) * k, (1 - cmyk[2]) * k}
	return mul(SRGBToXYZ, rgb)
}

// XYZToPress inverts PressToXYZ without black generation.  Colours
// outside the gamut are clipped.
func XYZToPress(xyz [3]float64) []float64 {
	rgb := mul(XYZToSRGB, xyz)
	return []float64{1 - clamp01(rgb[0]), 1 - clamp01(rgb[1]), 1 - clamp01(rgb[2]), 0}
}

// PressV4 returns a CMYK output profile with XYZ PCS, using lutAToBType and
// lutBToAType tags.  Both directions represent the characterisation
// exactly, up to 16-bit quantisation.
func PressV4() []byte {
	toXYZ := SRGBToXYZ
	var fwd [12]float64
	for i, v := range toXYZ {
		fwd[i] = v / xyzScale
	}
	aToB := &Luts{
		Inputs:  4,
		Outputs: 3,
		A:       repeat(Identity(), 4),
		Grid:    []int{2, 2, 2, 2},
		CLUT: Grid(4, 2, func(in []float64) []float64 {
			k := 1 - in[3]
			return []float64{(1 - in[0]) * k, (1 - in[1]) * k, (1 - in[2]) * k}
		}),
		M:      repeat(Parametric(0, 1), 3),
		Matrix: &fwd,
		B:      repeat(Identity(), 3),
	}

	var inv [12]float64
	for i, v := range XYZToSRGB {
		inv[i] = v * xyzScale
	}
	bToA := &Luts{
		Inputs:  3,
		Outputs: 4,
		B:       repeat(Identity(), 3),
		Matrix:  &inv,
		M:       repeat(Identity(), 3),
		Grid:    []int{2, 2, 2},
		CLUT: Grid(3, 2, func(in []float64) []float64 {
			return []float64{1 - in[0], 1 - in[1], 1 - in[2], 0}
		}),
		A: repeat(Identity(), 4),
	}

	p := &Profile{
		Version:    0x04300000,
		Class:      "prtr",
		ColorSpace: "CMYK",
		PCS:        "XYZ ",
		Tags: []Tag{
			{Sig: "desc", Data: MLUC(Localized{"en", "US", "Synthetic press v4"})},
			{Sig: "cprt", Data: MLUC(Localized{"en", "US", "No copyright, use freely"})},
			{Sig: "wtpt", Data: XYZ(D50)},
			{Sig: "A2B0", Data: aToB.AToB()},
			{Sig: "B2A0", Data: bToA.BToA()},
		},
		WithID: true,
	}
	return p.Encode()
}

// PressV2 returns a CMYK output profile with Lab PCS, using lut16Type
// tags.  The AToB0 table is exact at its grid points, which are the
// multiples of 1/8.
func PressV2() []byte {
	aToB := &Mft{
		Inputs:  4,
		Outputs: 3,
		Points:  9,
		CLUT: Grid(4, 9, func(in []float64) []float64 {
			lab := xyzToLab(PressToXYZ(in))
			return []float64{
				lab[0] / 100 / legacyLabScale,
				(lab[1] + 128) / 255 / legacyLabScale,
				(lab[2] + 128) / 255 / legacyLabScale,
			}
		}),
	}
	bToA := &Mft{
		Inputs:  3,
		Outputs: 4,
		Points:  33,
		CLUT: Grid(3, 33, func(in []float64) []float64 {
			lab := [3]float64{
				in[0] * legacyLabScale * 100,
				in[1]*legacyLabScale*255 - 128,
				in[2]*legacyLabScale*255 - 128,
			}
			return XYZToPress(labToXYZ(lab))
		}),
	}

	p := &Profile{
		CMMType:    "lcms",
		Version:    0x02100000,
		Class:      "prtr",
		ColorSpace: "CMYK",
		PCS:        "Lab ",
		Tags: []Tag{
			{Sig: "desc", Data: Desc("Synthetic press v2")},
			{Sig: "cprt", Data: Text("No copyright, use freely")},
			{Sig: "wtpt", Data: XYZ(D50)},
			{Sig: "A2B0", Data: aToB.Encode()},
			{Sig: "B2A0", Data: bToA.Encode()},
		},
	}
	return p.Encode()
}

// SRGB returns a display profile with matrix/TRC tags for sRGB.
func SRGB() []byte {
	col := func(i int) [3]float64 {
		return [3]float64{SRGBToXYZ[i], SRGBToXYZ[3+i], SRGBToXYZ[6+i]}
	}
	trc := SRGBCurve()
	p := &Profile{
		Version:    0x02100000,
		Class:      "mntr",
		ColorSpace: "RGB ",
		PCS:        "XYZ ",
		Tags: []Tag{
			{Sig: "desc", Data: Desc("Synthetic sRGB")},
			{Sig: "wtpt", Data: XYZ(D50)},
			{Sig: "rXYZ", Data: XYZ(col(0))},
			{Sig: "gXYZ", Data: XYZ(col(1))},
			{Sig: "bXYZ", Data: XYZ(col(2))},
			{Sig: "rTRC", Data: trc},
			{Sig: "gTRC", Data: trc},
			{Sig: "bTRC", Data: trc},
		},
	}
	return p.Encode()
}

// Gray returns a gray display profile with the given gamma.
func Gray(gamma float64, pcs string) []byte {
	p := &Profile{
		Version:    0x04300000,
		Class:      "mntr",
		ColorSpace: "GRAY",
		PCS:        pcs,
		Tags: []Tag{
			{Sig: "wtpt", Data: XYZ(D50)},
			{Sig: "kTRC", Data: Gamma(gamma)},
		},
	}
	return p.Encode()
}

// DToBOnly returns a CMYK profile whose only transform tags are D-to-B
// tags.
func DToBOnly() []byte {
	body := Raw("mpet", make([]byte, 8))
	p := &Profile{
		Version:    0x04300000,
		Class:      "prtr",
		ColorSpace: "CMYK",
		PCS:        "XYZ ",
		Tags: []Tag{
			{Sig: "wtpt", Data: XYZ(D50)},
			{Sig: "D2B0", Data: body},
			{Sig: "B2D0", Data: body},
		},
	}
	return p.Encode()
}

func repeat(b []byte, n int) [][]byte {
	res := make([][]byte, n)
	for i := range res {
		res[i] = b
	}
	return res
}

func mul(m [9]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

func invert(m [9]float64) [9]float64 {
	det := m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
	return [9]float64{
		(m[4]*m[8] - m[5]*m[7]) / det,
		(m[2]*m[7] - m[1]*m[8]) / det,
		(m[1]*m[5] - m[2]*m[4]) / det,
		(m[5]*m[6] - m[3]*m[8]) / det,
		(m[0]*m[8] - m[2]*m[6]) / det,
		(m[2]*m[3] - m[0]*m[5]) / det,
		(m[3]*m[7] - m[4]*m[6]) / det,
		(m[1]*m[6] - m[0]*m[7]) / det,
		(m[0]*m[4] - m[1]*m[3]) / det,
	}
}

func xyzToLab(xyz [3]float64) [3]float64 {
	f := func(t float64) float64 {
		if t > 216.0/24389.0 {
			return math.Cbrt(t)
		}
		return t*24389.0/3132.0 + 16.0/116.0
	}
	fx, fy, fz := f(xyz[0]/D50[0]), f(xyz[1]/D50[1]), f(xyz[2]/D50[2])
	return [3]float64{116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)}
}

func labToXYZ(lab [3]float64) [3]float64 {
	finv := func(f float64) float64 {
		if f > 6.0/29.0 {
			return f * f * f
		}
		return (f - 16.0/116.0) * 3132.0 / 24389.0
	}
	fy := (lab[0] + 16) / 116
	fx := fy + lab[1]/500
	fz := fy - lab[2]/200
	return [3]float64{finv(fx) * D50[0], finv(fy) * D50[1], finv(fz) * D50[2]}
}
