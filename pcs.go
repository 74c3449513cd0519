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

import "math"

// LabToXYZ converts CIELAB to CIEXYZ, relative to the given white point.
// L is in [0, 100], a and b are roughly in [-128, 127].
func LabToXYZ(lab [3]float64, white XYZ) XYZ {
	L, a, b := lab[0], lab[1], lab[2]

	fy := (L + 16) / 116
	fx := a/500 + fy
	fz := fy - b/200

	return XYZ{
		labFInv(fx) * white[0],
		labFInv(fy) * white[1],
		labFInv(fz) * white[2],
	}
}

// XYZToLab converts CIEXYZ to CIELAB, relative to the given white point.
func XYZToLab(xyz, white XYZ) [3]float64 {
	fx := labF(xyz[0] / white[0])
	fy := labF(xyz[1] / white[1])
	fz := labF(xyz[2] / white[2])
	return [3]float64{
		116*fy - 16,
		500 * (fx - fy),
		200 * (fy - fz),
	}
}

const (
	labDelta = 6.0 / 29.0
	labKappa = 108.0 / 841.0 // 3 * (6/29)^2
)

func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/labKappa + 16.0/116.0
}

func labFInv(f float64) float64 {
	if f > labDelta {
		return f * f * f
	}
	return (f - 16.0/116.0) * labKappa
}

// pcsEncoding describes how PCS values are mapped to [0, 1] inside a
// lookup table.
type pcsEncoding int

const (
	encodingXYZ       pcsEncoding = iota // u1Fixed15: 1.0 is 0x8000
	encodingLab                          // v4: L* 100 is 0xFFFF
	encodingLabLegacy                    // lut16Type v2: L* 100 is 0xFF00
)

// xyzScale maps the normalised u1Fixed15 range onto XYZ values.
const xyzScale = 65535.0 / 32768.0

// legacyLabScale converts between v4 and legacy 16-bit Lab encodings.
const legacyLabScale = 65535.0 / 65280.0

// decodePCS turns normalised lookup table output into D50 XYZ.
func decodePCS(v []float64, enc pcsEncoding) XYZ {
	switch enc {
	case encodingXYZ:
		return XYZ{v[0] * xyzScale, v[1] * xyzScale, v[2] * xyzScale}
	case encodingLabLegacy:
		v = []float64{v[0] * legacyLabScale, v[1] * legacyLabScale, v[2] * legacyLabScale}
	}
	lab := [3]float64{v[0] * 100, v[1]*255 - 128, v[2]*255 - 128}
	return LabToXYZ(lab, D50)
}

// encodePCS turns D50 XYZ into normalised lookup table input.
func encodePCS(xyz XYZ, enc pcsEncoding) []float64 {
	if enc == encodingXYZ {
		return []float64{xyz[0] / xyzScale, xyz[1] / xyzScale, xyz[2] / xyzScale}
	}
	lab := XYZToLab(xyz, D50)
	v := []float64{lab[0] / 100, (lab[1] + 128) / 255, (lab[2] + 128) / 255}
	if enc == encodingLabLegacy {
		for i := range v {
			v[i] /= legacyLabScale
		}
	}
	return v
}
