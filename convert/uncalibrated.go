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

package convert

import (
	"math"

	"seehuhn.de/go/iccprofile"
)

// CMYKToRGB converts uncalibrated CMYK to RGB, with all values in [0, 1].
// Inputs outside this range are clamped.
func CMYKToRGB(c, m, y, k float64) (r, g, b float64) {
	c, m, y, k = clamp01(c), clamp01(m), clamp01(y), clamp01(k)
	r = (1 - c) * (1 - k)
	g = (1 - m) * (1 - k)
	b = (1 - y) * (1 - k)
	return r, g, b
}

// RGBToCMYK converts RGB to uncalibrated CMYK, using full grey component
// replacement.  Inputs outside [0, 1] are clamped.
func RGBToCMYK(r, g, b float64) (c, m, y, k float64) {
	r, g, b = clamp01(r), clamp01(g), clamp01(b)
	k = 1 - max(r, g, b)
	if k >= 1 {
		return 0, 0, 0, 1
	}
	c = (1 - r - k) / (1 - k)
	m = (1 - g - k) / (1 - k)
	y = (1 - b - k) / (1 - k)
	return c, m, y, k
}

// The sRGB primaries, relative to D65.
var (
	xyzFromSRGB = [3][3]float64{
		{0.4124564, 0.3575761, 0.1804375},
		{0.2126729, 0.7151522, 0.0721750},
		{0.0193339, 0.1191920, 0.9503041},
	}
	srgbFromXYZ = [3][3]float64{
		{3.2404542, -1.5371385, -0.4985314},
		{-0.9692660, 1.8760108, 0.0415560},
		{0.0556434, -0.2040259, 1.0572252},
	}
)

// uncalibratedToXYZ interprets the device values as CMYK, converts them to
// sRGB and returns the D50 XYZ value of the sRGB colour.  Missing channels
// are taken as 0.
func uncalibratedToXYZ(device []float64) iccprofile.XYZ {
	var cmyk [4]float64
	copy(cmyk[:], device)
	r, g, b := CMYKToRGB(cmyk[0], cmyk[1], cmyk[2], cmyk[3])
	lin := [3]float64{srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)}

	var xyz iccprofile.XYZ
	for i, row := range xyzFromSRGB {
		xyz[i] = row[0]*lin[0] + row[1]*lin[1] + row[2]*lin[2]
	}
	return iccprofile.AdaptToD50(xyz, iccprofile.D65)
}

// uncalibratedFromXYZ is the inverse of uncalibratedToXYZ.  Colours outside
// the sRGB gamut are clipped.
func uncalibratedFromXYZ(xyz iccprofile.XYZ) []float64 {
	xyz = iccprofile.AdaptFromD50(xyz, iccprofile.D65)
	var rgb [3]float64
	for i, row := range srgbFromXYZ {
		rgb[i] = linearToSRGB(row[0]*xyz[0] + row[1]*xyz[1] + row[2]*xyz[2])
	}
	c, m, y, k := RGBToCMYK(rgb[0], rgb[1], rgb[2])
	return []float64{c, m, y, k}
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	switch {
	case v <= 0:
		return 0
	case v <= 0.0031308:
		return 12.92 * v
	case v >= 1:
		return 1
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
