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
)

func TestLabToXYZ(t *testing.T) {
	tests := []struct {
		lab  [3]float64
		want XYZ
	}{
		{[3]float64{100, 0, 0}, D50},
		{[3]float64{0, 0, 0}, XYZ{0, 0, 0}},
		{[3]float64{50, 0, 0}, XYZ{0.1776, 0.1842, 0.1519}},
	}
	for _, tt := range tests {
		got := LabToXYZ(tt.lab, D50)
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 0.001 {
				t.Errorf("LabToXYZ(%v) = %v, want %v", tt.lab, got, tt.want)
				break
			}
		}
	}
}

func TestXYZToLab(t *testing.T) {
	lab := XYZToLab(D50, D50)
	assert.InDelta(t, 100, lab[0], 1e-9)
	assert.InDelta(t, 0, lab[1], 1e-9)
	assert.InDelta(t, 0, lab[2], 1e-9)

	lab = XYZToLab(XYZ{}, D50)
	assert.InDelta(t, 0, lab[0], 1e-9)
}

func TestLabXYZRoundTrip(t *testing.T) {
	tests := [][3]float64{
		{0, 0, 0},
		{5, 0, 0},
		{50, 0, 0},
		{100, 0, 0},
		{50, 50, 0},
		{50, 0, 50},
		{50, -50, -50},
		{75, 25, -30},
	}
	for _, lab := range tests {
		xyz := LabToXYZ(lab, D50)
		back := XYZToLab(xyz, D50)
		for i := range lab {
			if math.Abs(back[i]-lab[i]) > 1e-9 {
				t.Errorf("Lab round-trip failed: %v -> %v -> %v", lab, xyz, back)
				break
			}
		}
	}
}

func TestPCSEncoding(t *testing.T) {
	v := encodePCS(D50, encodingXYZ)
	assert.InDelta(t, 32768.0/65535, v[1], 1e-12)

	v = encodePCS(D50, encodingLab)
	assert.InDelta(t, 1, v[0], 1e-9)
	assert.InDelta(t, 128.0/255, v[1], 1e-9)

	// the legacy encoding puts L* = 100 at 0xFF00
	v = encodePCS(D50, encodingLabLegacy)
	assert.InDelta(t, 65280.0/65535, v[0], 1e-9)
	assert.InDelta(t, 128*256.0/65535, v[1], 1e-9)

	for _, enc := range []pcsEncoding{encodingXYZ, encodingLab, encodingLabLegacy} {
		for _, xyz := range []XYZ{D50, {0.2, 0.3, 0.4}, {0.05, 0.01, 0.2}} {
			back := decodePCS(encodePCS(xyz, enc), enc)
			for i := range xyz {
				assert.InDelta(t, xyz[i], back[i], 1e-9, "encoding %d, %v", enc, xyz)
			}
		}
	}
}

func TestMatrixInverse(t *testing.T) {
	identity := matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	assert.Equal(t, identity, identity.inverse())

	srgbToXYZ := matrix3{
		0.4124564, 0.3575761, 0.1804375,
		0.2126729, 0.7151522, 0.0721750,
		0.0193339, 0.1191920, 0.9503041,
	}
	prod := srgbToXYZ.mul(srgbToXYZ.inverse())
	for i := range prod {
		assert.InDelta(t, identity[i], prod[i], 1e-9)
	}

	singular := matrix3{1, 2, 3, 2, 4, 6, 0, 0, 1}
	assert.Equal(t, matrix3{}, singular.inverse())
}

func TestAdapt(t *testing.T) {
	white := AdaptFromD50(D50, D65)
	for i := range white {
		assert.InDelta(t, D65[i], white[i], 1e-9)
	}

	// sRGB red, D50 and D65 versions
	red := AdaptFromD50(XYZ{0.4360747, 0.2225045, 0.0139322}, D65)
	want := XYZ{0.4124564, 0.2126729, 0.0193339}
	for i := range red {
		assert.InDelta(t, want[i], red[i], 2e-3)
	}

	for _, xyz := range []XYZ{{0.2, 0.3, 0.4}, {0.9, 0.8, 0.1}} {
		for _, w := range []XYZ{D65, A} {
			back := AdaptToD50(AdaptFromD50(xyz, w), w)
			for i := range xyz {
				assert.InDelta(t, xyz[i], back[i], 1e-9)
			}
		}
	}
}
