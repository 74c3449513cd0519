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
	"strings"
)

// MaxChannels is the largest number of channels a lookup table may have.
const MaxChannels = 15

// CLUT is a multi-dimensional colour lookup table.
//
// The table samples a function from [0,1]^n to [0,1]^m on a regular grid.
// Values holds the samples, m per grid point, with the first input
// dimension varying slowest.
type CLUT struct {
	GridPoints []int // grid size for each input dimension
	Outputs    int   // number of output channels
	Precision  int   // bytes per sample in the file, 1 or 2
	Values     []float64
}

// Inputs returns the number of input dimensions.
func (c *CLUT) Inputs() int {
	return len(c.GridPoints)
}

// Apply evaluates the table at the given point, using multilinear
// interpolation between the 2^n surrounding grid points.  Inputs are
// clamped to [0, 1].  Missing inputs are treated as 0, extra inputs are
// ignored.
func (c *CLUT) Apply(input []float64) []float64 {
	n := len(c.GridPoints)
	out := make([]float64, c.Outputs)

	var stride [MaxChannels]int
	s := c.Outputs
	for d := n - 1; d >= 0; d-- {
		stride[d] = s
		s *= c.GridPoints[d]
	}

	base := 0
	var frac [MaxChannels]float64
	for d := range n {
		g := c.GridPoints[d]
		if g < 2 {
			continue
		}
		var x float64
		if d < len(input) {
			x = clamp(input[d], 0, 1)
		}
		pos := x * float64(g-1)
		idx := min(int(pos), g-2)
		base += idx * stride[d]
		frac[d] = pos - float64(idx)
	}

	for corner := range 1 << n {
		weight := 1.0
		offset := base
		for d := range n {
			if corner&(1<<d) != 0 {
				weight *= frac[d]
				offset += stride[d]
			} else {
				weight *= 1 - frac[d]
			}
			if weight == 0 {
				break
			}
		}
		if weight == 0 {
			continue
		}
		for i := range out {
			out[i] += weight * c.Values[offset+i]
		}
	}
	return out
}

func (c *CLUT) String() string {
	dims := make([]string, len(c.GridPoints))
	for i, g := range c.GridPoints {
		dims[i] = fmt.Sprint(g)
	}
	return fmt.Sprintf("CLUT [%d→%d, %s, %d-bit]",
		len(c.GridPoints), c.Outputs, strings.Join(dims, "x"), 8*c.Precision)
}

// decodeCLUT reads the CLUT structure of a lutAToBType or lutBToAType
// element: 16 bytes of grid sizes, a precision byte, 3 bytes padding, and
// the samples.
func decodeCLUT(data []byte, offset int, inputs, outputs int) (*CLUT, error) {
	if inputs < 1 || inputs > MaxChannels || outputs < 1 || outputs > MaxChannels {
		return nil, errInvalidTagData
	}
	if offset < 0 || offset+20 > len(data) {
		return nil, errInvalidTagData
	}

	gridPoints := make([]int, inputs)
	for i := range gridPoints {
		gridPoints[i] = max(int(data[offset+i]), 1)
	}
	precision := int(data[offset+16])
	if precision != 1 && precision != 2 {
		return nil, errInvalidTagData
	}

	values, err := decodeSamples(data, offset+20, gridPoints, outputs, precision)
	if err != nil {
		return nil, err
	}
	return &CLUT{
		GridPoints: gridPoints,
		Outputs:    outputs,
		Precision:  precision,
		Values:     values,
	}, nil
}

// decodeSamples reads the grid samples of a CLUT, normalising them to [0, 1].
func decodeSamples(data []byte, start int, gridPoints []int, outputs, precision int) ([]float64, error) {
	size := clutSize(gridPoints, outputs)
	if size == 0 || start+size*precision > len(data) {
		return nil, errInvalidTagData
	}

	values := make([]float64, size)
	switch precision {
	case 1:
		for i := range values {
			values[i] = float64(data[start+i]) / 255
		}
	case 2:
		for i := range values {
			values[i] = float64(getUint16(data, start+2*i)) / 65535
		}
	}
	return values, nil
}

// clutSize returns the number of samples in a CLUT, or 0 if the table
// would be unreasonably large.
func clutSize(gridPoints []int, outputs int) int {
	const maxSize = 1 << 28
	size := uint64(outputs)
	for _, g := range gridPoints {
		size *= uint64(g)
		if size > maxSize {
			return 0
		}
	}
	return int(size)
}
