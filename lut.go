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
	"strings"
)

// Direction is the logical direction of a lookup table or transform.
type Direction int

const (
	// DeviceToPCS converts from device colour space to Profile Connection Space.
	DeviceToPCS Direction = iota
	// PCSToDevice converts from Profile Connection Space to device colour space.
	PCSToDevice
)

func (d Direction) String() string {
	switch d {
	case DeviceToPCS:
		return "device→PCS"
	case PCSToDevice:
		return "PCS→device"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Lut is a lookup table pipeline from an AToB or BToA tag.
// The implementations are [*Luts] (mAB, mBA) and [*Mft] (mft1, mft2).
//
// Apply takes and returns values normalised to [0, 1].  Inputs of the
// wrong length are zero-padded or truncated.
type Lut interface {
	Apply(input []float64) []float64
	InputChannels() int
	OutputChannels() int
	String() string
}

// Matrix3x4 is a 3×3 matrix, stored row by row, followed by an offset vector.
type Matrix3x4 [12]float64

func (m *Matrix3x4) apply(v []float64) {
	x, y, z := v[0], v[1], v[2]
	v[0] = m[0]*x + m[1]*y + m[2]*z + m[9]
	v[1] = m[3]*x + m[4]*y + m[5]*z + m[10]
	v[2] = m[6]*x + m[7]*y + m[8]*z + m[11]
}

// Luts is the processing pipeline of a lutAToBType ("mAB ") or
// lutBToAType ("mBA ") element.  Every stage is optional, but a valid
// pipeline has B-curves, or A-curves together with a CLUT.
//
// For "mAB " the stages run in the order A, CLUT, M, Matrix, B; for
// "mBA " the order is reversed.  Direction records whether the pipeline
// maps device values to the PCS or the other way round.
type Luts struct {
	Type      Signature // "mAB " or "mBA "
	Direction Direction
	Inputs    int
	Outputs   int

	ACurves []Curve
	CLUT    *CLUT
	MCurves []Curve
	Matrix  *Matrix3x4
	BCurves []Curve
}

// InputChannels implements the [Lut] interface.
func (l *Luts) InputChannels() int { return l.Inputs }

// OutputChannels implements the [Lut] interface.
func (l *Luts) OutputChannels() int { return l.Outputs }

// Apply implements the [Lut] interface.
func (l *Luts) Apply(input []float64) []float64 {
	width := max(l.Inputs, l.Outputs, 3)
	values := make([]float64, l.Inputs, width)
	copy(values, input)

	for _, stage := range l.stages() {
		switch stage {
		case stageA:
			applyCurves(l.ACurves, values)
		case stageCLUT:
			values = l.CLUT.Apply(values)
		case stageM:
			applyCurves(l.MCurves, values)
		case stageMatrix:
			if len(values) == 3 {
				l.Matrix.apply(values)
			}
		case stageB:
			applyCurves(l.BCurves, values)
		}
	}

	out := make([]float64, l.Outputs)
	for i := range min(len(out), len(values)) {
		out[i] = clamp(values[i], 0, 1)
	}
	return out
}

type stage int

const (
	stageA stage = iota
	stageCLUT
	stageM
	stageMatrix
	stageB
)

// stages lists the stages which are present, in processing order.
func (l *Luts) stages() []stage {
	present := [...]bool{
		stageA:      l.ACurves != nil,
		stageCLUT:   l.CLUT != nil,
		stageM:      l.MCurves != nil,
		stageMatrix: l.Matrix != nil,
		stageB:      l.BCurves != nil,
	}
	order := []stage{stageA, stageCLUT, stageM, stageMatrix, stageB}
	if l.Type == typeMBA {
		order = []stage{stageB, stageMatrix, stageM, stageCLUT, stageA}
	}
	res := order[:0]
	for _, s := range order {
		if present[s] {
			res = append(res, s)
		}
	}
	return res
}

// String lists the stages in processing order, for example
// "A [x4] → CLUT [4→3, 9x9x9x9, 16-bit] → B [x3]".
func (l *Luts) String() string {
	var parts []string
	for _, s := range l.stages() {
		switch s {
		case stageA:
			parts = append(parts, fmt.Sprintf("A [x%d]", len(l.ACurves)))
		case stageCLUT:
			parts = append(parts, l.CLUT.String())
		case stageM:
			parts = append(parts, fmt.Sprintf("M [x%d]", len(l.MCurves)))
		case stageMatrix:
			parts = append(parts, "Matrix")
		case stageB:
			parts = append(parts, fmt.Sprintf("B [x%d]", len(l.BCurves)))
		}
	}
	return strings.Join(parts, " → ")
}

// applyCurves applies one curve per channel, in place.  Curve inputs are
// clamped to [0, 1].
func applyCurves(curves []Curve, values []float64) {
	for i, c := range curves {
		if c != nil && i < len(values) {
			values[i] = c.Lookup(clamp(values[i], 0, 1))
		}
	}
}

// decodeLuts decodes a lutAToBType or lutBToAType element.
func decodeLuts(data []byte, dir Direction) (*Luts, error) {
	if len(data) < 32 {
		return nil, errInvalidTagData
	}
	t := Signature(getUint32(data, 0))
	if t != typeMAB && t != typeMBA {
		return nil, errUnexpectedType
	}

	inputs := int(data[8])
	outputs := int(data[9])
	if inputs == 0 || outputs == 0 || inputs > MaxChannels || outputs > MaxChannels {
		return nil, errInvalidTagData
	}

	bOffset := int(getUint32(data, 12))
	matrixOffset := int(getUint32(data, 16))
	mOffset := int(getUint32(data, 20))
	clutOffset := int(getUint32(data, 24))
	aOffset := int(getUint32(data, 28))

	// The A side is the input of "mAB " and the output of "mBA ".
	aCount, bCount, mCount := inputs, outputs, outputs
	if t == typeMBA {
		aCount, bCount, mCount = outputs, inputs, inputs
	}

	l := &Luts{
		Type:      t,
		Direction: dir,
		Inputs:    inputs,
		Outputs:   outputs,
	}

	var err error
	if bOffset != 0 {
		l.BCurves, err = decodeCurvesAtOffset(data, bOffset, bCount)
		if err != nil {
			return nil, err
		}
	}
	if aOffset != 0 {
		l.ACurves, err = decodeCurvesAtOffset(data, aOffset, aCount)
		if err != nil {
			return nil, err
		}
	}
	if mOffset != 0 {
		l.MCurves, err = decodeCurvesAtOffset(data, mOffset, mCount)
		if err != nil {
			return nil, err
		}
	}
	if matrixOffset != 0 {
		l.Matrix, err = decodeMatrix3x4(data, matrixOffset)
		if err != nil {
			return nil, err
		}
	}
	if clutOffset != 0 {
		l.CLUT, err = decodeCLUT(data, clutOffset, inputs, outputs)
		if err != nil {
			return nil, err
		}
	}

	if l.BCurves == nil && (l.ACurves == nil || l.CLUT == nil) {
		return nil, errInvalidTagData
	}
	return l, nil
}

// decodeCurvesAtOffset reads n consecutive curve elements, each padded to a
// multiple of four bytes.
func decodeCurvesAtOffset(data []byte, offset int, n int) ([]Curve, error) {
	if offset < 0 || offset > len(data) {
		return nil, errInvalidTagData
	}
	curves := make([]Curve, n)
	pos := offset
	for i := range curves {
		c, size, err := decodeCurve(data[pos:])
		if err != nil {
			return nil, err
		}
		curves[i] = c
		pos = min(pos+(size+3)&^3, len(data))
	}
	return curves, nil
}

func decodeMatrix3x4(data []byte, offset int) (*Matrix3x4, error) {
	if offset < 0 || offset+48 > len(data) {
		return nil, errInvalidTagData
	}
	m := &Matrix3x4{}
	for i := range m {
		m[i] = getS15Fixed16(data, offset+4*i)
	}
	return m, nil
}

// Mft is the pipeline of a legacy lut8Type ("mft1") or lut16Type ("mft2")
// element: an optional 3×3 matrix, one table per input channel, a CLUT
// with the same number of grid points in every dimension, and one table
// per output channel.
type Mft struct {
	Precision    int // 1 for "mft1", 2 for "mft2"
	Inputs       int
	Outputs      int
	Matrix       *[9]float64 // nil if the identity
	InputCurves  []Curve
	CLUT         *CLUT
	OutputCurves []Curve
}

// InputChannels implements the [Lut] interface.
func (m *Mft) InputChannels() int { return m.Inputs }

// OutputChannels implements the [Lut] interface.
func (m *Mft) OutputChannels() int { return m.Outputs }

// Apply implements the [Lut] interface.
func (m *Mft) Apply(input []float64) []float64 {
	values := make([]float64, m.Inputs)
	copy(values, input)

	if m.Matrix != nil && m.Inputs == 3 {
		x, y, z := values[0], values[1], values[2]
		values[0] = m.Matrix[0]*x + m.Matrix[1]*y + m.Matrix[2]*z
		values[1] = m.Matrix[3]*x + m.Matrix[4]*y + m.Matrix[5]*z
		values[2] = m.Matrix[6]*x + m.Matrix[7]*y + m.Matrix[8]*z
	}
	applyCurves(m.InputCurves, values)
	values = m.CLUT.Apply(values)
	applyCurves(m.OutputCurves, values)

	for i := range values {
		values[i] = clamp(values[i], 0, 1)
	}
	return values
}

func (m *Mft) String() string {
	var parts []string
	if m.Matrix != nil {
		parts = append(parts, "Matrix")
	}
	parts = append(parts,
		fmt.Sprintf("Input [x%d]", len(m.InputCurves)),
		m.CLUT.String(),
		fmt.Sprintf("Output [x%d]", len(m.OutputCurves)))
	return strings.Join(parts, " → ")
}

func decodeMft(data []byte) (*Mft, error) {
	if len(data) < 48 {
		return nil, errInvalidTagData
	}

	var precision, headerLen, inEntries, outEntries int
	switch Signature(getUint32(data, 0)) {
	case typeMft1:
		precision, headerLen = 1, 48
		inEntries, outEntries = 256, 256
	case typeMft2:
		if len(data) < 52 {
			return nil, errInvalidTagData
		}
		precision, headerLen = 2, 52
		inEntries = int(getUint16(data, 48))
		outEntries = int(getUint16(data, 50))
		if inEntries < 2 || inEntries > 4096 || outEntries < 2 || outEntries > 4096 {
			return nil, errInvalidTagData
		}
	default:
		return nil, errUnexpectedType
	}

	inputs := int(data[8])
	outputs := int(data[9])
	grid := int(data[10])
	if inputs == 0 || outputs == 0 || inputs > MaxChannels || outputs > MaxChannels || grid < 2 {
		return nil, errInvalidTagData
	}

	m := &Mft{
		Precision: precision,
		Inputs:    inputs,
		Outputs:   outputs,
	}

	var matrix [9]float64
	for i := range matrix {
		matrix[i] = getS15Fixed16(data, 12+4*i)
	}
	if !isIdentity3x3(matrix) {
		m.Matrix = &matrix
	}

	pos := headerLen
	var ok bool
	m.InputCurves, pos, ok = decodeMftTables(data, pos, inputs, inEntries, precision)
	if !ok {
		return nil, errInvalidTagData
	}

	gridPoints := make([]int, inputs)
	for i := range gridPoints {
		gridPoints[i] = grid
	}
	values, err := decodeSamples(data, pos, gridPoints, outputs, precision)
	if err != nil {
		return nil, err
	}
	m.CLUT = &CLUT{
		GridPoints: gridPoints,
		Outputs:    outputs,
		Precision:  precision,
		Values:     values,
	}
	pos += len(values) * precision

	m.OutputCurves, _, ok = decodeMftTables(data, pos, outputs, outEntries, precision)
	if !ok {
		return nil, errInvalidTagData
	}
	return m, nil
}

// decodeMftTables reads n one-dimensional tables of the given length.
func decodeMftTables(data []byte, pos, n, entries, precision int) ([]Curve, int, bool) {
	if pos+n*entries*precision > len(data) {
		return nil, pos, false
	}
	curves := make([]Curve, n)
	for ch := range curves {
		samples := make([]float64, entries)
		for i := range samples {
			if precision == 1 {
				samples[i] = float64(data[pos]) / 255
			} else {
				samples[i] = float64(getUint16(data, pos)) / 65535
			}
			pos += precision
		}
		curves[ch] = &TableCurve{Samples: samples}
	}
	return curves, pos, true
}

func isIdentity3x3(m [9]float64) bool {
	identity := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range m {
		if math.Abs(m[i]-identity[i]) > 1e-6 {
			return false
		}
	}
	return true
}
