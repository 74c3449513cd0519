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

import (
	"math"
	"unicode/utf16"
)

func element(typ string, bodySize int) []byte {
	buf := make([]byte, 8+bodySize)
	putSig(buf, 0, typ)
	return buf
}

// Identity returns a curveType element with no entries.
func Identity() []byte {
	return element("curv", 4)
}

// Gamma returns a curveType element with a single u8Fixed8 entry.
func Gamma(g float64) []byte {
	buf := element("curv", 6)
	putUint32(buf, 8, 1)
	putUint16(buf, 12, uint16(math.Round(g*256)))
	return buf
}

// Table returns a curveType element with the given samples, which are
// quantised to 16 bits.
func Table(samples ...float64) []byte {
	buf := element("curv", 4+2*len(samples))
	putUint32(buf, 8, uint32(len(samples)))
	for i, s := range samples {
		putUint16(buf, 12+2*i, u16(s))
	}
	return buf
}

// Parametric returns a parametricCurveType element.
func Parametric(funcType int, params ...float64) []byte {
	buf := element("para", 4+4*len(params))
	putUint16(buf, 8, uint16(funcType))
	for i, p := range params {
		putS15Fixed16(buf, 12+4*i, p)
	}
	return buf
}

// SRGBCurve returns the sRGB transfer function as a parametric curve.
func SRGBCurve() []byte {
	return Parametric(3, 2.4, 1/1.055, 0.055/1.055, 1/12.92, 0.04045)
}

// XYZ returns an XYZType element.
func XYZ(values ...[3]float64) []byte {
	buf := element("XYZ ", 12*len(values))
	for i, v := range values {
		for j := range v {
			putS15Fixed16(buf, 8+12*i+4*j, v[j])
		}
	}
	return buf
}

// SF32 returns an s15Fixed16ArrayType element.
func SF32(values ...float64) []byte {
	buf := element("sf32", 4*len(values))
	for i, v := range values {
		putS15Fixed16(buf, 8+4*i, v)
	}
	return buf
}

// Text returns a textType element.
func Text(s string) []byte {
	buf := element("text", len(s)+1)
	copy(buf[8:], s)
	return buf
}

// Desc returns a textDescriptionType element holding only an ASCII
// description.
func Desc(s string) []byte {
	buf := element("desc", 4+len(s)+1+4+4+2+1+67)
	putUint32(buf, 8, uint32(len(s)+1))
	copy(buf[12:], s)
	return buf
}

// UnicodeDesc returns a textDescriptionType element with an empty ASCII
// part and the given Unicode description.
func UnicodeDesc(s string) []byte {
	u := utf16.Encode([]rune(s))
	buf := element("desc", 4+1+4+4+2*len(u)+2+1+67)
	putUint32(buf, 8, 1)
	pos := 13
	pos += 4 // language code
	putUint32(buf, pos, uint32(len(u)))
	pos += 4
	for _, c := range u {
		putUint16(buf, pos, c)
		pos += 2
	}
	return buf
}

// Localized is one record of a multiLocalizedUnicodeType element.
type Localized struct {
	Language string
	Country  string
	Value    string
}

// MLUC returns a multiLocalizedUnicodeType element.
func MLUC(records ...Localized) []byte {
	var strs [][]uint16
	size := 8 + 12*len(records)
	for _, r := range records {
		u := utf16.Encode([]rune(r.Value))
		strs = append(strs, u)
		size += 2 * len(u)
	}

	buf := element("mluc", size)
	putUint32(buf, 8, uint32(len(records)))
	putUint32(buf, 12, 12)
	pos := 16 + 12*len(records)
	for i, r := range records {
		rec := 16 + 12*i
		copy(buf[rec:rec+2], r.Language)
		copy(buf[rec+2:rec+4], r.Country)
		putUint32(buf, rec+4, uint32(2*len(strs[i])))
		putUint32(buf, rec+8, uint32(pos))
		for _, c := range strs[i] {
			putUint16(buf, pos, c)
			pos += 2
		}
	}
	return buf
}

// Raw returns an element of the given type with an arbitrary body.
func Raw(typ string, body []byte) []byte {
	buf := element(typ, len(body))
	copy(buf[8:], body)
	return buf
}

// Grid samples f on a regular grid with the given number of points per
// input dimension.  The result lists the outputs for each grid point, with
// the first input varying slowest, as in ICC colour lookup tables.
func Grid(inputs, points int, f func(in []float64) []float64) []float64 {
	n := 1
	for range inputs {
		n *= points
	}
	var res []float64
	in := make([]float64, inputs)
	for idx := range n {
		rest := idx
		for d := inputs - 1; d >= 0; d-- {
			in[d] = float64(rest%points) / float64(points-1)
			rest /= points
		}
		res = append(res, f(in)...)
	}
	return res
}

// Luts describes a lutAToBType or lutBToAType element.  Nil curve slices
// and a nil matrix are omitted from the element.
type Luts struct {
	Inputs  int
	Outputs int

	A      [][]byte
	Grid   []int // grid points per input; nil for no CLUT
	Prec   int   // CLUT precision in bytes, 1 or 2
	CLUT   []float64
	M      [][]byte
	Matrix *[12]float64
	B      [][]byte
}

// AToB encodes the pipeline as a lutAToBType ("mAB ") element.
func (l *Luts) AToB() []byte {
	return l.encode("mAB ")
}

// BToA encodes the pipeline as a lutBToAType ("mBA ") element.
func (l *Luts) BToA() []byte {
	return l.encode("mBA ")
}

func (l *Luts) encode(typ string) []byte {
	buf := element(typ, 24)
	buf[8] = byte(l.Inputs)
	buf[9] = byte(l.Outputs)

	appendCurves := func(curves [][]byte) uint32 {
		if curves == nil {
			return 0
		}
		offset := len(buf)
		for _, c := range curves {
			buf = append(buf, pad(c)...)
		}
		return uint32(offset)
	}

	putUint32(buf, 12, appendCurves(l.B))
	if l.Matrix != nil {
		putUint32(buf, 16, uint32(len(buf)))
		m := make([]byte, 48)
		for i, v := range l.Matrix {
			putS15Fixed16(m, 4*i, v)
		}
		buf = append(buf, m...)
	}
	putUint32(buf, 20, appendCurves(l.M))
	if l.Grid != nil {
		putUint32(buf, 24, uint32(len(buf)))
		prec := l.Prec
		if prec == 0 {
			prec = 2
		}
		clut := make([]byte, 20+prec*len(l.CLUT))
		for i, g := range l.Grid {
			clut[i] = byte(g)
		}
		clut[16] = byte(prec)
		for i, v := range l.CLUT {
			if prec == 1 {
				clut[20+i] = byte(math.Round(clamp01(v) * 255))
			} else {
				putUint16(clut, 20+2*i, u16(v))
			}
		}
		buf = append(buf, pad(clut)...)
	}
	putUint32(buf, 28, appendCurves(l.A))
	return buf
}

func pad(b []byte) []byte {
	n := (len(b) + 3) &^ 3
	res := make([]byte, n)
	copy(res, b)
	return res
}

// Mft describes a lut8Type ("mft1") or lut16Type ("mft2") element.
// Nil tables are replaced by identity ramps.
type Mft struct {
	Prec    int // 1 for "mft1", 2 for "mft2"
	Inputs  int
	Outputs int
	Points  int          // CLUT grid points per dimension
	Matrix  *[9]float64  // nil for the identity
	In      [][]float64  // input tables, one per channel
	CLUT    []float64
	Out     [][]float64 // output tables, one per channel
	Entries int         // table length for "mft2"; default 2
}

// Encode returns the binary element.
func (m *Mft) Encode() []byte {
	prec := m.Prec
	if prec == 0 {
		prec = 2
	}
	entries := 256
	typ, headerLen := "mft1", 48
	if prec == 2 {
		typ, headerLen = "mft2", 52
		entries = m.Entries
		if entries == 0 {
			entries = 2
		}
		if len(m.In) > 0 {
			entries = len(m.In[0])
		}
	}

	buf := element(typ, headerLen-8)
	buf[8] = byte(m.Inputs)
	buf[9] = byte(m.Outputs)
	buf[10] = byte(m.Points)
	matrix := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if m.Matrix != nil {
		matrix = *m.Matrix
	}
	for i, v := range matrix {
		putS15Fixed16(buf, 12+4*i, v)
	}
	if prec == 2 {
		putUint16(buf, 48, uint16(entries))
		putUint16(buf, 50, uint16(entries))
	}

	appendValue := func(v float64) {
		if prec == 1 {
			buf = append(buf, byte(math.Round(clamp01(v)*255)))
		} else {
			buf = append(buf, byte(u16(v)>>8), byte(u16(v)))
		}
	}
	appendTables := func(tables [][]float64, n int) {
		for ch := range n {
			if ch < len(tables) {
				for _, v := range tables[ch] {
					appendValue(v)
				}
				continue
			}
			for i := range entries {
				appendValue(float64(i) / float64(entries-1))
			}
		}
	}

	appendTables(m.In, m.Inputs)
	for _, v := range m.CLUT {
		appendValue(v)
	}
	appendTables(m.Out, m.Outputs)
	return buf
}
