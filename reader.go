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
	"time"
)

// Reader decodes the primitive ICC data types from a byte slice.
// All multi-byte values are big-endian.
//
// Every Read method either consumes exactly the bytes of the value it
// returns, or returns an error and leaves the position unchanged.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.ReadBytes(n)
	return err
}

// ReadBytes returns the next n bytes.  The returned slice aliases the
// underlying data.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, &InvalidProfileError{
			Offset: r.pos,
			Reason: fmt.Sprintf("need %d bytes, only %d left", n, r.Remaining()),
			Err:    ErrTruncated,
		}
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return getUint16(b, 0), nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return getUint32(b, 0), nil
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return getUint64(b, 0), nil
}

// ReadS15Fixed16 reads a signed 15.16 fixed point number.
func (r *Reader) ReadS15Fixed16() (float64, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return getS15Fixed16(b, 0), nil
}

// ReadU8Fixed8 reads an unsigned 8.8 fixed point number.
func (r *Reader) ReadU8Fixed8() (float64, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return getU8Fixed8(b, 0), nil
}

// ReadSignature reads a four byte signature.  The bytes are not validated.
func (r *Reader) ReadSignature() (Signature, error) {
	v, err := r.ReadUint32()
	return Signature(v), err
}

// ReadXYZ reads an XYZNumber, three s15Fixed16 values.
func (r *Reader) ReadXYZ() (XYZ, error) {
	b, err := r.ReadBytes(12)
	if err != nil {
		return XYZ{}, err
	}
	return XYZ{getS15Fixed16(b, 0), getS15Fixed16(b, 4), getS15Fixed16(b, 8)}, nil
}

// ReadVersion reads the four byte profile version field.
// Only the first two bytes carry information.
func (r *Reader) ReadVersion() (Version, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return Version{}, err
	}
	return Version{
		Major:  b[0],
		Minor:  b[1] >> 4,
		Bugfix: b[1] & 0x0F,
	}, nil
}

// ReadDateTime reads a dateTimeNumber, six uint16 values, as a UTC time.
// Fields outside their legal range give an error wrapping [ErrOutOfRange].
func (r *Reader) ReadDateTime() (time.Time, error) {
	start := r.pos
	b, err := r.ReadBytes(12)
	if err != nil {
		return time.Time{}, err
	}

	var f [6]int
	for i := range f {
		f[i] = int(getUint16(b, 2*i))
	}
	year, month, day, hour, minute, second := f[0], f[1], f[2], f[3], f[4], f[5]

	check := []struct {
		name     string
		val      int
		min, max int
	}{
		{"year", year, 1, 9999},
		{"month", month, 1, 12},
		{"day", day, 1, 31},
		{"hour", hour, 0, 23},
		{"minute", minute, 0, 59},
		{"second", second, 0, 59},
	}
	for i, c := range check {
		if c.val < c.min || c.val > c.max {
			r.pos = start
			return time.Time{}, &InvalidProfileError{
				Offset: start + 2*i,
				Reason: fmt.Sprintf("%s %d out of range", c.name, c.val),
				Err:    ErrOutOfRange,
			}
		}
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}

// ReadProfileFlags reads the four byte profile flags field.
func (r *Reader) ReadProfileFlags() (ProfileFlags, error) {
	v, err := r.ReadUint32()
	return ProfileFlags(v), err
}

// ReadDeviceAttributes reads the eight byte device attributes field.
func (r *Reader) ReadDeviceAttributes() (DeviceAttributes, error) {
	v, err := r.ReadUint64()
	return DeviceAttributes(v), err
}

func getUint16(data []byte, offset int) uint16 {
	return uint16(data[offset])<<8 | uint16(data[offset+1])
}

func getUint32(data []byte, offset int) uint32 {
	return uint32(data[offset])<<24 | uint32(data[offset+1])<<16 | uint32(data[offset+2])<<8 | uint32(data[offset+3])
}

func getUint64(data []byte, offset int) uint64 {
	return uint64(getUint32(data, offset))<<32 | uint64(getUint32(data, offset+4))
}

func getS15Fixed16(data []byte, offset int) float64 {
	return float64(int32(getUint32(data, offset))) / 65536
}

func getU8Fixed8(data []byte, offset int) float64 {
	return float64(getUint16(data, offset)) / 256
}

// clamp limits v to [lo, hi].  NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
