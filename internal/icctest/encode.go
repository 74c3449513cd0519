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

// Package icctest builds synthetic ICC profiles for use in tests.
//
// Profiles are assembled from raw tag payloads, so that tests can produce
// both well-formed and deliberately broken data.
package icctest

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"math"
	"time"
)

// Profile describes the header fields and tags of a synthetic profile.
// Signature fields are four character strings; an empty string encodes
// as zero.
type Profile struct {
	CMMType      string
	Version      uint32 // raw header bytes 8-11, e.g. 0x04300000 for 4.3
	Class        string
	ColorSpace   string
	PCS          string
	Created      time.Time
	Platform     string
	Flags        uint32
	Manufacturer string
	Model        string
	Attributes   uint64
	Intent       uint32
	Creator      string

	Tags []Tag

	// WithID stores the MD5 profile ID in the header.
	WithID bool
}

// Tag is one entry of the tag table.
type Tag struct {
	Sig  string
	Data []byte
}

// DefaultDate is used for profiles without a creation date.
var DefaultDate = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// Encode converts the profile to binary form.  Tags appear in the tag table
// in the given order; identical payloads share storage.
func (p *Profile) Encode() []byte {
	type tagInfo struct {
		start     uint32
		duplicate bool
	}
	infos := make([]tagInfo, len(p.Tags))
	pos := 128 + 4 + len(p.Tags)*12
	for i, tag := range p.Tags {
		for j := range i {
			if !infos[j].duplicate && bytes.Equal(p.Tags[j].Data, tag.Data) {
				infos[i] = tagInfo{start: infos[j].start, duplicate: true}
				break
			}
		}
		if !infos[i].duplicate {
			infos[i].start = uint32(pos)
			pos += (len(tag.Data) + 3) &^ 3
		}
	}

	buf := make([]byte, pos)
	putUint32(buf, 0, uint32(pos))
	putSig(buf, 4, p.CMMType)
	putUint32(buf, 8, p.Version)
	putSig(buf, 12, p.Class)
	putSig(buf, 16, p.ColorSpace)
	putSig(buf, 20, p.PCS)
	created := p.Created
	if created.IsZero() {
		created = DefaultDate
	}
	putDateTime(buf, 24, created)
	putSig(buf, 36, "acsp")
	putSig(buf, 40, p.Platform)
	putSig(buf, 48, p.Manufacturer)
	putSig(buf, 52, p.Model)
	binary.BigEndian.PutUint64(buf[56:], p.Attributes)
	copy(buf[68:], d50)
	putSig(buf, 80, p.Creator)

	putUint32(buf, 128, uint32(len(p.Tags)))
	tagTable := 128 + 4
	for i, tag := range p.Tags {
		putSig(buf, tagTable+i*12, tag.Sig)
		putUint32(buf, tagTable+i*12+4, infos[i].start)
		putUint32(buf, tagTable+i*12+8, uint32(len(tag.Data)))
		if !infos[i].duplicate {
			copy(buf[infos[i].start:], tag.Data)
		}
	}

	// The ID is computed with the flags, intent and ID fields set to zero.
	if p.WithID {
		h := md5.Sum(buf)
		copy(buf[84:], h[:])
	}
	putUint32(buf, 44, p.Flags)
	putUint32(buf, 64, p.Intent)

	return buf
}

// d50 is the PCS illuminant header field (bytes 68 to 79).
var d50 = []byte{
	0x00, 0x00, 0xf6, 0xd6, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0xd3, 0x2d,
}

func putUint16(data []byte, offset int, value uint16) {
	binary.BigEndian.PutUint16(data[offset:], value)
}

func putUint32(data []byte, offset int, value uint32) {
	binary.BigEndian.PutUint32(data[offset:], value)
}

func putS15Fixed16(data []byte, offset int, value float64) {
	putUint32(data, offset, uint32(int32(math.Round(value*65536))))
}

// putSig stores a four character signature.  Shorter strings are padded
// with spaces, the empty string is stored as zero.
func putSig(data []byte, offset int, s string) {
	if s == "" {
		return
	}
	copy(data[offset:offset+4], "    ")
	copy(data[offset:offset+4], s)
}

func putDateTime(data []byte, offset int, t time.Time) {
	fields := []int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()}
	for i, v := range fields {
		putUint16(data, offset+2*i, uint16(v))
	}
}

// PutDateTime overwrites the creation date fields of an encoded profile
// with raw values, which need not form a valid date.
func PutDateTime(data []byte, year, month, day, hour, minute, second int) {
	for i, v := range []int{year, month, day, hour, minute, second} {
		putUint16(data, 24+2*i, uint16(v))
	}
}

// u16 quantises a value in [0, 1] to 16 bits.
func u16(v float64) uint16 {
	return uint16(math.Round(clamp01(v) * 65535))
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
