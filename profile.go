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
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxProfileSize limits how much data DecodeFile and DecodeReader accept.
const maxProfileSize = 64 << 20

// Profile is a decoded ICC profile.
//
// A Profile is never modified after decoding, and is safe for concurrent use.
type Profile struct {
	Header Header

	// Tags lists the entries of the tag table in file order.  Duplicate
	// signatures are kept; lookups use the first entry.
	Tags []Tag

	// CheckSum indicates whether the profile ID in the header matches the
	// profile data.
	CheckSum CheckSum
}

// Tag is one entry of the tag table, together with its payload.
type Tag struct {
	Signature Signature
	Offset    uint32
	Size      uint32
	Data      []byte
}

// Type returns the type signature at the start of the tag payload,
// or 0 if the payload is too short to hold one.
func (t Tag) Type() Signature {
	if len(t.Data) < 4 {
		return 0
	}
	return Signature(getUint32(t.Data, 0))
}

// DecodeFile reads and decodes the ICC profile stored in the named file.
func DecodeFile(path string) (*Profile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size() > maxProfileSize {
		return nil, fmt.Errorf("%s: profile too large (%d bytes)", path, fi.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// DecodeReader reads r until EOF and decodes the data as an ICC profile.
func DecodeReader(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxProfileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxProfileSize {
		return nil, fmt.Errorf("profile too large (more than %d bytes)", maxProfileSize)
	}
	return Decode(data)
}

// Decode decodes an ICC profile from the given data.
//
// Only structural problems cause an error.  Profiles which decode
// successfully may still be unusable for colour conversion; use
// [ErrorIfUnsupported] to check.  Data is not modified, and the returned
// profile does not share memory with it.
func Decode(data []byte) (*Profile, error) {
	if len(data) < headerSize+4 {
		return nil, &InvalidProfileError{Reason: "profile is too short", Err: ErrTruncated}
	}
	data = bytes.Clone(data)

	r := NewReader(data)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	switch {
	case int64(h.ProfileSize) > int64(len(data)):
		return nil, &InvalidProfileError{
			Reason: fmt.Sprintf("header declares %d bytes, only %d available", h.ProfileSize, len(data)),
			Err:    ErrTruncated,
		}
	case h.ProfileSize < headerSize+4:
		return nil, invalidProfile(0, "declared profile size is too small")
	}
	data = data[:h.ProfileSize]
	r = NewReader(data)
	_ = r.Skip(headerSize)

	numTags, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	maxNumTags := uint((len(data) - headerSize - 4) / 12)
	if uint(numTags) > maxNumTags {
		return nil, invalidProfile(headerSize, "too many tags")
	}

	p := &Profile{
		Header: *h,
		Tags:   make([]Tag, 0, numTags),
	}

	minTagOffset := int64(headerSize + 4 + 12*int64(numTags))
	for range numTags {
		entry := r.Offset()
		tagSig, _ := r.ReadSignature()
		tagOffset, _ := r.ReadUint32()
		tagSize, _ := r.ReadUint32()

		start := int64(tagOffset)
		end := start + int64(tagSize)
		if start < minTagOffset || end > int64(len(data)) {
			return nil, invalidProfile(entry, fmt.Sprintf("tag %s is out of bounds", tagSig.Quote()))
		}
		p.Tags = append(p.Tags, Tag{
			Signature: tagSig,
			Offset:    tagOffset,
			Size:      tagSize,
			Data:      data[start:end:end],
		})
	}

	p.CheckSum = verifyProfileID(data, h.ProfileID)

	return p, nil
}

// verifyProfileID checks the MD5 profile ID.  The ID is computed with the
// profile flags, rendering intent and profile ID fields set to zero.
func verifyProfileID(data []byte, id [16]byte) CheckSum {
	if id == [16]byte{} {
		return CheckSumMissing
	}
	buf := bytes.Clone(data)
	clear(buf[44:48])
	clear(buf[64:68])
	clear(buf[84:100])
	if md5.Sum(buf) == id {
		return CheckSumValid
	}
	return CheckSumInvalid
}

// Tag returns the first tag with the given signature.
func (p *Profile) Tag(s Signature) (Tag, bool) {
	for _, t := range p.Tags {
		if t.Signature == s {
			return t, true
		}
	}
	return Tag{}, false
}

// HasTag reports whether the profile contains a tag with the given signature.
func (p *Profile) HasTag(s Signature) bool {
	_, ok := p.Tag(s)
	return ok
}

// TagData returns the payload of the first tag with the given signature,
// or nil if there is no such tag.
func (p *Profile) TagData(s Signature) []byte {
	t, _ := p.Tag(s)
	return t.Data
}

// Channels returns the number of device channels of the profile.
func (p *Profile) Channels() int {
	return p.Header.ColorSpace.NumComponents()
}

// DuplicateTags returns the signatures which occur more than once in the
// tag table, in order of their second occurrence.
func (p *Profile) DuplicateTags() []Signature {
	seen := make(map[Signature]int)
	var dups []Signature
	for _, t := range p.Tags {
		seen[t.Signature]++
		if seen[t.Signature] == 2 {
			dups = append(dups, t.Signature)
		}
	}
	return dups
}

// UnknownTags returns the tags whose payload type is not understood by
// [DecodeTag].
func (p *Profile) UnknownTags() []Tag {
	var res []Tag
	for _, t := range p.Tags {
		if !isKnownType(t.Type()) {
			res = append(res, t)
		}
	}
	return res
}

// String returns a textual description of the header and the tag table.
func (p *Profile) String() string {
	b := &strings.Builder{}
	b.WriteString(p.Header.String())
	fmt.Fprintf(b, "CheckSum: %s\n", p.CheckSum)
	fmt.Fprintf(b, "Tags: %d\n", len(p.Tags))
	for _, t := range p.Tags {
		fmt.Fprintf(b, "  %s %s offset=%d size=%d\n",
			t.Signature.Quote(), t.Type().Quote(), t.Offset, t.Size)
	}
	return b.String()
}
