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

import "strings"

// ProfileFlag is one of the mutually exclusive settings encoded in the
// profile flags header field.
type ProfileFlag int

// Values of ProfileFlag.  Each pair is decoded from one bit.
const (
	NotEmbedded ProfileFlag = iota
	Embedded
	Independent
	NotIndependent
)

var profileFlagNames = []string{"NotEmbedded", "Embedded", "Independent", "NotIndependent"}

func (f ProfileFlag) String() string {
	return profileFlagNames[f]
}

// ProfileFlags is the raw profile flags header field.
// Bit 0 selects Embedded, bit 1 selects NotIndependent.
type ProfileFlags uint32

var profileFlagPairs = [][2]ProfileFlag{
	{NotEmbedded, Embedded},
	{Independent, NotIndependent},
}

// Flags returns one setting for each bit pair, least significant bit first.
func (f ProfileFlags) Flags() []ProfileFlag {
	return decodeBitPairs(uint64(f), profileFlagPairs)
}

// Has reports whether the given setting is selected.
func (f ProfileFlags) Has(flag ProfileFlag) bool {
	return hasBitPair(uint64(f), profileFlagPairs, flag)
}

func (f ProfileFlags) String() string {
	return joinNames(f.Flags())
}

// DeviceAttribute is one of the mutually exclusive settings encoded in the
// device attributes header field.
type DeviceAttribute int

// Values of DeviceAttribute.  Each pair is decoded from one bit.
const (
	Reflective DeviceAttribute = iota
	Transparency
	Glossy
	Matte
	Positive
	Negative
	Colour
	BlackAndWhite
)

var deviceAttributeNames = []string{
	"Reflective", "Transparency",
	"Glossy", "Matte",
	"Positive", "Negative",
	"Colour", "BlackAndWhite",
}

func (a DeviceAttribute) String() string {
	return deviceAttributeNames[a]
}

// DeviceAttributes is the raw device attributes header field.
// Bit 0 selects Transparency, bit 1 Matte, bit 2 Negative and
// bit 3 BlackAndWhite.  The upper 32 bits are vendor specific.
type DeviceAttributes uint64

var deviceAttributePairs = [][2]DeviceAttribute{
	{Reflective, Transparency},
	{Glossy, Matte},
	{Positive, Negative},
	{Colour, BlackAndWhite},
}

// Attributes returns one setting for each bit pair, least significant bit first.
func (a DeviceAttributes) Attributes() []DeviceAttribute {
	return decodeBitPairs(uint64(a), deviceAttributePairs)
}

// Has reports whether the given setting is selected.
func (a DeviceAttributes) Has(attr DeviceAttribute) bool {
	return hasBitPair(uint64(a), deviceAttributePairs, attr)
}

func (a DeviceAttributes) String() string {
	return joinNames(a.Attributes())
}

func decodeBitPairs[T any](raw uint64, pairs [][2]T) []T {
	res := make([]T, len(pairs))
	for i, pair := range pairs {
		res[i] = pair[raw>>i&1]
	}
	return res
}

func hasBitPair[T comparable](raw uint64, pairs [][2]T, x T) bool {
	for i, pair := range pairs {
		if pair[raw>>i&1] == x {
			return true
		}
	}
	return false
}

func joinNames[T interface{ String() string }](xs []T) string {
	names := make([]string, len(xs))
	for i, x := range xs {
		names[i] = x.String()
	}
	return strings.Join(names, "|")
}
