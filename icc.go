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

// Package iccprofile converts colours between device channels and the ICC
// profile connection space.
//
// A profile is decoded once, with [Decode], [DecodeFile] or [DecodeReader],
// into an immutable [Profile].  Decoding is lenient: a profile with
// duplicate tags or tag types this package does not understand still
// decodes.  Whether a profile can be used for conversions is decided
// separately, by [ErrorIfUnsupported]:
//
//	p, err := iccprofile.DecodeFile("press.icc")
//	if err != nil {
//	    // structurally broken
//	}
//	if err := iccprofile.ErrorIfUnsupported(p); err != nil {
//	    // readable, but not usable
//	}
//	xyz, err := p.ToXYZ([]float64{0.1, 0.2, 0.3, 0.4}, iccprofile.RelativeColorimetric)
//
// Device channels are normalised to [0, 1].  XYZ values are relative to the
// D50 illuminant of the PCS; use [AdaptFromD50] to move them to a different
// reference white.
//
// All types in this package are safe for concurrent use once constructed.
package iccprofile

import (
	"fmt"
	"strings"
)

// Signature is a four byte code, as used for tag names, type names,
// manufacturers and platforms.
type Signature uint32

// String returns the four bytes as a string.  Non-printable bytes are passed
// through unchanged.
func (s Signature) String() string {
	return string([]byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)})
}

// Quote formats the signature for diagnostic output: printable signatures
// are quoted, everything else is shown in hex.
func (s Signature) Quote() string {
	str := s.String()
	for i := 0; i < len(str); i++ {
		if str[i] < 0x20 || str[i] > 0x7E {
			return fmt.Sprintf("0x%08X", uint32(s))
		}
	}
	return fmt.Sprintf("%q", str)
}

// ParseSignature converts a four character string, such as "A2B0" or
// "wtpt", into a Signature.
func ParseSignature(s string) (Signature, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("icc: invalid signature %q (need 4 bytes)", s)
	}
	return Signature(uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3])), nil
}

// Version is the version of the ICC profile format used by a profile.
type Version struct {
	Major  uint8
	Minor  uint8
	Bugfix uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Bugfix)
}

// ProfileClass is the ICC profile or device class.
type ProfileClass uint32

// Profile classes defined in the ICC specification.
const (
	InputDeviceProfile   ProfileClass = 0x73636E72 // "scnr"
	DisplayDeviceProfile ProfileClass = 0x6D6E7472 // "mntr"
	OutputDeviceProfile  ProfileClass = 0x70727472 // "prtr"

	ColorSpaceProfile ProfileClass = 0x73706163 // "spac"
	DeviceLinkProfile ProfileClass = 0x6C696E6B // "link"
	AbstractProfile   ProfileClass = 0x61627374 // "abst"
	NamedColorProfile ProfileClass = 0x6E6D636C // "nmcl"
)

var profileClassNames = map[ProfileClass]string{
	InputDeviceProfile:   "Input Device Profile",
	DisplayDeviceProfile: "Display Device Profile",
	OutputDeviceProfile:  "Output Device Profile",
	ColorSpaceProfile:    "ColorSpace Profile",
	DeviceLinkProfile:    "DeviceLink Profile",
	AbstractProfile:      "Abstract Profile",
	NamedColorProfile:    "Named Color Profile",
}

func (c ProfileClass) String() string {
	if name, ok := profileClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ProfileClass(%s)", Signature(c).Quote())
}

// RenderingIntent specifies how colours outside the destination gamut are handled.
type RenderingIntent uint32

// Standard ICC rendering intents.
const (
	Perceptual           RenderingIntent = 0
	RelativeColorimetric RenderingIntent = 1
	Saturation           RenderingIntent = 2
	AbsoluteColorimetric RenderingIntent = 3
)

func (ri RenderingIntent) String() string {
	switch ri {
	case Perceptual:
		return "Perceptual"
	case RelativeColorimetric:
		return "Relative Colorimetric"
	case Saturation:
		return "Saturation"
	case AbsoluteColorimetric:
		return "Absolute Colorimetric"
	default:
		return fmt.Sprintf("RenderingIntent(%d)", uint32(ri))
	}
}

// ParseIntent converts a rendering intent name, as used on command lines,
// into a RenderingIntent.
func ParseIntent(s string) (RenderingIntent, error) {
	switch strings.ToLower(s) {
	case "perceptual", "p":
		return Perceptual, nil
	case "relative", "relative-colorimetric", "r":
		return RelativeColorimetric, nil
	case "saturation", "s":
		return Saturation, nil
	case "absolute", "absolute-colorimetric", "a":
		return AbsoluteColorimetric, nil
	default:
		return 0, fmt.Errorf("unknown rendering intent %q (use perceptual, relative, saturation, or absolute)", s)
	}
}

// ColorSpace identifies a colour space in an ICC profile.
type ColorSpace uint32

// Color spaces defined in the ICC specification.
const (
	CIEXYZSpace  ColorSpace = 0x58595A20 // "XYZ "
	CIELabSpace  ColorSpace = 0x4C616220 // "Lab "
	CIELuvSpace  ColorSpace = 0x4C757620 // "Luv "
	YCbCrSpace   ColorSpace = 0x59436272 // "YCbr"
	CIEYxySpace  ColorSpace = 0x59787920 // "Yxy "
	RGBSpace     ColorSpace = 0x52474220 // "RGB "
	GraySpace    ColorSpace = 0x47524159 // "GRAY"
	HSVSpace     ColorSpace = 0x48535620 // "HSV "
	HLSSpace     ColorSpace = 0x484C5320 // "HLS "
	CMYKSpace    ColorSpace = 0x434D594B // "CMYK"
	CMYSpace     ColorSpace = 0x434D5920 // "CMY "
	Color2Space  ColorSpace = 0x32434C52 // "2CLR"
	Color3Space  ColorSpace = 0x33434C52 // "3CLR"
	Color4Space  ColorSpace = 0x34434C52 // "4CLR"
	Color5Space  ColorSpace = 0x35434C52 // "5CLR"
	Color6Space  ColorSpace = 0x36434C52 // "6CLR"
	Color7Space  ColorSpace = 0x37434C52 // "7CLR"
	Color8Space  ColorSpace = 0x38434C52 // "8CLR"
	Color9Space  ColorSpace = 0x39434C52 // "9CLR"
	Color10Space ColorSpace = 0x41434C52 // "ACLR"
	Color11Space ColorSpace = 0x42434C52 // "BCLR"
	Color12Space ColorSpace = 0x43434C52 // "CCLR"
	Color13Space ColorSpace = 0x44434C52 // "DCLR"
	Color14Space ColorSpace = 0x45434C52 // "ECLR"
	Color15Space ColorSpace = 0x46434C52 // "FCLR"

	PCSXYZSpace = CIEXYZSpace
	PCSLabSpace = CIELabSpace
)

type colorSpaceInfo struct {
	name     string
	channels int
}

var colorSpaces = map[ColorSpace]colorSpaceInfo{
	CIEXYZSpace:  {"CIEXYZ", 3},
	CIELabSpace:  {"CIELAB", 3},
	CIELuvSpace:  {"CIELUV", 3},
	YCbCrSpace:   {"YCbCr", 3},
	CIEYxySpace:  {"CIEYxy", 3},
	RGBSpace:     {"RGB", 3},
	GraySpace:    {"Gray", 1},
	HSVSpace:     {"HSV", 3},
	HLSSpace:     {"HLS", 3},
	CMYKSpace:    {"CMYK", 4},
	CMYSpace:     {"CMY", 3},
	Color2Space:  {"2CLR", 2},
	Color3Space:  {"3CLR", 3},
	Color4Space:  {"4CLR", 4},
	Color5Space:  {"5CLR", 5},
	Color6Space:  {"6CLR", 6},
	Color7Space:  {"7CLR", 7},
	Color8Space:  {"8CLR", 8},
	Color9Space:  {"9CLR", 9},
	Color10Space: {"10CLR", 10},
	Color11Space: {"11CLR", 11},
	Color12Space: {"12CLR", 12},
	Color13Space: {"13CLR", 13},
	Color14Space: {"14CLR", 14},
	Color15Space: {"15CLR", 15},
}

func (s ColorSpace) String() string {
	if info, ok := colorSpaces[s]; ok {
		return info.name
	}
	return fmt.Sprintf("ColorSpace(%s)", Signature(s).Quote())
}

// NumComponents returns the number of colour components in the colour space,
// or 0 if the colour space is not known.
func (s ColorSpace) NumComponents() int {
	return colorSpaces[s].channels
}

// CheckSum contains information about the Profile ID field.
type CheckSum int

func (c CheckSum) String() string {
	switch c {
	case CheckSumValid:
		return "Valid"
	case CheckSumInvalid:
		return "Invalid"
	default:
		return "Missing"
	}
}

// Possible values of the CheckSum field.
const (
	CheckSumMissing CheckSum = iota
	CheckSumValid
	CheckSumInvalid
)

// XYZ is a colour in CIE XYZ coordinates.
type XYZ [3]float64

// D50 is the illuminant of the profile connection space, as given in the
// ICC specification.
var D50 = XYZ{0.9642, 1.0, 0.8249}
