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

// ErrorIfUnsupported checks whether a profile can be used for colour
// conversion.  The returned error, if any, is an [*UnsupportedError].
//
// A profile is rejected if the file signature is not "acsp", if the
// profile class or colour spaces are not supported, or if it contains no
// tag set from which a transform can be built.  Profiles which only carry
// D-to-B tags are reported separately.
func ErrorIfUnsupported(p *Profile) error {
	h := &p.Header

	if h.FileSignature != FileSignature {
		return unsupported("file signature is %s, not \"acsp\"", h.FileSignature.Quote())
	}

	switch h.Class {
	case InputDeviceProfile, DisplayDeviceProfile, OutputDeviceProfile, ColorSpaceProfile:
		// pass
	default:
		return unsupported("profile class %s", h.Class)
	}
	if h.ColorSpace.NumComponents() == 0 {
		return unsupported("data colour space %s", h.ColorSpace)
	}
	if h.PCS != PCSXYZSpace && h.PCS != PCSLabSpace {
		return unsupported("%s data with PCS %s", h.ColorSpace, h.PCS)
	}

	if hasLutTags(p) || hasMatrixTRC(p) || hasGrayTRC(p) {
		return nil
	}
	for _, s := range dToBTags {
		if p.HasTag(s) {
			return unsupported("only D-to-B transform tags present (%s)", TagName(s))
		}
	}
	return unsupported("no AToB/BToA, matrix/TRC or gray TRC tags")
}

func hasLutTags(p *Profile) bool {
	for i := range aToBTags {
		if p.HasTag(aToBTags[i]) || p.HasTag(bToATags[i]) {
			return true
		}
	}
	return false
}

func hasMatrixTRC(p *Profile) bool {
	if p.Header.ColorSpace != RGBSpace {
		return false
	}
	for _, s := range matrixTRCTags {
		if !p.HasTag(s) {
			return false
		}
	}
	return true
}

func hasGrayTRC(p *Profile) bool {
	return p.Header.ColorSpace == GraySpace && p.HasTag(GrayTRC)
}
