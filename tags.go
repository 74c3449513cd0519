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

// Tag signatures used by this package.
const (
	AToB0 Signature = 0x41324230 // "A2B0"
	AToB1 Signature = 0x41324231 // "A2B1"
	AToB2 Signature = 0x41324232 // "A2B2"
	BToA0 Signature = 0x42324130 // "B2A0"
	BToA1 Signature = 0x42324131 // "B2A1"
	BToA2 Signature = 0x42324132 // "B2A2"

	DToB0 Signature = 0x44324230 // "D2B0"
	DToB1 Signature = 0x44324231 // "D2B1"
	DToB2 Signature = 0x44324232 // "D2B2"
	DToB3 Signature = 0x44324233 // "D2B3"
	BToD0 Signature = 0x42324430 // "B2D0"
	BToD1 Signature = 0x42324431 // "B2D1"
	BToD2 Signature = 0x42324432 // "B2D2"
	BToD3 Signature = 0x42324433 // "B2D3"

	RedMatrixColumn   Signature = 0x7258595A // "rXYZ"
	GreenMatrixColumn Signature = 0x6758595A // "gXYZ"
	BlueMatrixColumn  Signature = 0x6258595A // "bXYZ"
	RedTRC            Signature = 0x72545243 // "rTRC"
	GreenTRC          Signature = 0x67545243 // "gTRC"
	BlueTRC           Signature = 0x62545243 // "bTRC"
	GrayTRC           Signature = 0x6B545243 // "kTRC"

	MediaWhitePoint     Signature = 0x77747074 // "wtpt"
	ProfileDescription  Signature = 0x64657363 // "desc"
	Copyright           Signature = 0x63707274 // "cprt"
	ChromaticAdaptation Signature = 0x63686164 // "chad"
)

var (
	aToBTags = [3]Signature{AToB0, AToB1, AToB2}
	bToATags = [3]Signature{BToA0, BToA1, BToA2}
	dToBTags = []Signature{DToB0, DToB1, DToB2, DToB3, BToD0, BToD1, BToD2, BToD3}

	matrixTRCTags = []Signature{
		RedMatrixColumn, GreenMatrixColumn, BlueMatrixColumn,
		RedTRC, GreenTRC, BlueTRC,
	}
)

var tagNames = map[Signature]string{
	AToB0:               "AToB0",
	AToB1:               "AToB1",
	AToB2:               "AToB2",
	BToA0:               "BToA0",
	BToA1:               "BToA1",
	BToA2:               "BToA2",
	DToB0:               "DToB0",
	DToB1:               "DToB1",
	DToB2:               "DToB2",
	DToB3:               "DToB3",
	BToD0:               "BToD0",
	BToD1:               "BToD1",
	BToD2:               "BToD2",
	BToD3:               "BToD3",
	RedMatrixColumn:     "Red Matrix Column",
	GreenMatrixColumn:   "Green Matrix Column",
	BlueMatrixColumn:    "Blue Matrix Column",
	RedTRC:              "Red TRC",
	GreenTRC:            "Green TRC",
	BlueTRC:             "Blue TRC",
	GrayTRC:             "Gray TRC",
	MediaWhitePoint:     "Media White Point",
	ProfileDescription:  "Profile Description",
	Copyright:           "Copyright",
	ChromaticAdaptation: "Chromatic Adaptation",
}

// TagName returns a human readable name for a tag signature.
// Tags without a known name are shown as quoted signatures.
func TagName(s Signature) string {
	if name, ok := tagNames[s]; ok {
		return name
	}
	return s.Quote()
}

// Description returns the profile description, in the first language
// listed in the profile.
func (p *Profile) Description() (string, error) {
	text, err := p.localizedText(ProfileDescription)
	if err != nil || len(text) == 0 {
		return "", err
	}
	return text[0].Value, nil
}

// Copyright returns the copyright notice of the profile.
func (p *Profile) Copyright() (MultiLocalizedUnicode, error) {
	return p.localizedText(Copyright)
}

func (p *Profile) localizedText(s Signature) (MultiLocalizedUnicode, error) {
	tag, ok := p.Tag(s)
	if !ok {
		return nil, errMissingTag
	}

	switch tag.Type() {
	case typeMLUC:
		return decodeMLUC(tag.Data)
	case typeText, typeDesc:
		var val string
		var err error
		if tag.Type() == typeText {
			val, err = decodeText(tag.Data)
		} else {
			val, err = decodeTextDescription(tag.Data)
		}
		if err != nil {
			return nil, err
		}
		return MultiLocalizedUnicode{{Language: "en", Country: "US", Value: val}}, nil
	default:
		return nil, errUnexpectedType
	}
}
