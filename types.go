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
	"golang.org/x/text/encoding/unicode"
)

// Tag type signatures understood by [DecodeTag].
const (
	typeCurve      Signature = 0x63757276 // "curv"
	typeParametric Signature = 0x70617261 // "para"
	typeMft1       Signature = 0x6D667431 // "mft1"
	typeMft2       Signature = 0x6D667432 // "mft2"
	typeMAB        Signature = 0x6D414220 // "mAB "
	typeMBA        Signature = 0x6D424120 // "mBA "
	typeSF32       Signature = 0x73663332 // "sf32"
	typeXYZ        Signature = 0x58595A20 // "XYZ "
	typeMLUC       Signature = 0x6D6C7563 // "mluc"
	typeText       Signature = 0x74657874 // "text"
	typeDesc       Signature = 0x64657363 // "desc"
)

func isKnownType(t Signature) bool {
	switch t {
	case typeCurve, typeParametric, typeMft1, typeMft2, typeMAB, typeMBA,
		typeSF32, typeXYZ, typeMLUC, typeText, typeDesc:
		return true
	}
	return false
}

// UnknownTag is returned by [DecodeTag] for tag types which this package
// does not interpret.
type UnknownTag struct {
	Type Signature
	Data []byte
}

// DecodeTag decodes a tag payload, dispatching on the type signature in its
// first four bytes.  The dynamic type of the result is one of
//
//	Curve                  for "curv" and "para"
//	*Mft                   for "mft1" and "mft2"
//	*Luts                  for "mAB " and "mBA "
//	[]float64              for "sf32"
//	[]XYZ                  for "XYZ "
//	MultiLocalizedUnicode  for "mluc"
//	string                 for "text" and "desc"
//	*UnknownTag            for everything else
//
// Unknown types are not an error.
func DecodeTag(data []byte) (any, error) {
	if len(data) < 8 {
		return nil, errInvalidTagData
	}

	t := Signature(getUint32(data, 0))
	switch t {
	case typeCurve, typeParametric:
		return DecodeCurve(data)
	case typeMft1, typeMft2:
		return decodeMft(data)
	case typeMAB:
		return decodeLuts(data, DeviceToPCS)
	case typeMBA:
		return decodeLuts(data, PCSToDevice)
	case typeSF32:
		return decodeS15Fixed16Array(data)
	case typeXYZ:
		return decodeXYZArray(data)
	case typeMLUC:
		return decodeMLUC(data)
	case typeText:
		return decodeText(data)
	case typeDesc:
		return decodeTextDescription(data)
	default:
		return &UnknownTag{Type: t, Data: data}, nil
	}
}

func decodeS15Fixed16Array(data []byte) ([]float64, error) {
	if err := checkType(typeSF32, data); err != nil {
		return nil, err
	}
	n := (len(data) - 8) / 4
	res := make([]float64, n)
	for i := range res {
		res[i] = getS15Fixed16(data, 8+4*i)
	}
	return res, nil
}

func decodeXYZArray(data []byte) ([]XYZ, error) {
	if err := checkType(typeXYZ, data); err != nil {
		return nil, err
	}
	n := (len(data) - 8) / 12
	if n == 0 {
		return nil, errInvalidTagData
	}
	r := NewReader(data[8:])
	res := make([]XYZ, n)
	for i := range res {
		res[i], _ = r.ReadXYZ()
	}
	return res, nil
}

// decodeXYZ returns the first entry of an XYZType tag.
func decodeXYZ(data []byte) (XYZ, error) {
	xyz, err := decodeXYZArray(data)
	if err != nil {
		return XYZ{}, err
	}
	return xyz[0], nil
}

func decodeText(data []byte) (string, error) {
	if err := checkType(typeText, data); err != nil {
		return "", err
	}
	return trimNul(data[8:]), nil
}

// decodeTextDescription decodes the ICC v2 textDescriptionType.  The ASCII
// form is preferred; the Unicode form is used if the ASCII one is empty.
func decodeTextDescription(data []byte) (string, error) {
	if err := checkType(typeDesc, data); err != nil {
		return "", err
	}
	r := NewReader(data[8:])
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	ascii, err := r.ReadBytes(int(n))
	if err != nil {
		return "", errInvalidTagData
	}
	if s := trimNul(ascii); s != "" {
		return s, nil
	}

	if err := r.Skip(4); err != nil { // Unicode language code
		return "", nil
	}
	count, err := r.ReadUint32()
	if err != nil {
		return "", nil
	}
	u16, err := r.ReadBytes(2 * int(count))
	if err != nil {
		return "", errInvalidTagData
	}
	s, err := decodeUTF16BE(u16)
	if err != nil {
		return "", err
	}
	return trimNul([]byte(s)), nil
}

// MultiLocalizedUnicode represents a localized Unicode string.
type MultiLocalizedUnicode []LocalizedUnicode

// LocalizedUnicode represents a language-country pair.
type LocalizedUnicode struct {
	Language string
	Country  string
	Value    string
}

func decodeMLUC(data []byte) (MultiLocalizedUnicode, error) {
	if err := checkType(typeMLUC, data); err != nil {
		return nil, err
	}
	if len(data) < 16 {
		return nil, errInvalidTagData
	}
	n := getUint32(data, 8)
	recordSize := getUint32(data, 12)
	if recordSize < 12 {
		recordSize = 12
	}
	if n == 0 || uint64(len(data)) < 16+uint64(recordSize)*uint64(n) {
		return nil, errInvalidTagData
	}

	res := make(MultiLocalizedUnicode, n)
	for i := range res {
		rec := 16 + int(recordSize)*i
		length := getUint32(data, rec+4)
		offset := getUint32(data, rec+8)

		start := uint64(offset)
		end := start + uint64(length)
		if end > uint64(len(data)) || length&1 != 0 {
			return nil, errInvalidTagData
		}
		val, err := decodeUTF16BE(data[start:end])
		if err != nil {
			return nil, err
		}
		res[i] = LocalizedUnicode{
			Language: string(data[rec : rec+2]),
			Country:  string(data[rec+2 : rec+4]),
			Value:    val,
		}
	}
	return res, nil
}

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func decodeUTF16BE(b []byte) (string, error) {
	out, err := utf16BE.NewDecoder().Bytes(b)
	if err != nil {
		return "", errInvalidTagData
	}
	return string(out), nil
}

func trimNul(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}

func checkType(t Signature, data []byte) error {
	if len(data) < 8 {
		return errInvalidTagData
	}
	if Signature(getUint32(data, 0)) != t {
		return errUnexpectedType
	}
	return nil
}
