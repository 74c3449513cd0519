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

import "fmt"

// Transform converts colours between the device space of a profile and
// D50 XYZ, for one rendering intent.
//
// The two directions are selected independently.  For the requested
// intent the intent-specific AToB/BToA tag is used if present, then
// AToB0/BToA0, and only if neither exists the matrix/TRC or gray TRC tags.
// If no tag set supports a direction, the corresponding method returns an
// [*UnsupportedError].
//
// A Transform holds no mutable state and is safe for concurrent use.
type Transform struct {
	intent   RenderingIntent
	channels int
	white    XYZ // media white point, for absolute colorimetric scaling

	toXYZ   func(device []float64) XYZ
	toDesc  string
	toErr   error
	fromXYZ func(xyz XYZ) []float64
	fromDes string
	fromErr error
}

// NewTransform creates the transform for the given rendering intent.
// An error is returned if the profile fails [ErrorIfUnsupported].
func NewTransform(p *Profile, intent RenderingIntent) (*Transform, error) {
	if intent > AbsoluteColorimetric {
		return nil, unsupported("rendering intent %d", uint32(intent))
	}
	if err := ErrorIfUnsupported(p); err != nil {
		return nil, err
	}

	t := &Transform{
		intent:   intent,
		channels: p.Channels(),
		white:    D50,
	}
	if intent == AbsoluteColorimetric {
		if wp, err := decodeXYZ(p.TagData(MediaWhitePoint)); err == nil && wp[1] > 0 {
			t.white = wp
		}
	}

	t.toXYZ, t.toDesc, t.toErr = selectToXYZ(p, intent)
	t.fromXYZ, t.fromDes, t.fromErr = selectFromXYZ(p, intent)
	return t, nil
}

// ToXYZ converts device channel values, normalised to [0, 1], into D50 XYZ.
// Missing channels are treated as 0, extra channels are ignored.
// The result is not clamped.
func (t *Transform) ToXYZ(device []float64) (XYZ, error) {
	if t.toErr != nil {
		return XYZ{}, t.toErr
	}
	xyz := t.toXYZ(fitChannels(device, t.channels))
	if t.intent == AbsoluteColorimetric {
		for i := range xyz {
			xyz[i] *= t.white[i] / D50[i]
		}
	}
	return xyz, nil
}

// FromXYZ converts a D50 XYZ value into device channel values in [0, 1].
func (t *Transform) FromXYZ(xyz XYZ) ([]float64, error) {
	if t.fromErr != nil {
		return nil, t.fromErr
	}
	if t.intent == AbsoluteColorimetric {
		for i := range xyz {
			xyz[i] *= D50[i] / t.white[i]
		}
	}
	return fitChannels(t.fromXYZ(xyz), t.channels), nil
}

// Channels returns the number of device channels.
func (t *Transform) Channels() int {
	return t.channels
}

// Intent returns the rendering intent the transform was built for.
func (t *Transform) Intent() RenderingIntent {
	return t.intent
}

// Describe names the tags used for the given direction, or the reason
// why the direction is not available.
func (t *Transform) Describe(dir Direction) string {
	if dir == DeviceToPCS {
		if t.toErr != nil {
			return t.toErr.Error()
		}
		return t.toDesc
	}
	if t.fromErr != nil {
		return t.fromErr.Error()
	}
	return t.fromDes
}

// ToXYZ converts device channel values to D50 XYZ using the given intent.
// Each call selects and decodes the transform tags; use [NewTransform] to
// convert many colours.
func (p *Profile) ToXYZ(device []float64, intent RenderingIntent) (XYZ, error) {
	t, err := NewTransform(p, intent)
	if err != nil {
		return XYZ{}, err
	}
	return t.ToXYZ(device)
}

// FromXYZ converts a D50 XYZ value to device channel values using the
// given intent.
func (p *Profile) FromXYZ(xyz XYZ, intent RenderingIntent) ([]float64, error) {
	t, err := NewTransform(p, intent)
	if err != nil {
		return nil, err
	}
	return t.FromXYZ(xyz)
}

// fitChannels zero-pads or truncates v to length n.
func fitChannels(v []float64, n int) []float64 {
	res := make([]float64, n)
	copy(res, v)
	return res
}

// selectLutTag picks the tag for the intent from tags (indexed by intent,
// with absolute colorimetric sharing the relative colorimetric tag),
// falling back to tags[0].
func selectLutTag(p *Profile, tags [3]Signature, intent RenderingIntent) (Signature, bool) {
	idx := int(intent)
	if intent == AbsoluteColorimetric {
		idx = int(RelativeColorimetric)
	}
	if p.HasTag(tags[idx]) {
		return tags[idx], true
	}
	if p.HasTag(tags[0]) {
		return tags[0], true
	}
	return 0, false
}

func selectToXYZ(p *Profile, intent RenderingIntent) (func([]float64) XYZ, string, error) {
	if s, ok := selectLutTag(p, aToBTags, intent); ok {
		lut, enc, err := loadLut(p, s, DeviceToPCS)
		if err != nil {
			return nil, "", err
		}
		f := func(device []float64) XYZ {
			return decodePCS(lut.Apply(device), enc)
		}
		return f, TagName(s) + ": " + lut.String(), nil
	}

	switch {
	case hasMatrixTRC(p):
		mt, err := loadMatrixTRC(p)
		if err != nil {
			return nil, "", err
		}
		return mt.toXYZ, "matrix/TRC", nil
	case hasGrayTRC(p):
		g, err := loadGrayTRC(p)
		if err != nil {
			return nil, "", err
		}
		return g.toXYZ, "gray TRC", nil
	}
	return nil, "", unsupported("no device to PCS transform for %s intent", intent)
}

func selectFromXYZ(p *Profile, intent RenderingIntent) (func(XYZ) []float64, string, error) {
	if s, ok := selectLutTag(p, bToATags, intent); ok {
		lut, enc, err := loadLut(p, s, PCSToDevice)
		if err != nil {
			return nil, "", err
		}
		f := func(xyz XYZ) []float64 {
			return lut.Apply(encodePCS(xyz, enc))
		}
		return f, TagName(s) + ": " + lut.String(), nil
	}

	switch {
	case hasMatrixTRC(p):
		mt, err := loadMatrixTRC(p)
		if err != nil {
			return nil, "", err
		}
		if mt.inv == (matrix3{}) {
			return nil, "", unsupported("singular colorant matrix")
		}
		return mt.fromXYZ, "matrix/TRC", nil
	case hasGrayTRC(p):
		g, err := loadGrayTRC(p)
		if err != nil {
			return nil, "", err
		}
		return g.fromXYZ, "gray TRC", nil
	}
	return nil, "", unsupported("no PCS to device transform for %s intent", intent)
}

// loadLut decodes the lookup table stored in tag s.  The PCS side of the
// table must have three channels.
func loadLut(p *Profile, s Signature, dir Direction) (Lut, pcsEncoding, error) {
	tag, _ := p.Tag(s)

	var lut Lut
	legacy := false
	switch tag.Type() {
	case typeMAB, typeMBA:
		l, err := decodeLuts(tag.Data, dir)
		if err != nil {
			return nil, 0, tagError(tag, err)
		}
		lut = l
	case typeMft1, typeMft2:
		m, err := decodeMft(tag.Data)
		if err != nil {
			return nil, 0, tagError(tag, err)
		}
		legacy = m.Precision == 2
		lut = m
	default:
		return nil, 0, unsupported("%s has type %s", TagName(s), tag.Type().Quote())
	}

	pcsChannels := lut.OutputChannels()
	if dir == PCSToDevice {
		pcsChannels = lut.InputChannels()
	}
	if pcsChannels != 3 {
		return nil, 0, unsupported("%s has %d PCS channels", TagName(s), pcsChannels)
	}

	enc := encodingXYZ
	if p.Header.PCS == PCSLabSpace {
		enc = encodingLab
		if legacy {
			enc = encodingLabLegacy
		}
	}
	return lut, enc, nil
}

func tagError(tag Tag, err error) error {
	return &InvalidProfileError{
		Offset: int(tag.Offset),
		Reason: fmt.Sprintf("%s: %v", TagName(tag.Signature), err),
		Err:    err,
	}
}

type matrixTRC struct {
	m, inv matrix3
	trc    [3]Curve
}

func loadMatrixTRC(p *Profile) (*matrixTRC, error) {
	var cols [3]XYZ
	for i, s := range matrixTRCTags[:3] {
		xyz, err := decodeXYZ(p.TagData(s))
		if err != nil {
			tag, _ := p.Tag(s)
			return nil, tagError(tag, err)
		}
		cols[i] = xyz
	}

	mt := &matrixTRC{
		m: matrix3{
			cols[0][0], cols[1][0], cols[2][0],
			cols[0][1], cols[1][1], cols[2][1],
			cols[0][2], cols[1][2], cols[2][2],
		},
	}
	mt.inv = mt.m.inverse()

	for i, s := range matrixTRCTags[3:] {
		c, err := DecodeCurve(p.TagData(s))
		if err != nil {
			tag, _ := p.Tag(s)
			return nil, tagError(tag, err)
		}
		mt.trc[i] = c
	}
	return mt, nil
}

func (mt *matrixTRC) toXYZ(rgb []float64) XYZ {
	var linear XYZ
	for i, c := range mt.trc {
		linear[i] = c.Lookup(clamp(rgb[i], 0, 1))
	}
	return mt.m.apply(linear)
}

func (mt *matrixTRC) fromXYZ(xyz XYZ) []float64 {
	linear := mt.inv.apply(xyz)
	rgb := make([]float64, 3)
	for i, c := range mt.trc {
		rgb[i] = clamp(c.Invert(clamp(linear[i], 0, 1)), 0, 1)
	}
	return rgb
}

// grayTRC maps gray values to the achromatic axis of the PCS.  The curve
// output is Y for an XYZ PCS and L*/100 for a Lab PCS.
type grayTRC struct {
	trc Curve
	lab bool
}

func loadGrayTRC(p *Profile) (*grayTRC, error) {
	c, err := DecodeCurve(p.TagData(GrayTRC))
	if err != nil {
		tag, _ := p.Tag(GrayTRC)
		return nil, tagError(tag, err)
	}
	return &grayTRC{trc: c, lab: p.Header.PCS == PCSLabSpace}, nil
}

func (g *grayTRC) toXYZ(gray []float64) XYZ {
	y := g.trc.Lookup(clamp(gray[0], 0, 1))
	if g.lab {
		return LabToXYZ([3]float64{100 * y, 0, 0}, D50)
	}
	return XYZ{D50[0] * y, D50[1] * y, D50[2] * y}
}

func (g *grayTRC) fromXYZ(xyz XYZ) []float64 {
	y := xyz[1] / D50[1]
	if g.lab {
		y = XYZToLab(xyz, D50)[0] / 100
	}
	return []float64{clamp(g.trc.Invert(clamp(y, 0, 1)), 0, 1)}
}
