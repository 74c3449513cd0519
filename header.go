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
	"strings"
	"time"
)

const headerSize = 128

// FileSignature is the value of the file signature field of every ICC profile.
const FileSignature Signature = 0x61637370 // "acsp"

// Header holds the fields of the fixed 128-byte ICC profile header.
type Header struct {
	ProfileSize   uint32
	CMMType       Signature
	Version       Version
	Class         ProfileClass
	ColorSpace    ColorSpace // device colour space (e.g. RGBSpace, CMYKSpace)
	PCS           ColorSpace // Profile Connection Space (PCSXYZSpace or PCSLabSpace)
	Created       time.Time
	FileSignature Signature
	Platform      Signature
	Flags         ProfileFlags
	Manufacturer  Signature
	Model         Signature
	Attributes    DeviceAttributes
	Intent        RenderingIntent
	Illuminant    XYZ
	Creator       Signature
	ProfileID     [16]byte
}

// decodeHeader reads the fixed-size profile header.  Apart from the
// creation date, no field is validated here; see [ErrorIfUnsupported].
func decodeHeader(r *Reader) (*Header, error) {
	if r.Remaining() < headerSize {
		return nil, &InvalidProfileError{Offset: r.Offset(), Reason: "header is too short", Err: ErrTruncated}
	}

	// The length check above guarantees that only ReadDateTime can fail.
	h := &Header{}
	h.ProfileSize, _ = r.ReadUint32()
	h.CMMType, _ = r.ReadSignature()
	h.Version, _ = r.ReadVersion()
	class, _ := r.ReadUint32()
	h.Class = ProfileClass(class)
	space, _ := r.ReadUint32()
	h.ColorSpace = ColorSpace(space)
	pcs, _ := r.ReadUint32()
	h.PCS = ColorSpace(pcs)

	created, err := r.ReadDateTime()
	if err != nil {
		return nil, err
	}
	h.Created = created

	h.FileSignature, _ = r.ReadSignature()
	h.Platform, _ = r.ReadSignature()
	h.Flags, _ = r.ReadProfileFlags()
	h.Manufacturer, _ = r.ReadSignature()
	h.Model, _ = r.ReadSignature()
	h.Attributes, _ = r.ReadDeviceAttributes()
	intent, _ := r.ReadUint32()
	h.Intent = RenderingIntent(intent)
	h.Illuminant, _ = r.ReadXYZ()
	h.Creator, _ = r.ReadSignature()
	id, _ := r.ReadBytes(16)
	copy(h.ProfileID[:], id)
	_ = r.Skip(28) // reserved

	return h, nil
}

// String lists the header fields, one per line.
func (h *Header) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "ProfileSize: %d\n", h.ProfileSize)
	fmt.Fprintf(b, "CMMType: %s\n", h.CMMType.Quote())
	fmt.Fprintf(b, "Version: %s\n", h.Version)
	fmt.Fprintf(b, "Class: %s\n", h.Class)
	fmt.Fprintf(b, "ColorSpace: %s\n", h.ColorSpace)
	fmt.Fprintf(b, "PCS: %s\n", h.PCS)
	fmt.Fprintf(b, "Created: %s\n", h.Created.Format(time.RFC3339))
	fmt.Fprintf(b, "FileSignature: %s\n", h.FileSignature.Quote())
	fmt.Fprintf(b, "Platform: %s\n", h.Platform.Quote())
	fmt.Fprintf(b, "Flags: %s\n", h.Flags)
	fmt.Fprintf(b, "Manufacturer: %s\n", h.Manufacturer.Quote())
	fmt.Fprintf(b, "Model: %s\n", h.Model.Quote())
	fmt.Fprintf(b, "Attributes: %s\n", h.Attributes)
	fmt.Fprintf(b, "Intent: %s\n", h.Intent)
	fmt.Fprintf(b, "Illuminant: %.4f %.4f %.4f\n", h.Illuminant[0], h.Illuminant[1], h.Illuminant[2])
	fmt.Fprintf(b, "Creator: %s\n", h.Creator.Quote())
	fmt.Fprintf(b, "ProfileID: %x\n", h.ProfileID)
	return b.String()
}
