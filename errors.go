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
	"errors"
	"fmt"
)

// Sentinel errors, for use with [errors.Is].
var (
	// ErrTruncated indicates that fewer bytes were available than a
	// structure required.
	ErrTruncated = errors.New("unexpected end of data")

	// ErrOutOfRange indicates a field whose value lies outside its legal range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnsupported is matched by every [*UnsupportedError].
	ErrUnsupported = errors.New("not supported")
)

// InvalidProfileError indicates that an ICC profile contains invalid binary
// data and cannot be decoded.
type InvalidProfileError struct {
	Offset int
	Reason string
	Err    error // ErrTruncated, ErrOutOfRange, or nil
}

func invalidProfile(offset int, reason string) error {
	return &InvalidProfileError{Offset: offset, Reason: reason}
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("icc: invalid profile (byte %d): %s", e.Offset, e.Reason)
}

func (e *InvalidProfileError) Unwrap() error {
	return e.Err
}

// UnsupportedError is returned when a profile decodes correctly but cannot
// be used for the requested conversion.
type UnsupportedError struct {
	Reason string
}

func unsupported(format string, args ...any) error {
	return &UnsupportedError{Reason: fmt.Sprintf(format, args...)}
}

func (e *UnsupportedError) Error() string {
	return "icc: not supported: " + e.Reason
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Errors for individual tag payloads.  These are reported by the tag
// decoders and wrapped by the transform selector.
var (
	errMissingTag     = errors.New("missing tag")
	errUnexpectedType = errors.New("unexpected tag data type")
	errInvalidTagData = errors.New("invalid tag data")
)
