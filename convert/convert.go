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

package convert

import (
	"fmt"

	"github.com/kovidgoyal/go-parallel"

	"seehuhn.de/go/iccprofile"
)

// XYZResult is the outcome of converting one device colour to the PCS.
type XYZResult struct {
	XYZ iccprofile.XYZ
	Err error
}

// DeviceResult is the outcome of converting one PCS colour to device values.
type DeviceResult struct {
	Channels []float64
	Err      error
}

// ToXYZ converts device values to D50 XYZ.
//
// Without a profile, the values are interpreted as uncalibrated CMYK.
func (c *Config) ToXYZ(device []float64) XYZResult {
	if c.profile == nil {
		return XYZResult{XYZ: uncalibratedToXYZ(device)}
	}
	if c.err != nil {
		return XYZResult{Err: c.err}
	}
	xyz, err := c.transform.ToXYZ(device)
	return XYZResult{XYZ: xyz, Err: err}
}

// FromXYZ converts a D50 XYZ value to device values.
//
// Without a profile, the result is uncalibrated CMYK.
func (c *Config) FromXYZ(xyz iccprofile.XYZ) DeviceResult {
	if c.profile == nil {
		return DeviceResult{Channels: uncalibratedFromXYZ(xyz)}
	}
	if c.err != nil {
		return DeviceResult{Err: c.err}
	}
	dev, err := c.transform.FromXYZ(xyz)
	return DeviceResult{Channels: dev, Err: err}
}

// ToXYZBatch converts a list of device colours in parallel.  The results are
// in the same order as the inputs.
func (c *Config) ToXYZBatch(devices [][]float64) []XYZResult {
	res := make([]XYZResult, len(devices))
	if len(devices) == 0 {
		return res
	}
	done := make([]bool, len(devices))
	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			res[i] = c.safeToXYZ(devices[i])
			done[i] = true
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, len(devices)); err != nil {
		err = fmt.Errorf("convert: batch failed: %w", err)
		for i := range res {
			if !done[i] {
				res[i] = XYZResult{Err: err}
			}
		}
	}
	c.logBatch("ToXYZ", len(res), func(i int) error { return res[i].Err })
	return res
}

// FromXYZBatch converts a list of XYZ values in parallel.  The results are
// in the same order as the inputs.
func (c *Config) FromXYZBatch(xyzs []iccprofile.XYZ) []DeviceResult {
	res := make([]DeviceResult, len(xyzs))
	if len(xyzs) == 0 {
		return res
	}
	done := make([]bool, len(xyzs))
	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			res[i] = c.safeFromXYZ(xyzs[i])
			done[i] = true
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, len(xyzs)); err != nil {
		err = fmt.Errorf("convert: batch failed: %w", err)
		for i := range res {
			if !done[i] {
				res[i] = DeviceResult{Err: err}
			}
		}
	}
	c.logBatch("FromXYZ", len(res), func(i int) error { return res[i].Err })
	return res
}

// safeToXYZ is ToXYZ with a panic turned into an error for this item only.
func (c *Config) safeToXYZ(device []float64) (res XYZResult) {
	defer func() {
		if r := recover(); r != nil {
			res = XYZResult{Err: fmt.Errorf("convert: %v", r)}
		}
	}()
	return c.ToXYZ(device)
}

// safeFromXYZ is FromXYZ with a panic turned into an error for this item
// only.
func (c *Config) safeFromXYZ(xyz iccprofile.XYZ) (res DeviceResult) {
	defer func() {
		if r := recover(); r != nil {
			res = DeviceResult{Err: fmt.Errorf("convert: %v", r)}
		}
	}()
	return c.FromXYZ(xyz)
}

func (c *Config) logBatch(op string, n int, errAt func(int) error) {
	failed := 0
	var first error
	for i := range n {
		if err := errAt(i); err != nil {
			if first == nil {
				first = err
			}
			failed++
		}
	}
	if first != nil {
		c.logger.Debug("batch converted", "op", op, "count", n, "failed", failed, "error", first)
	} else {
		c.logger.Debug("batch converted", "op", op, "count", n)
	}
}
