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
	"bytes"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/iccprofile"
	"seehuhn.de/go/iccprofile/internal/icctest"
)

func TestCMYKToRGB(t *testing.T) {
	tests := []struct {
		cmyk [4]float64
		rgb  [3]float64
	}{
		{[4]float64{0, 0, 0, 0}, [3]float64{1, 1, 1}},
		{[4]float64{0, 0, 0, 1}, [3]float64{0, 0, 0}},
		{[4]float64{1, 0, 0, 0}, [3]float64{0, 1, 1}},
		{[4]float64{0.5, 0.25, 0, 0.5}, [3]float64{0.25, 0.375, 0.5}},
		{[4]float64{-1, 2, 0, 0}, [3]float64{1, 0, 1}},
	}
	for _, tt := range tests {
		r, g, b := CMYKToRGB(tt.cmyk[0], tt.cmyk[1], tt.cmyk[2], tt.cmyk[3])
		assert.InDeltaSlice(t, tt.rgb[:], []float64{r, g, b}, 1e-12, "cmyk %v", tt.cmyk)
	}
}

func TestRGBToCMYK(t *testing.T) {
	tests := []struct {
		rgb  [3]float64
		cmyk [4]float64
	}{
		{[3]float64{1, 1, 1}, [4]float64{0, 0, 0, 0}},
		{[3]float64{0, 0, 0}, [4]float64{0, 0, 0, 1}},
		{[3]float64{1, 0, 0}, [4]float64{0, 1, 1, 0}},
		{[3]float64{0.5, 0.5, 0.5}, [4]float64{0, 0, 0, 0.5}},
		{[3]float64{0.25, 0.375, 0.5}, [4]float64{0.5, 0.25, 0, 0.5}},
		{[3]float64{2, -1, 1}, [4]float64{0, 1, 0, 0}},
	}
	for _, tt := range tests {
		c, m, y, k := RGBToCMYK(tt.rgb[0], tt.rgb[1], tt.rgb[2])
		assert.InDeltaSlice(t, tt.cmyk[:], []float64{c, m, y, k}, 1e-12, "rgb %v", tt.rgb)
	}
}

func TestUncalibrated(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.False(t, c.Calibrated())
	assert.Nil(t, c.Profile())
	assert.Equal(t, 4, c.Channels())
	assert.Equal(t, iccprofile.Perceptual, c.Intent())
	assert.NoError(t, c.Err())

	white := c.ToXYZ([]float64{0, 0, 0, 0})
	require.NoError(t, white.Err)
	assert.InDeltaSlice(t, iccprofile.D50[:], white.XYZ[:], 2e-3)

	black := c.ToXYZ([]float64{0, 0, 0, 1})
	require.NoError(t, black.Err)
	assert.InDeltaSlice(t, []float64{0, 0, 0}, black.XYZ[:], 1e-9)

	// short input is padded with zeros
	assert.Equal(t, white, c.ToXYZ(nil))

	// black generation changes the separation, but not the colour
	for _, cmyk := range [][]float64{{0.2, 0.4, 0.6, 0}, {0.5, 0.5, 0.5, 0.5}, {0, 1, 1, 0}, {0.1, 0.9, 0.3, 0.2}} {
		res := c.FromXYZ(c.ToXYZ(cmyk).XYZ)
		require.NoError(t, res.Err)
		require.Len(t, res.Channels, 4)
		r1, g1, b1 := CMYKToRGB(cmyk[0], cmyk[1], cmyk[2], cmyk[3])
		r2, g2, b2 := CMYKToRGB(res.Channels[0], res.Channels[1], res.Channels[2], res.Channels[3])
		assert.InDeltaSlice(t, []float64{r1, g1, b1}, []float64{r2, g2, b2}, 1e-3, "cmyk %v", cmyk)
	}
}

func TestProfileSources(t *testing.T) {
	data := icctest.PressV4()
	p, err := iccprofile.Decode(data)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "press.icc")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	sources := map[string]Option{
		"profile": WithProfile(p),
		"bytes":   WithProfileBytes(data),
		"reader":  WithProfileReader(bytes.NewReader(data)),
		"file":    WithProfileFile(path),
	}
	inputs := [][]float64{{0, 0, 0, 0}, {0.25, 0.5, 0.75, 0}, {0.1, 0.2, 0.3, 0.4}, {1, 1, 1, 1}}
	var want []XYZResult
	for name, opt := range sources {
		c, err := New(opt, WithIntent(iccprofile.RelativeColorimetric))
		require.NoError(t, err, name)
		assert.True(t, c.Calibrated(), name)
		assert.Equal(t, 4, c.Channels(), name)
		assert.Equal(t, iccprofile.RelativeColorimetric, c.Intent(), name)
		if d := cmp.Diff(p.Header, c.Profile().Header); d != "" {
			t.Errorf("%s: header mismatch (-want +got):\n%s", name, d)
		}

		got := c.ToXYZBatch(inputs)
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, name)
	}
	for i, res := range want {
		require.NoError(t, res.Err)
		exp := icctest.PressToXYZ(inputs[i])
		assert.InDeltaSlice(t, exp[:], res.XYZ[:], 1e-3, "input %v", inputs[i])
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := New(WithProfileBytes([]byte("not a profile")))
	require.Error(t, err)
	var perr *iccprofile.InvalidProfileError
	assert.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, iccprofile.ErrTruncated)

	_, err = New(WithProfileFile(filepath.Join(t.TempDir(), "missing.icc")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// A later profile option replaces an earlier one.
func TestLastProfileWins(t *testing.T) {
	c, err := New(WithProfileBytes([]byte("junk")), WithProfile(nil))
	require.NoError(t, err)
	assert.False(t, c.Calibrated())

	c, err = New(WithProfile(nil), WithProfileBytes(icctest.SRGB()))
	require.NoError(t, err)
	assert.True(t, c.Calibrated())
	assert.Equal(t, 3, c.Channels())
}

func TestUnusableProfile(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(WithProfileBytes(icctest.DToBOnly()), WithLabel("press"), WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, "press", c.Label())
	assert.True(t, c.Calibrated())
	assert.ErrorIs(t, c.Err(), iccprofile.ErrUnsupported)

	res := c.ToXYZ([]float64{0, 0, 0, 0})
	assert.ErrorIs(t, res.Err, iccprofile.ErrUnsupported)
	dev := c.FromXYZ(iccprofile.D50)
	assert.ErrorIs(t, dev.Err, iccprofile.ErrUnsupported)
	assert.Nil(t, dev.Channels)

	batch := c.FromXYZBatch([]iccprofile.XYZ{iccprofile.D50, {}, {0.5, 0.5, 0.5}})
	require.Len(t, batch, 3)
	for _, r := range batch {
		assert.ErrorIs(t, r.Err, iccprofile.ErrUnsupported)
	}

	out := buf.String()
	assert.Contains(t, out, "level=WARN msg=\"profile cannot be used\"")
	assert.Contains(t, out, "label=press")
	assert.Contains(t, out, "failed=3")
}

// Errors are reported for the failing direction only.
func TestPerItemErrors(t *testing.T) {
	identity := [][]byte{icctest.Identity(), icctest.Identity(), icctest.Identity()}
	prof := &icctest.Profile{
		Version:    0x04300000,
		Class:      "scnr",
		ColorSpace: "RGB ",
		PCS:        "XYZ ",
		Tags: []icctest.Tag{
			{Sig: "A2B0", Data: (&icctest.Luts{Inputs: 3, Outputs: 3, B: identity}).AToB()},
		},
	}
	c, err := New(WithProfileBytes(prof.Encode()))
	require.NoError(t, err)
	require.NoError(t, c.Err())

	res := c.ToXYZBatch([][]float64{{0, 0, 0}, {0.25, 0.25, 0.25}, {0.5, 0.25, 0}})
	require.Len(t, res, 3)
	for _, r := range res {
		require.NoError(t, r.Err)
	}
	const xyzScale = 65535.0 / 32768.0
	assert.InDeltaSlice(t, []float64{0.5 * xyzScale, 0.25 * xyzScale, 0}, res[2].XYZ[:], 1e-4)

	dev := c.FromXYZBatch([]iccprofile.XYZ{iccprofile.D50})
	require.Len(t, dev, 1)
	assert.ErrorIs(t, dev[0].Err, iccprofile.ErrUnsupported)
}

func TestBatch(t *testing.T) {
	c, err := New(WithProfileBytes(icctest.PressV4()))
	require.NoError(t, err)

	var devices [][]float64
	for i := range 200 {
		x := float64(i) / 199
		devices = append(devices, []float64{x, 1 - x, x * x, x / 2})
	}
	res := c.ToXYZBatch(devices)
	require.Len(t, res, len(devices))
	xyzs := make([]iccprofile.XYZ, len(res))
	for i, r := range res {
		assert.Equal(t, c.ToXYZ(devices[i]), r)
		xyzs[i] = r.XYZ
	}

	back := c.FromXYZBatch(xyzs)
	require.Len(t, back, len(xyzs))
	for i, r := range back {
		assert.Equal(t, c.FromXYZ(xyzs[i]), r)
	}

	assert.Empty(t, c.ToXYZBatch(nil))
	assert.Empty(t, c.FromXYZBatch(nil))
}

// A NaN component is converted like 0 and does not affect the other
// colours of a batch.
func TestBatchNaN(t *testing.T) {
	nan := math.NaN()
	for name, data := range map[string][]byte{"v2 press": icctest.PressV2(), "srgb": icctest.SRGB()} {
		t.Run(name, func(t *testing.T) {
			c, err := New(WithProfileBytes(data))
			require.NoError(t, err)

			devices := [][]float64{{0.1, 0.2, 0.3, 0.4}, {nan, 0, 0, 0}, {0.5, 0.5, 0.5, 0.5}}
			res := c.ToXYZBatch(devices)
			require.Len(t, res, 3)
			for i, r := range res {
				require.NoError(t, r.Err, "item %d", i)
			}
			assert.Equal(t, c.ToXYZ(devices[0]), res[0])
			assert.Equal(t, c.ToXYZ([]float64{0, 0, 0, 0}), res[1])
			assert.Equal(t, c.ToXYZ(devices[2]), res[2])

			xyzs := []iccprofile.XYZ{res[0].XYZ, {nan, 0.5, 0.5}, res[2].XYZ}
			back := c.FromXYZBatch(xyzs)
			require.Len(t, back, 3)
			for i, r := range back {
				require.NoError(t, r.Err, "item %d", i)
				require.Len(t, r.Channels, c.Channels())
			}
			assert.Equal(t, c.FromXYZ(xyzs[0]), back[0])
			assert.Equal(t, c.FromXYZ(xyzs[2]), back[2])
		})
	}
}

func TestSafeConversion(t *testing.T) {
	// a Config without transform panics on use
	c := &Config{profile: &iccprofile.Profile{}, logger: slog.New(slog.DiscardHandler)}

	res := c.ToXYZBatch([][]float64{{0, 0, 0}, {1, 1, 1}})
	require.Len(t, res, 2)
	for _, r := range res {
		require.Error(t, r.Err)
		assert.NotContains(t, r.Err.Error(), "batch failed")
	}

	dev := c.FromXYZBatch([]iccprofile.XYZ{iccprofile.D50})
	require.Len(t, dev, 1)
	assert.Error(t, dev[0].Err)
}
