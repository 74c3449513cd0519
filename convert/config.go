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

// Package convert is a colour conversion façade on top of the ICC profile
// engine.
//
// A [Config] bundles an optional profile with a rendering intent and a
// label for diagnostics.  Conversions never fail as a whole: problems with
// the profile are reported in the Err field of each result, so that a batch
// of colours can be processed without aborting on the first failure.
// Without a profile, device colours are treated as uncalibrated CMYK.
package convert

import (
	"fmt"
	"io"
	"log/slog"

	"seehuhn.de/go/iccprofile"
)

// Config is an immutable converter configuration.  It is safe for
// concurrent use.
type Config struct {
	profile *iccprofile.Profile
	intent  iccprofile.RenderingIntent
	label   string
	logger  *slog.Logger

	transform *iccprofile.Transform
	err       error // reason why the profile cannot be used
}

// Option configures a [Config].
type Option func(*options)

type options struct {
	profile *iccprofile.Profile
	load    func() (*iccprofile.Profile, error)
	intent  iccprofile.RenderingIntent
	label   string
	logger  *slog.Logger
}

// WithProfile uses an already decoded profile.
func WithProfile(p *iccprofile.Profile) Option {
	return func(o *options) {
		o.profile, o.load = p, nil
	}
}

// WithProfileFile reads the profile from the named file.
func WithProfileFile(path string) Option {
	return func(o *options) {
		o.profile = nil
		o.load = func() (*iccprofile.Profile, error) {
			return iccprofile.DecodeFile(path)
		}
	}
}

// WithProfileBytes decodes the profile from memory.
func WithProfileBytes(data []byte) Option {
	return func(o *options) {
		o.profile = nil
		o.load = func() (*iccprofile.Profile, error) {
			return iccprofile.Decode(data)
		}
	}
}

// WithProfileReader reads the profile from r.
func WithProfileReader(r io.Reader) Option {
	return func(o *options) {
		o.profile = nil
		o.load = func() (*iccprofile.Profile, error) {
			return iccprofile.DecodeReader(r)
		}
	}
}

// WithIntent sets the rendering intent.  The default is perceptual.
func WithIntent(intent iccprofile.RenderingIntent) Option {
	return func(o *options) {
		o.intent = intent
	}
}

// WithLabel sets a label which is attached to all log messages.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithLogger sets the logger.  By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a converter configuration.
//
// An error is returned only if the profile cannot be read or decoded.
// Profiles which decode but cannot be used for conversion are accepted;
// the problem is then reported with every conversion result.
func New(opts ...Option) (*Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if o.label != "" {
		logger = logger.With("label", o.label)
	}

	c := &Config{
		profile: o.profile,
		intent:  o.intent,
		label:   o.label,
		logger:  logger,
	}

	if o.load != nil {
		p, err := o.load()
		if err != nil {
			return nil, fmt.Errorf("convert: loading profile: %w", err)
		}
		c.profile = p
	}

	if c.profile == nil {
		logger.Debug("no profile, using uncalibrated CMYK")
		return c, nil
	}

	h := &c.profile.Header
	desc, _ := c.profile.Description()
	logger.Debug("profile loaded",
		"description", desc,
		"version", h.Version.String(),
		"class", h.Class.String(),
		"colorSpace", h.ColorSpace.String(),
		"pcs", h.PCS.String(),
		"intent", c.intent.String())

	c.transform, c.err = iccprofile.NewTransform(c.profile, c.intent)
	if c.err != nil {
		logger.Warn("profile cannot be used", "error", c.err)
	}
	return c, nil
}

// Profile returns the profile, or nil for uncalibrated conversion.
func (c *Config) Profile() *iccprofile.Profile {
	return c.profile
}

// Intent returns the rendering intent.
func (c *Config) Intent() iccprofile.RenderingIntent {
	return c.intent
}

// Label returns the diagnostic label.
func (c *Config) Label() string {
	return c.label
}

// Calibrated reports whether conversions use an ICC profile.
func (c *Config) Calibrated() bool {
	return c.profile != nil
}

// Err returns the reason why the profile cannot be used for conversion,
// or nil.
func (c *Config) Err() error {
	return c.err
}

// Channels returns the number of device channels.
func (c *Config) Channels() int {
	if c.profile == nil {
		return 4
	}
	return c.profile.Channels()
}
