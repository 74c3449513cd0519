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

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"seehuhn.de/go/iccprofile"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Check whether profiles can be used for colour conversion",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	intent, err := intentFlag(cmd)
	if err != nil {
		return err
	}
	return forEachFile(args, func(fname string) error {
		return check(fname, intent)
	})
}

func check(fname string, intent iccprofile.RenderingIntent) error {
	p, err := iccprofile.DecodeFile(fname)
	if err != nil {
		return err
	}

	var warnings []string
	for _, s := range p.DuplicateTags() {
		warnings = append(warnings, fmt.Sprintf("duplicate tag %s", iccprofile.TagName(s)))
	}
	for _, t := range p.UnknownTags() {
		warnings = append(warnings, fmt.Sprintf("tag %s has unknown type %s",
			iccprofile.TagName(t.Signature), t.Type().Quote()))
	}
	if p.CheckSum == iccprofile.CheckSumInvalid {
		warnings = append(warnings, "profile ID does not match")
	}
	for _, w := range warnings {
		fmt.Printf("%s: warning: %s\n", fname, w)
	}

	tr, err := iccprofile.NewTransform(p, intent)
	if err != nil {
		return err
	}

	for _, dir := range []iccprofile.Direction{iccprofile.DeviceToPCS, iccprofile.PCSToDevice} {
		fmt.Printf("%s: %s: %s\n", fname, dir, tr.Describe(dir))
	}

	// A profile may be usable in one direction only.
	var errs []error
	if _, err := tr.ToXYZ(make([]float64, tr.Channels())); err != nil {
		errs = append(errs, err)
	}
	if _, err := tr.FromXYZ(iccprofile.D50); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 2 {
		return errors.Join(errs...)
	}
	fmt.Printf("%s: ok\n", fname)
	return nil
}
