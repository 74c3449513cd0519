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
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"seehuhn.de/go/iccprofile"
)

var listCmd = &cobra.Command{
	Use:   "list [file...]",
	Short: "Summarise ICC profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolP("verbose", "v", false, "Show header fields and tags")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return forEachFile(args, func(fname string) error {
		return show(fname, verbose)
	})
}

func show(fname string, verbose bool) error {
	p, err := iccprofile.DecodeFile(fname)
	if err != nil {
		return err
	}
	h := &p.Header
	if !verbose {
		desc, _ := p.Description()
		fmt.Printf("%-5s %-22s %-5s %8d bytes  %s  %s\n",
			h.Version, h.Class, h.ColorSpace, h.ProfileSize, fname, desc)
		return nil
	}

	fmt.Printf("Profile: %s\n", fname)
	if desc, err := p.Description(); err == nil {
		fmt.Printf("  Description: %s\n", desc)
	}
	if h.CMMType != 0 {
		fmt.Printf("  CMMType: %s\n", h.CMMType.Quote())
	}
	fmt.Printf("  Version: %s\n", h.Version)
	fmt.Printf("  Class: %s\n", h.Class)
	fmt.Printf("  ColorSpace: %s\n", h.ColorSpace)
	fmt.Printf("  PCS: %s\n", h.PCS)
	fmt.Printf("  Created: %s\n", h.Created)
	if h.Platform != 0 {
		fmt.Printf("  Platform: %s\n", h.Platform.Quote())
	}
	if h.Flags != 0 {
		fmt.Printf("  Flags: %s\n", h.Flags)
	}
	if h.Manufacturer != 0 {
		fmt.Printf("  Manufacturer: %s\n", h.Manufacturer.Quote())
	}
	if h.Model != 0 {
		fmt.Printf("  Model: %s\n", h.Model.Quote())
	}
	if h.Attributes != 0 {
		fmt.Printf("  Attributes: %s\n", h.Attributes)
	}
	fmt.Printf("  Intent: %s\n", h.Intent)
	if h.Creator != 0 {
		fmt.Printf("  Creator: %s\n", h.Creator.Quote())
	}
	if p.CheckSum != iccprofile.CheckSumMissing {
		fmt.Printf("  CheckSum: %s\n", p.CheckSum)
	}

	fmt.Println()

	types := make(map[iccprofile.Signature]int)
	for _, t := range p.Tags {
		types[t.Type()]++
		switch t.Signature {
		case iccprofile.Copyright:
			fmt.Printf("  %s: (%d bytes)\n", iccprofile.TagName(t.Signature), t.Size)
			cprt, err := p.Copyright()
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: copyright: %v\n", fname, err)
				continue
			}
			for _, lu := range cprt {
				fmt.Printf("    [%s_%s] %s\n", lu.Language, lu.Country, lu.Value)
			}
		default:
			fmt.Printf("  %s: %s (%d bytes)\n", iccprofile.TagName(t.Signature), t.Type().Quote(), t.Size)
		}
	}

	fmt.Println()

	keys := maps.Keys(types)
	slices.Sort(keys)
	for _, typ := range keys {
		fmt.Printf("  %s x %d\n", typ.Quote(), types[typ])
	}

	fmt.Println()

	return nil
}
