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
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/iccprofile"
)

var tagsCmd = &cobra.Command{
	Use:   "tags file [tag...]",
	Short: "Decode the tags of a profile",
	Long: `Decode the tags of a profile.

Without tag arguments, all tags are shown in file order.  Tags are given
by their four character signature, for example "A2B0" or "wtpt".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	p, err := iccprofile.DecodeFile(args[0])
	if err != nil {
		return err
	}

	want := make(map[iccprofile.Signature]bool)
	for _, arg := range args[1:] {
		s, err := iccprofile.ParseSignature(arg)
		if err != nil {
			return err
		}
		if !p.HasTag(s) {
			return fmt.Errorf("%s: no tag %s", args[0], s.Quote())
		}
		want[s] = true
	}

	for _, t := range p.Tags {
		if len(want) > 0 && !want[t.Signature] {
			continue
		}
		fmt.Printf("%s %s (%d bytes at %d)\n",
			iccprofile.TagName(t.Signature), t.Type().Quote(), t.Size, t.Offset)
		val, err := iccprofile.DecodeTag(t.Data)
		if err != nil {
			fmt.Printf("    error: %v\n", err)
			continue
		}
		for _, line := range describeTag(val) {
			fmt.Printf("    %s\n", line)
		}
	}
	return nil
}

func describeTag(val any) []string {
	switch val := val.(type) {
	case iccprofile.Curve:
		return []string{val.String()}
	case iccprofile.Lut:
		return []string{fmt.Sprintf("%d→%d: %s", val.InputChannels(), val.OutputChannels(), val)}
	case []iccprofile.XYZ:
		var res []string
		for _, xyz := range val {
			res = append(res, fmt.Sprintf("X=%.4f Y=%.4f Z=%.4f", xyz[0], xyz[1], xyz[2]))
		}
		return res
	case []float64:
		parts := make([]string, len(val))
		for i, x := range val {
			parts[i] = fmt.Sprintf("%.4f", x)
		}
		return []string{strings.Join(parts, " ")}
	case iccprofile.MultiLocalizedUnicode:
		var res []string
		for _, lu := range val {
			res = append(res, fmt.Sprintf("[%s_%s] %s", lu.Language, lu.Country, lu.Value))
		}
		return res
	case string:
		return []string{fmt.Sprintf("%q", val)}
	case *iccprofile.UnknownTag:
		return []string{"not decoded"}
	}
	return []string{fmt.Sprintf("%v", val)}
}
