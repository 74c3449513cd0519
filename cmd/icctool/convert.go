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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/iccprofile"
	"seehuhn.de/go/iccprofile/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert color...",
	Short: "Convert colours between device values and XYZ",
	Long: `Convert colours between device values and D50 XYZ.

Each argument is one colour, given as comma separated components, for
example "0.1,0.5,0.2,0".  Device values are in the range 0 to 1.  Without
a profile, device values are treated as uncalibrated CMYK.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("profile", "", "ICC profile path")
	convertCmd.Flags().Bool("to-xyz", false, "Convert device values to XYZ (default)")
	convertCmd.Flags().Bool("from-xyz", false, "Convert XYZ values to device values")
	convertCmd.MarkFlagsMutuallyExclusive("to-xyz", "from-xyz")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	profilePath, _ := cmd.Flags().GetString("profile")
	fromXYZ, _ := cmd.Flags().GetBool("from-xyz")
	label, _ := cmd.Flags().GetString("label")
	intent, err := intentFlag(cmd)
	if err != nil {
		return err
	}

	opts := []convert.Option{
		convert.WithIntent(intent),
		convert.WithLabel(label),
		convert.WithLogger(logger),
	}
	if profilePath != "" {
		opts = append(opts, convert.WithProfileFile(profilePath))
	}
	c, err := convert.New(opts...)
	if err != nil {
		return err
	}

	colors := make([][]float64, len(args))
	for i, arg := range args {
		colors[i], err = parseColor(arg)
		if err != nil {
			return err
		}
	}

	failed := 0
	if fromXYZ {
		xyzs := make([]iccprofile.XYZ, len(colors))
		for i, v := range colors {
			if len(v) != 3 {
				return fmt.Errorf("%q: XYZ values need 3 components", args[i])
			}
			xyzs[i] = iccprofile.XYZ{v[0], v[1], v[2]}
		}
		for i, res := range c.FromXYZBatch(xyzs) {
			if res.Err != nil {
				fmt.Printf("%s: %v\n", args[i], res.Err)
				failed++
				continue
			}
			fmt.Printf("%s → %s\n", args[i], formatColor(res.Channels))
		}
	} else {
		for i, res := range c.ToXYZBatch(colors) {
			if res.Err != nil {
				fmt.Printf("%s: %v\n", args[i], res.Err)
				failed++
				continue
			}
			fmt.Printf("%s → %s\n", args[i], formatColor(res.XYZ[:]))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d colours failed", failed, len(colors))
	}
	return nil
}

func parseColor(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	res := make([]float64, len(parts))
	for i, part := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		res[i] = x
	}
	return res, nil
}

func formatColor(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 4, 64)
	}
	return strings.Join(parts, ",")
}
