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

// Icctool inspects ICC profiles and converts colours with them.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/iccprofile"
)

var logger = slog.New(slog.DiscardHandler)

var rootCmd = &cobra.Command{
	Use:           "icctool",
	Short:         "Inspect ICC colour profiles and convert colours",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Log diagnostic messages")
	rootCmd.PersistentFlags().String("intent", "perceptual", "Rendering intent (perceptual, relative, saturation, absolute)")
	rootCmd.PersistentFlags().String("label", "", "Label attached to log messages")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func intentFlag(cmd *cobra.Command) (iccprofile.RenderingIntent, error) {
	s, _ := cmd.Flags().GetString("intent")
	return iccprofile.ParseIntent(s)
}

// forEachFile calls fn for every named file, reporting failures on stderr.
// The returned error summarises the failures.
func forEachFile(names []string, fn func(string) error) error {
	failed := 0
	for _, name := range names {
		if err := fn(name); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(names))
	}
	return nil
}
