// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/devblok/devsel/device"
)

// recordedSurface stands in for the surface a profile was recorded with.
const recordedSurface = "recorded"

var assumeSurface bool

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Pick the device satisfying a preset",
	Long: `Match every device against the selected preset and print the first one that satisfies it, ` +
		`with the queue families found for each queue group. Without a window there is no surface, ` +
		`so groups that must present only qualify when replaying, with --surface, a profile ` +
		`recorded through "koru -record".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		preset, err := configuration.Selection.Resolve()
		if err != nil {
			return err
		}

		cache, release, err := buildCache(configuration)
		if err != nil {
			return err
		}
		defer release()

		var surface device.Surface
		if assumeSurface && configuration.ProfilePath != "" {
			surface = recordedSurface
		}

		match, err := cache.FindMatch(preset.Requirements(configuration.Selection.DeviceExtensions...), surface)
		if err != nil {
			return err
		}
		if !match.Suitable() {
			return fmt.Errorf("no device satisfies preset %s", preset.Name)
		}

		log.WithFields(log.Fields{
			"preset": preset.Name,
			"device": match.Name,
			"index":  match.Index,
		}).Info("device selected")

		fmt.Printf("%d\t%s\n", match.Index, match.Name)
		for i, group := range preset.QueueGroups() {
			fmt.Printf("  %s\t%v\n", group, match.QueueFamilies(i))
		}
		fmt.Printf("  queues to create\t%v\n", match.Distinct())
		return nil
	},
}

func init() {
	matchCmd.Flags().BoolVar(&assumeSurface, "surface", false, "Assume the surface a replayed profile was recorded with")
}
