// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devblok/devsel/config"
)

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the bundled requirement presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range config.Presets() {
			p, err := config.LoadPreset(name)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\n", p.Name, p.Description)
		}
		return nil
	},
}
