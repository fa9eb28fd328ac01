// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/devblok/devsel/config"
)

var (
	envFiles    []string
	profilePath string
	presetName  string
	presetFile  string
	logLevel    string
	debugMode   bool

	configuration config.Configuration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "korucli",
	Short: "Inspect Vulkan devices and pick one for a set of requirements",
	Long: "Lists the physical devices the Vulkan driver exposes, matches them against requirement presets " +
		"and records them into profiles that can be replayed without the hardware.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFiles...)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("profile") {
			cfg.ProfilePath = profilePath
		}
		if flags.Changed("preset") {
			cfg.Selection.Preset = presetName
		}
		if flags.Changed("preset-file") {
			cfg.Selection.PresetFile = presetFile
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("vkdbg") {
			cfg.Instance.DebugMode = debugMode
		}

		level, err := cfg.Level()
		if err != nil {
			return err
		}
		log.SetLevel(level)

		configuration = cfg
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&envFiles, "env", nil, "Dotenv files to load before reading KORU_* variables")
	flags.StringVar(&profilePath, "profile", "", "Replay a recorded device profile instead of asking the driver")
	flags.StringVar(&presetName, "preset", "", "Bundled requirement preset to match against")
	flags.StringVar(&presetFile, "preset-file", "", "Requirement preset file, overrides --preset")
	flags.StringVar(&logLevel, "log-level", "", "Log level")
	flags.BoolVar(&debugMode, "vkdbg", false, "Load Vulkan validation layers")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(presetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
