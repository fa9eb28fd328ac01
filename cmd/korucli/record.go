// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"os/user"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/devblok/devsel/profile"
)

var (
	author    string
	overwrite bool
)

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record [file]",
	Short: "Record all devices into a profile",
	Long: `Capture every physical device into a profile archive that can later be replayed with --profile. ` +
		`Without a window there is no surface to ask, so presentation support is recorded as unsupported. ` +
		`Use "koru -record" to capture it through a real window surface.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, release, err := buildCache(configuration)
		if err != nil {
			return err
		}
		defer release()

		records, err := profile.Capture(cache, nil)
		if err != nil {
			return err
		}

		written, err := profile.Save(args[0], profile.Header{
			Author:      author,
			DateCreated: time.Now().Unix(),
		}, records, overwrite)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"file":    args[0],
			"devices": len(records),
			"bytes":   written,
		}).Info("profile recorded")
		return nil
	},
}

func currentUserName() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

func init() {
	recordCmd.Flags().StringVar(&author, "author", currentUserName(), "Author stored in the profile header")
	recordCmd.Flags().BoolVar(&overwrite, "force", false, "Overwrite an existing file")
}
