// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devblok/devsel/device"
)

type queueInfo struct {
	Index uint32 `json:"index"`
	Flags string `json:"flags"`
	Count uint32 `json:"count"`
}

type deviceInfo struct {
	Index         int         `json:"index"`
	Name          string      `json:"name"`
	Type          string      `json:"type"`
	APIVersion    string      `json:"apiVersion"`
	DriverVersion uint32      `json:"driverVersion"`
	VendorID      uint32      `json:"vendorID"`
	DeviceID      uint32      `json:"deviceID"`
	Queues        []queueInfo `json:"queues"`
	Extensions    []string    `json:"extensions"`
}

func versionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22, (v>>12)&0x3ff, v&0xfff)
}

func describe(s *device.Snapshot) deviceInfo {
	props := s.Properties().DeviceProperties()
	info := deviceInfo{
		Index:         s.Index(),
		Name:          props.DeviceName,
		Type:          props.DeviceType.String(),
		APIVersion:    versionString(props.APIVersion),
		DriverVersion: props.DriverVersion,
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		Extensions:    s.Extensions(),
	}
	for _, f := range s.QueueFamilies() {
		q := f.Chain.QueueProperties()
		info.Queues = append(info.Queues, queueInfo{
			Index: f.Index,
			Flags: q.Flags.String(),
			Count: q.Count,
		})
	}
	return info
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all physical devices",
	Long:  `Print every physical device with its identity, queue families and extensions as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, release, err := buildCache(configuration)
		if err != nil {
			return err
		}
		defer release()

		infos := make([]deviceInfo, 0, cache.Len())
		for _, s := range cache.Snapshots() {
			infos = append(infos, describe(s))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	},
}
