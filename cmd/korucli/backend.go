// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/devblok/devsel/config"
	"github.com/devblok/devsel/device"
	"github.com/devblok/devsel/profile"
	"github.com/devblok/devsel/vkr"
)

// buildCache captures every device of the configured backend. The returned
// function releases the backend and must be called once the cache is no
// longer queried.
func buildCache(cfg config.Configuration) (*device.Cache, func(), error) {
	if cfg.ProfilePath != "" {
		ar, err := profile.OpenFile(cfg.ProfilePath)
		if err != nil {
			return nil, nil, err
		}
		defer ar.Close()

		records, err := ar.Records()
		if err != nil {
			return nil, nil, err
		}
		log.WithFields(log.Fields{
			"profile": cfg.ProfilePath,
			"author":  ar.Header().Author,
			"devices": len(records),
		}).Info("replaying device profile")

		cache, err := device.Build(profile.NewReplay(records))
		if err != nil {
			return nil, nil, err
		}
		return cache, func() {}, nil
	}

	instance, err := vkr.NewInstance(vkr.NewApplicationInfo(cfg.Instance.ApplicationName), nil, cfg.Instance)
	if err != nil {
		return nil, nil, err
	}
	cache, err := device.Build(instance)
	if err != nil {
		instance.Destroy()
		return nil, nil, err
	}
	return cache, instance.Destroy, nil
}
