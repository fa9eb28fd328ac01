// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/devsel/caps"
)

// Cache holds a snapshot of every device the backend exposes.
// It is immutable once built, so FindMatch may be called concurrently.
type Cache struct {
	backend Enumerator
	devices []*Snapshot
}

// Build enumerates every device and captures all of its capabilities.
// Any failure aborts the whole build; no partial cache is returned.
func Build(e Enumerator) (*Cache, error) {
	handles, err := e.EnumerateDevices()
	if err != nil {
		return nil, &EnumerationError{Op: "EnumerateDevices", Err: err}
	}

	cache := &Cache{
		backend: e,
		devices: make([]*Snapshot, 0, len(handles)),
	}
	for idx, handle := range handles {
		snapshot, err := capture(e, idx, handle)
		if err != nil {
			return nil, err
		}
		cache.devices = append(cache.devices, snapshot)

		log.WithFields(log.Fields{
			"index":      idx,
			"name":       snapshot.Name(),
			"families":   len(snapshot.families),
			"extensions": len(snapshot.extensions),
		}).Debug("device captured")
	}

	log.WithField("devices", len(cache.devices)).Info("device cache built")
	return cache, nil
}

func capture(e Enumerator, idx int, handle Handle) (*Snapshot, error) {
	fail := func(op string, err error) error {
		return &EnumerationError{Op: op, Err: &QueryError{Op: op, Device: idx, Err: err}}
	}

	features, err := e.QueryFeatures(handle)
	if err != nil {
		return nil, fail("QueryFeatures", err)
	}
	if err := expectBlocks(features, caps.BlockCoreFeatures); err != nil {
		return nil, fail("QueryFeatures", err)
	}

	properties, err := e.QueryProperties(handle)
	if err != nil {
		return nil, fail("QueryProperties", err)
	}
	if err := expectBlocks(properties, caps.BlockDeviceProperties, caps.BlockLimits); err != nil {
		return nil, fail("QueryProperties", err)
	}

	families, err := e.QueryQueueFamilies(handle)
	if err != nil {
		return nil, fail("QueryQueueFamilies", err)
	}
	for i, f := range families {
		if f.Index != uint32(i) {
			return nil, fail("QueryQueueFamilies", fmt.Errorf("family at position %d has index %d", i, f.Index))
		}
		if err := expectBlocks(f.Chain, caps.BlockQueueProperties); err != nil {
			return nil, fail("QueryQueueFamilies", err)
		}
	}

	names, err := e.QueryExtensions(handle)
	if err != nil {
		return nil, fail("QueryExtensions", err)
	}
	captured := make([]QueueFamily, len(families))
	for i, f := range families {
		captured[i] = QueueFamily{Index: f.Index, Chain: f.Chain.Clone()}
	}

	extensions := make(map[string]struct{}, len(names))
	for _, name := range names {
		extensions[name] = struct{}{}
	}

	return &Snapshot{
		index:      idx,
		handle:     handle,
		features:   features.Clone(),
		properties: properties.Clone(),
		families:   captured,
		extensions: extensions,
	}, nil
}

func expectBlocks(c *caps.Chain, blocks ...caps.Block) error {
	if c == nil {
		return errors.New("no capability chain returned")
	}
	for _, b := range blocks {
		if !c.Has(b) {
			return fmt.Errorf("capability chain is missing the %s block", b)
		}
	}
	return nil
}

// Len returns the number of captured devices.
func (c *Cache) Len() int {
	return len(c.devices)
}

// Snapshots returns the captured devices in enumeration order.
func (c *Cache) Snapshots() []*Snapshot {
	devices := make([]*Snapshot, len(c.devices))
	copy(devices, c.devices)
	return devices
}

// SupportsPresent asks the backend whether a queue family of the device
// can present to surface. The answer is never cached.
func (c *Cache) SupportsPresent(s *Snapshot, family uint32, surface Surface) (bool, error) {
	if surface == nil {
		return false, nil
	}
	supported, err := c.backend.QueryPresentationSupport(s.handle, family, surface)
	if err != nil {
		return false, &PresentationQueryError{Device: s.index, Family: family, Err: err}
	}
	return supported, nil
}
