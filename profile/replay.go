// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package profile

import (
	"fmt"

	"github.com/devblok/devsel/caps"
	"github.com/devblok/devsel/device"
)

// Replay is a device.Enumerator serving recorded devices. Handles are
// record positions. Any non-nil surface stands for the one the records
// were captured with.
type Replay struct {
	records []Record
}

// NewReplay serves records in the given order.
func NewReplay(records []Record) *Replay {
	copied := make([]Record, len(records))
	copy(copied, records)
	for i := range copied {
		if di := copied[i].DescriptorIndexing; di != nil {
			v := *di
			copied[i].DescriptorIndexing = &v
		}
	}
	return &Replay{records: copied}
}

func (r *Replay) record(h device.Handle) (*Record, error) {
	i, ok := h.(int)
	if !ok || i < 0 || i >= len(r.records) {
		return nil, fmt.Errorf("replay: unknown device handle %v", h)
	}
	return &r.records[i], nil
}

// EnumerateDevices implements device.Enumerator.
func (r *Replay) EnumerateDevices() ([]device.Handle, error) {
	handles := make([]device.Handle, len(r.records))
	for i := range r.records {
		handles[i] = i
	}
	return handles, nil
}

// QueryFeatures implements device.Enumerator.
func (r *Replay) QueryFeatures(h device.Handle) (*caps.Chain, error) {
	rec, err := r.record(h)
	if err != nil {
		return nil, err
	}
	if rec.DescriptorIndexing == nil {
		chain := caps.NewChain(caps.BlockCoreFeatures)
		*chain.CoreFeatures() = rec.Features
		return chain, nil
	}
	chain := caps.NewFeatureChain()
	*chain.CoreFeatures() = rec.Features
	*chain.DescriptorIndexingFeatures() = *rec.DescriptorIndexing
	return chain, nil
}

// QueryProperties implements device.Enumerator.
func (r *Replay) QueryProperties(h device.Handle) (*caps.Chain, error) {
	rec, err := r.record(h)
	if err != nil {
		return nil, err
	}
	chain := caps.NewPropertyChain()
	*chain.DeviceProperties() = rec.Properties
	*chain.Limits() = rec.Limits
	return chain, nil
}

// QueryQueueFamilies implements device.Enumerator.
func (r *Replay) QueryQueueFamilies(h device.Handle) ([]device.QueueFamily, error) {
	rec, err := r.record(h)
	if err != nil {
		return nil, err
	}
	families := make([]device.QueueFamily, len(rec.Families))
	for i, props := range rec.Families {
		chain := caps.NewQueueChain()
		*chain.QueueProperties() = props
		families[i] = device.QueueFamily{Index: uint32(i), Chain: chain}
	}
	return families, nil
}

// QueryExtensions implements device.Enumerator.
func (r *Replay) QueryExtensions(h device.Handle) ([]string, error) {
	rec, err := r.record(h)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), rec.Extensions...), nil
}

// QueryPresentationSupport implements device.Enumerator.
func (r *Replay) QueryPresentationSupport(h device.Handle, family uint32, surface device.Surface) (bool, error) {
	rec, err := r.record(h)
	if err != nil {
		return false, err
	}
	if int(family) >= len(rec.Families) {
		return false, fmt.Errorf("replay: device %v has no queue family %d", h, family)
	}
	if surface == nil || int(family) >= len(rec.Present) {
		return false, nil
	}
	return rec.Present[family], nil
}
