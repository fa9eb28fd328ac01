// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device_test

import (
	"errors"
	"sync"

	"github.com/devblok/devsel/caps"
	"github.com/devblok/devsel/device"
)

// fakeDevice describes one device served by fakeBackend.
type fakeDevice struct {
	name       string
	kind       caps.DeviceType
	features   func(*caps.Chain)
	limits     func(*caps.Limits)
	families   []caps.QueueFlags
	present    []bool
	extensions []string
	// coreOnly leaves the descriptor indexing block out of the feature chain.
	coreOnly bool
}

// fakeBackend is an in-memory device.Enumerator. Handles are device positions.
type fakeBackend struct {
	devices []fakeDevice

	enumerateErr  error
	failOp        string
	failDevice    int
	presentErr    error
	presentMu     sync.Mutex
	presentCalls  int
	lastSurface   device.Surface
	queryCalls    map[string]int
	queryCallsMux sync.Mutex
	// issued holds every chain handed out, so tests can change them later.
	issued []*caps.Chain
}

var errBackend = errors.New("backend failure")

func (b *fakeBackend) called(op string, h device.Handle) error {
	b.queryCallsMux.Lock()
	defer b.queryCallsMux.Unlock()
	if b.queryCalls == nil {
		b.queryCalls = make(map[string]int)
	}
	b.queryCalls[op]++
	if b.failOp == op && b.failDevice == h.(int) {
		return errBackend
	}
	return nil
}

func (b *fakeBackend) issue(chain *caps.Chain) *caps.Chain {
	b.queryCallsMux.Lock()
	defer b.queryCallsMux.Unlock()
	b.issued = append(b.issued, chain)
	return chain
}

func (b *fakeBackend) EnumerateDevices() ([]device.Handle, error) {
	if b.enumerateErr != nil {
		return nil, b.enumerateErr
	}
	handles := make([]device.Handle, len(b.devices))
	for i := range b.devices {
		handles[i] = i
	}
	return handles, nil
}

func (b *fakeBackend) QueryFeatures(h device.Handle) (*caps.Chain, error) {
	if err := b.called("QueryFeatures", h); err != nil {
		return nil, err
	}
	d := b.devices[h.(int)]
	chain := caps.NewFeatureChain()
	if d.coreOnly {
		chain = caps.NewChain(caps.BlockCoreFeatures)
	}
	if d.features != nil {
		d.features(chain)
	}
	return b.issue(chain), nil
}

func (b *fakeBackend) QueryProperties(h device.Handle) (*caps.Chain, error) {
	if err := b.called("QueryProperties", h); err != nil {
		return nil, err
	}
	d := b.devices[h.(int)]
	chain := caps.NewPropertyChain()
	chain.DeviceProperties().DeviceName = d.name
	chain.DeviceProperties().DeviceType = d.kind
	if d.limits != nil {
		d.limits(chain.Limits())
	}
	return b.issue(chain), nil
}

func (b *fakeBackend) QueryQueueFamilies(h device.Handle) ([]device.QueueFamily, error) {
	if err := b.called("QueryQueueFamilies", h); err != nil {
		return nil, err
	}
	var families []device.QueueFamily
	for idx, flags := range b.devices[h.(int)].families {
		chain := caps.NewQueueChain()
		chain.QueueProperties().Flags = flags
		chain.QueueProperties().Count = 1
		chain.QueueProperties().MinImageTransferGranularity = [3]uint32{1, 1, 1}
		families = append(families, device.QueueFamily{Index: uint32(idx), Chain: b.issue(chain)})
	}
	return families, nil
}

func (b *fakeBackend) QueryExtensions(h device.Handle) ([]string, error) {
	if err := b.called("QueryExtensions", h); err != nil {
		return nil, err
	}
	return b.devices[h.(int)].extensions, nil
}

func (b *fakeBackend) QueryPresentationSupport(h device.Handle, family uint32, surface device.Surface) (bool, error) {
	b.presentMu.Lock()
	b.presentCalls++
	b.lastSurface = surface
	b.presentMu.Unlock()
	if b.presentErr != nil {
		return false, b.presentErr
	}
	present := b.devices[h.(int)].present
	return int(family) < len(present) && present[family], nil
}

func (b *fakeBackend) presentCount() int {
	b.presentMu.Lock()
	defer b.presentMu.Unlock()
	return b.presentCalls
}

func geometryShader(enabled bool) func(*caps.Chain) {
	return func(c *caps.Chain) {
		c.CoreFeatures().GeometryShader = enabled
	}
}
