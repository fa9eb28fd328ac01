// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device captures the physical devices a backend exposes and picks
// the one, with its queue families, that satisfies a set of requirements.
package device

import (
	"sort"

	"github.com/devblok/devsel/caps"
)

// Handle is an opaque reference to a physical device, owned by the backend.
type Handle interface{}

// Surface is an opaque reference to a presentation surface. A nil Surface
// means there is nothing to present to.
type Surface interface{}

// Enumerator is the backend that devices are enumerated and queried through.
type Enumerator interface {
	// EnumerateDevices lists the physical devices in a stable order.
	EnumerateDevices() ([]Handle, error)

	// QueryFeatures returns a feature chain (caps.NewFeatureChain layout).
	// The core features block is mandatory. A backend that cannot read an
	// extension block leaves it out, and features held there count as
	// unsupported.
	QueryFeatures(Handle) (*caps.Chain, error)

	// QueryProperties returns a property chain (caps.NewPropertyChain layout).
	QueryProperties(Handle) (*caps.Chain, error)

	// QueryQueueFamilies returns every queue family of the device.
	QueryQueueFamilies(Handle) ([]QueueFamily, error)

	// QueryExtensions returns the names of supported device extensions.
	QueryExtensions(Handle) ([]string, error)

	// QueryPresentationSupport reports whether a queue family can present
	// to the surface. Unsupported is a false result, not an error.
	QueryPresentationSupport(device Handle, family uint32, surface Surface) (bool, error)
}

// QueueFamily is one queue family of a device.
type QueueFamily struct {
	Index uint32
	Chain *caps.Chain
}

// Snapshot is the cached query result of one physical device.
// It is never modified after the Cache that owns it is built.
type Snapshot struct {
	index      int
	handle     Handle
	features   *caps.Chain
	properties *caps.Chain
	families   []QueueFamily
	extensions map[string]struct{}
}

// Index is the position of the device in enumeration order.
func (s *Snapshot) Index() int {
	return s.index
}

// Handle returns the backend handle of the device.
func (s *Snapshot) Handle() Handle {
	return s.handle
}

// Name returns the device name reported by the driver.
func (s *Snapshot) Name() string {
	return s.properties.DeviceProperties().DeviceName
}

// Features returns a copy of the device feature chain.
func (s *Snapshot) Features() *caps.Chain {
	return s.features.Clone()
}

// Properties returns a copy of the device property chain.
func (s *Snapshot) Properties() *caps.Chain {
	return s.properties.Clone()
}

// QueueFamilies returns copies of the queue families in index order.
func (s *Snapshot) QueueFamilies() []QueueFamily {
	families := make([]QueueFamily, len(s.families))
	for i, f := range s.families {
		families[i] = QueueFamily{Index: f.Index, Chain: f.Chain.Clone()}
	}
	return families
}

// HasExtension reports whether the device supports the named extension.
// Names are compared byte for byte.
func (s *Snapshot) HasExtension(name string) bool {
	_, ok := s.extensions[name]
	return ok
}

// Extensions returns the supported extension names, sorted.
func (s *Snapshot) Extensions() []string {
	names := make([]string, 0, len(s.extensions))
	for name := range s.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
