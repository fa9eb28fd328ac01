// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"sort"

	"github.com/devblok/devsel/caps"
)

// Match is the outcome of FindMatch. The zero Match is unsuitable:
// no device satisfied every requirement.
type Match struct {
	suitable bool

	// Device is the chosen device.
	Device Handle

	// Index is the enumeration position of the chosen device.
	Index int

	// Name is the chosen device's name.
	Name string

	// Features is a fresh feature chain holding exactly the required
	// feature values, ready to be enabled on the logical device.
	Features *caps.Chain

	// Families holds, per queue group, every qualifying family index in
	// ascending order. Groups are resolved independently; the same
	// family may serve several groups.
	Families [][]uint32
}

// Suitable reports whether a device was chosen.
func (m Match) Suitable() bool {
	return m.suitable
}

// QueueFamilies returns the qualifying families of the queue group at position group.
func (m Match) QueueFamilies(group int) []uint32 {
	if !m.suitable || group < 0 || group >= len(m.Families) {
		return nil
	}
	return m.Families[group]
}

// Distinct returns the union of all qualifying families, ascending.
func (m Match) Distinct() []uint32 {
	seen := make(map[uint32]struct{})
	var families []uint32
	for _, group := range m.Families {
		for _, f := range group {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				families = append(families, f)
			}
		}
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })
	return families
}

// FindMatch returns the first device, in enumeration order, that satisfies
// every feature, property, extension and queue group requirement. Finding
// no such device is not an error; the returned Match is then unsuitable.
// Only a failing presentation support query returns an error.
func (c *Cache) FindMatch(req *Requirements, surface Surface) (Match, error) {
	if req == nil {
		req = NewRequirements()
	}

	for _, s := range c.devices {
		if !featuresSatisfied(req, s) || !propertiesSatisfied(req, s) || !extensionsSatisfied(req, s) {
			continue
		}

		families, ok, err := c.resolveQueueGroups(req, s, surface)
		if err != nil {
			return Match{}, err
		}
		if !ok {
			continue
		}

		enabled := caps.NewFeatureChain()
		for id, v := range req.Features {
			id.Entry().Set(enabled, v)
		}

		return Match{
			suitable: true,
			Device:   s.handle,
			Index:    s.index,
			Name:     s.Name(),
			Features: enabled,
			Families: families,
		}, nil
	}
	return Match{}, nil
}

func featuresSatisfied(req *Requirements, s *Snapshot) bool {
	for id, want := range req.Features {
		if !s.features.Has(id.Block()) {
			// The backend could not read the block; support is unknown.
			if want.Bool() {
				return false
			}
			continue
		}
		if !id.Entry().Satisfied(want, s.features) {
			return false
		}
	}
	return true
}

func propertiesSatisfied(req *Requirements, s *Snapshot) bool {
	for id, want := range req.Properties {
		if !id.Entry().Satisfied(want, s.properties) {
			return false
		}
	}
	return true
}

func extensionsSatisfied(req *Requirements, s *Snapshot) bool {
	for _, name := range req.Extensions {
		if !s.HasExtension(name) {
			return false
		}
	}
	return true
}

// resolveQueueGroups collects the qualifying families of every group.
// It reports false as soon as one group has none.
func (c *Cache) resolveQueueGroups(req *Requirements, s *Snapshot, surface Surface) ([][]uint32, bool, error) {
	resolved := make([][]uint32, len(req.QueueGroups))
	for gi, group := range req.QueueGroups {
		for _, family := range s.families {
			ok, err := c.familyQualifies(group, s, family, surface)
			if err != nil {
				return nil, false, err
			}
			if ok {
				resolved[gi] = append(resolved[gi], family.Index)
			}
		}
		if len(resolved[gi]) == 0 {
			return nil, false, nil
		}
	}
	return resolved, true, nil
}

func (c *Cache) familyQualifies(group *QueueGroup, s *Snapshot, family QueueFamily, surface Surface) (bool, error) {
	for id, want := range group.Capabilities {
		if !id.Entry().Satisfied(want, family.Chain) {
			return false, nil
		}
	}
	if !group.Present {
		return true, nil
	}
	return c.SupportsPresent(s, family.Index, surface)
}
