// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"fmt"

	"github.com/devblok/devsel/caps"
)

// Requirements declares what a device must offer to be chosen.
// Build it with NewRequirements and the Require methods; FindMatch
// only reads it. The Require methods check that each value has the kind
// of its capability. Values stored into the maps directly skip that
// check, and a wrong kind then panics inside FindMatch.
type Requirements struct {
	Features    map[caps.FeatureID]caps.Value
	Properties  map[caps.PropertyID]caps.Value
	Extensions  []string
	QueueGroups []*QueueGroup
}

// QueueGroup declares what a queue family must offer to serve one role.
// Like Requirements, only Require checks the kind of Capabilities values.
type QueueGroup struct {
	Name         string
	Capabilities map[caps.QueueID]caps.Value
	Present      bool
}

// NewRequirements creates empty requirements, satisfied by any device.
func NewRequirements() *Requirements {
	return &Requirements{
		Features:   make(map[caps.FeatureID]caps.Value),
		Properties: make(map[caps.PropertyID]caps.Value),
	}
}

// RequireFeature sets the value a feature must satisfy. Passing a value of
// the wrong kind for the feature panics.
func (r *Requirements) RequireFeature(id caps.FeatureID, v caps.Value) *Requirements {
	mustKind(id.Entry(), v)
	if r.Features == nil {
		r.Features = make(map[caps.FeatureID]caps.Value)
	}
	r.Features[id] = v
	return r
}

// RequireProperty sets the value a property or limit must satisfy.
func (r *Requirements) RequireProperty(id caps.PropertyID, v caps.Value) *Requirements {
	mustKind(id.Entry(), v)
	if r.Properties == nil {
		r.Properties = make(map[caps.PropertyID]caps.Value)
	}
	r.Properties[id] = v
	return r
}

// RequireExtension adds extension names. Duplicates are ignored.
func (r *Requirements) RequireExtension(names ...string) *Requirements {
	for _, name := range names {
		if !r.hasExtension(name) {
			r.Extensions = append(r.Extensions, name)
		}
	}
	return r
}

func (r *Requirements) hasExtension(name string) bool {
	for _, ext := range r.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

// AddQueueGroup appends a queue group and returns its position, which is
// also its position in Match.QueueFamilies.
func (r *Requirements) AddQueueGroup(g *QueueGroup) int {
	r.QueueGroups = append(r.QueueGroups, g)
	return len(r.QueueGroups) - 1
}

// NewQueueGroup creates an empty queue group, satisfied by any family.
func NewQueueGroup(name string) *QueueGroup {
	return &QueueGroup{
		Name:         name,
		Capabilities: make(map[caps.QueueID]caps.Value),
	}
}

// Require sets the value a queue family property must satisfy.
func (g *QueueGroup) Require(id caps.QueueID, v caps.Value) *QueueGroup {
	mustKind(id.Entry(), v)
	if g.Capabilities == nil {
		g.Capabilities = make(map[caps.QueueID]caps.Value)
	}
	g.Capabilities[id] = v
	return g
}

// RequireFlags is shorthand for requiring queue capability bits.
func (g *QueueGroup) RequireFlags(flags caps.QueueFlags) *QueueGroup {
	return g.Require(caps.QueueFlagsID, caps.Uint32(uint32(flags)))
}

// RequirePresent marks that a family must be able to present to the surface.
func (g *QueueGroup) RequirePresent() *QueueGroup {
	g.Present = true
	return g
}

func mustKind(e caps.Entry, v caps.Value) {
	if e.Kind != v.Kind() {
		panic(fmt.Sprintf("device: %s requires a %s value, got %s", e.Name, e.Kind, v.Kind()))
	}
}
