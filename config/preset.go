// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"sort"
	"strings"

	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/packd"
	"github.com/gobuffalo/packr"
	"gopkg.in/yaml.v3"

	"github.com/devblok/devsel/caps"
	"github.com/devblok/devsel/device"
)

// preset errors
var (
	ErrUnknownPreset     = errors.New("unknown preset")
	ErrUnknownCapability = errors.New("unknown capability")
	ErrBadValue          = errors.New("bad capability value")
)

const presetExt = ".yaml"

var presets = packr.NewBox("./presets")

// Preset is a named, resolved set of device requirements.
type Preset struct {
	Name        string
	Description string

	features   map[caps.FeatureID]caps.Value
	properties map[caps.PropertyID]caps.Value
	extensions []string
	queues     []queuePreset
}

type queuePreset struct {
	name         string
	present      bool
	capabilities map[caps.QueueID]caps.Value
}

type presetFile struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Features    map[string]yaml.Node `yaml:"features"`
	Properties  map[string]yaml.Node `yaml:"properties"`
	Extensions  []string             `yaml:"extensions"`
	Queues      []queueFile          `yaml:"queues"`
}

type queueFile struct {
	Name    string               `yaml:"name"`
	Present bool                 `yaml:"present"`
	Require map[string]yaml.Node `yaml:"require"`
}

// Presets lists the names of the bundled presets, sorted.
func Presets() []string {
	var names []string
	presets.Walk(func(path string, _ packd.File) error {
		if strings.HasSuffix(path, presetExt) {
			names = append(names, strings.TrimSuffix(path, presetExt))
		}
		return nil
	})
	sort.Strings(names)
	return names
}

// LoadPreset parses the bundled preset called name.
func LoadPreset(name string) (*Preset, error) {
	data, err := presets.Find(name + presetExt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return ParsePreset(data)
}

// LoadPresetFile parses the preset at path.
func LoadPresetFile(path string) (*Preset, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePreset(data)
}

// ParsePreset parses a YAML preset. Capabilities are named as in the caps
// tables and every value is checked against its capability kind here, so
// a parsed Preset always produces valid requirements.
func ParsePreset(data []byte) (*Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.New("yaml.Unmarshal(): " + err.Error())
	}
	if file.Name == "" {
		return nil, errors.New("preset has no name")
	}

	p := &Preset{
		Name:        file.Name,
		Description: file.Description,
		features:    make(map[caps.FeatureID]caps.Value, len(file.Features)),
		properties:  make(map[caps.PropertyID]caps.Value, len(file.Properties)),
		extensions:  file.Extensions,
	}

	for name, node := range file.Features {
		id, ok := caps.LookupFeature(name)
		if !ok {
			return nil, fmt.Errorf("preset %s: %w: feature %q", p.Name, ErrUnknownCapability, name)
		}
		v, err := decodeValue(id.Entry(), &node)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		p.features[id] = v
	}

	for name, node := range file.Properties {
		id, ok := caps.LookupProperty(name)
		if !ok {
			return nil, fmt.Errorf("preset %s: %w: property %q", p.Name, ErrUnknownCapability, name)
		}
		v, err := decodeValue(id.Entry(), &node)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		p.properties[id] = v
	}

	for i, q := range file.Queues {
		queue := queuePreset{
			name:         q.Name,
			present:      q.Present,
			capabilities: make(map[caps.QueueID]caps.Value, len(q.Require)),
		}
		if queue.name == "" {
			queue.name = fmt.Sprintf("queue%d", i)
		}
		for name, node := range q.Require {
			id, ok := caps.LookupQueue(name)
			if !ok {
				return nil, fmt.Errorf("preset %s: %w: queue property %q", p.Name, ErrUnknownCapability, name)
			}
			v, err := decodeValue(id.Entry(), &node)
			if err != nil {
				return nil, fmt.Errorf("preset %s: queue %s: %w", p.Name, queue.name, err)
			}
			queue.capabilities[id] = v
		}
		p.queues = append(p.queues, queue)
	}

	return p, nil
}

// Requirements builds fresh requirements from the preset, plus any
// extra device extensions.
func (p *Preset) Requirements(extensions ...string) *device.Requirements {
	req := device.NewRequirements()
	for id, v := range p.features {
		req.RequireFeature(id, v)
	}
	for id, v := range p.properties {
		req.RequireProperty(id, v)
	}
	req.RequireExtension(p.extensions...)
	req.RequireExtension(extensions...)
	for _, q := range p.queues {
		group := device.NewQueueGroup(q.name)
		for id, v := range q.capabilities {
			group.Require(id, v)
		}
		if q.present {
			group.RequirePresent()
		}
		req.AddQueueGroup(group)
	}
	return req
}

// QueueGroups returns the queue group names in requirement order.
func (p *Preset) QueueGroups() []string {
	names := make([]string, len(p.queues))
	for i, q := range p.queues {
		names[i] = q.name
	}
	return names
}

func decodeValue(e caps.Entry, node *yaml.Node) (caps.Value, error) {
	bad := func(err error) (caps.Value, error) {
		return caps.Value{}, fmt.Errorf("%w: %s wants %s at line %d: %v", ErrBadValue, e.Name, e.Kind, node.Line, err)
	}

	switch e.Kind {
	case caps.KindBool:
		var v bool
		if err := node.Decode(&v); err != nil {
			return bad(err)
		}
		return caps.Bool(v), nil
	case caps.KindUint32:
		if e.Symbols != nil {
			v, err := decodeSymbols(e, node)
			if err != nil {
				return bad(err)
			}
			return caps.Uint32(v), nil
		}
		var v uint32
		if err := node.Decode(&v); err != nil {
			return bad(err)
		}
		return caps.Uint32(v), nil
	case caps.KindUint64:
		var v uint64
		if err := node.Decode(&v); err != nil {
			return bad(err)
		}
		return caps.Uint64(v), nil
	case caps.KindFloat32:
		var v float32
		if err := node.Decode(&v); err != nil {
			return bad(err)
		}
		return caps.Float32(v), nil
	case caps.KindText:
		if node.Kind != yaml.ScalarNode {
			return bad(errors.New("not a scalar"))
		}
		return caps.Text(node.Value), nil
	case caps.KindUint32x2:
		var v []uint32
		if err := node.Decode(&v); err != nil {
			return bad(err)
		}
		if len(v) != 2 {
			return bad(fmt.Errorf("%d elements", len(v)))
		}
		return caps.Uint32x2(v[0], v[1]), nil
	case caps.KindUint32x3:
		var v []uint32
		if err := node.Decode(&v); err != nil {
			return bad(err)
		}
		if len(v) != 3 {
			return bad(fmt.Errorf("%d elements", len(v)))
		}
		return caps.Uint32x3(v[0], v[1], v[2]), nil
	case caps.KindFloat32x2:
		var v []float32
		if err := node.Decode(&v); err != nil {
			return bad(err)
		}
		if len(v) != 2 {
			return bad(fmt.Errorf("%d elements", len(v)))
		}
		return caps.Float32x2(glm.Vec2{v[0], v[1]}), nil
	}
	return bad(errors.New("unsupported kind"))
}

// decodeSymbols accepts a number, one symbol, or a list of symbols that
// are or-ed together.
func decodeSymbols(e caps.Entry, node *yaml.Node) (uint32, error) {
	var names []string
	switch node.Kind {
	case yaml.ScalarNode:
		var v uint32
		if err := node.Decode(&v); err == nil {
			return v, nil
		}
		names = []string{node.Value}
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return 0, err
		}
	default:
		return 0, errors.New("not a symbol or list of symbols")
	}

	var v uint32
	for _, name := range names {
		bits, ok := e.Symbols[name]
		if !ok {
			return 0, fmt.Errorf("unknown symbol %q", name)
		}
		v |= bits
	}
	return v, nil
}

// Resolve loads the selected preset. PresetFile wins over Preset.
func (s SelectionConfiguration) Resolve() (*Preset, error) {
	if s.PresetFile != "" {
		return LoadPresetFile(s.PresetFile)
	}
	return LoadPreset(s.Preset)
}
