// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package caps_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/devsel/caps"
)

func TestChainLayouts(t *testing.T) {
	c := qt.New(t)

	c.Assert(caps.NewFeatureChain().Blocks(), qt.DeepEquals,
		[]caps.Block{caps.BlockCoreFeatures, caps.BlockDescriptorIndexing})
	c.Assert(caps.NewPropertyChain().Blocks(), qt.DeepEquals,
		[]caps.Block{caps.BlockDeviceProperties, caps.BlockLimits})
	c.Assert(caps.NewQueueChain().Blocks(), qt.DeepEquals,
		[]caps.Block{caps.BlockQueueProperties})
	c.Assert(caps.NewChain().Blocks(), qt.HasLen, 0)
}

func TestChainAbsentBlockPanics(t *testing.T) {
	c := qt.New(t)

	features := caps.NewFeatureChain()
	c.Assert(features.Has(caps.BlockLimits), qt.IsFalse)
	c.Assert(func() { features.Limits() }, qt.PanicMatches, `caps: chain has no limits block`)
	c.Assert(func() { features.QueueProperties() }, qt.PanicMatches, `caps: chain has no queue properties block`)

	queue := caps.NewQueueChain()
	c.Assert(func() { queue.CoreFeatures() }, qt.PanicMatches, `caps: chain has no core features block`)

	// Reading a feature through a property chain is a programming error too.
	c.Assert(func() {
		caps.FeatureGeometryShader.Entry().Get(caps.NewPropertyChain())
	}, qt.PanicMatches, `caps: chain has no core features block`)
}

func TestFeatureBlock(t *testing.T) {
	c := qt.New(t)

	c.Assert(caps.FeatureGeometryShader.Block(), qt.Equals, caps.BlockCoreFeatures)
	c.Assert(caps.FeatureRuntimeDescriptorArray.Block(), qt.Equals, caps.BlockDescriptorIndexing)
	for _, id := range caps.AllFeatures() {
		// Reading a feature from a chain holding only its block must not panic.
		c.Assert(id.Entry().Get(caps.NewChain(id.Block())), qt.Equals, caps.Bool(false), qt.Commentf("feature %s", id))
	}
}

func TestChainUnknownBlockPanics(t *testing.T) {
	c := qt.New(t)

	c.Assert(func() { caps.NewChain(caps.Block(200)) }, qt.PanicMatches, `caps: unknown block\(200\)`)
}

func TestChainCloneIsIndependent(t *testing.T) {
	c := qt.New(t)

	original := caps.NewChain(caps.BlockCoreFeatures, caps.BlockLimits, caps.BlockQueueProperties)
	original.CoreFeatures().GeometryShader = true
	original.Limits().MaxViewportDimensions = [2]uint32{4096, 4096}
	original.QueueProperties().Flags = caps.QueueGraphics

	clone := original.Clone()
	c.Assert(clone.Blocks(), qt.DeepEquals, original.Blocks())
	c.Assert(clone.CoreFeatures().GeometryShader, qt.IsTrue)

	clone.CoreFeatures().GeometryShader = false
	clone.Limits().MaxViewportDimensions[0] = 1
	clone.QueueProperties().Flags |= caps.QueueCompute

	c.Assert(original.CoreFeatures().GeometryShader, qt.IsTrue)
	c.Assert(original.Limits().MaxViewportDimensions, qt.Equals, [2]uint32{4096, 4096})
	c.Assert(original.QueueProperties().Flags, qt.Equals, caps.QueueGraphics)
}
