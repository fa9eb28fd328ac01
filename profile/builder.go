// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package profile

import (
	"bytes"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in
// the header, it will be overwritten anyway. A zero Version
// is replaced with FormatVersion.
func NewBuilder(header Header) *Builder {
	if header.Version == 0 {
		header.Version = FormatVersion
	}
	header.Index = nil
	return &Builder{header: header}
}

type frame struct {
	name       string
	size       int64
	compressed []byte
}

// Builder assembles a profile archive. Archives are versioned and cannot
// be appended to; records are compressed as they are added and bundled
// together by WriteTo.
type Builder struct {
	header Header

	mutex  sync.Mutex
	frames []frame
}

// Add compresses rec and appends it under name. Will block until lz4
// finishes compression. Is safe to use concurrently in different
// goroutines; records keep the order in which Add returned.
func (b *Builder) Add(name string, rec Record) error {
	raw, err := gobEncode(rec)
	if err != nil {
		return err
	}

	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)
	if _, err := writer.Write(raw); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.frames = append(b.frames, frame{
		name:       name,
		size:       int64(len(raw)),
		compressed: compressed.Bytes(),
	})
	return nil
}

// Len returns the number of records added so far.
func (b *Builder) Len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.frames)
}

// WriteTo bundles every added record into an archive written to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	header.Index = make([]IndexEntry, 0, len(b.frames))
	var offset int64
	for _, f := range b.frames {
		header.Index = append(header.Index, IndexEntry{
			Name:           f.name,
			Offset:         offset,
			Size:           f.size,
			CompressedSize: int64(len(f.compressed)),
		})
		offset += int64(len(f.compressed))
	}

	rawHeader, err := gobEncode(header)
	if err != nil {
		return 0, err
	}

	var written int64
	write := func(p []byte) error {
		n, err := w.Write(p)
		written += int64(n)
		return err
	}

	if err := write(magic[:]); err != nil {
		return written, err
	}
	if err := write(int64ToBinary(int64(len(rawHeader)))); err != nil {
		return written, err
	}
	if err := write(rawHeader); err != nil {
		return written, err
	}
	for _, f := range b.frames {
		if err := write(f.compressed); err != nil {
			return written, err
		}
	}
	return written, nil
}
