// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package profile

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pierrec/lz4"
	"golang.org/x/exp/mmap"
)

// Open opens the profile archived in r. It will also check
// if the data is actually a profile, and return ErrFileFormat
// when it is not.
func Open(r io.ReaderAt) (*Archive, error) {
	prefix := make([]byte, MagicLength+HeaderSizeNumberLength)
	if _, err := r.ReadAt(prefix, 0); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrFileFormat
		}
		return nil, err
	}
	if !bytes.Equal(prefix[:MagicLength], magic[:]) {
		return nil, ErrFileFormat
	}

	headerSize := binaryToInt64(prefix[MagicLength:])
	if headerSize <= 0 || headerSize > maxHeaderSize {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if _, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrFileFormat
		}
		return nil, err
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}
	if header.Version < 1 || header.Version > FormatVersion {
		return nil, ErrFileFormat
	}

	index := make(map[string]int, len(header.Index))
	for i, e := range header.Index {
		if e.Offset < 0 || e.CompressedSize < 0 || e.Size < 0 {
			return nil, ErrFileFormat
		}
		index[e.Name] = i
	}

	return &Archive{
		reader:    r,
		header:    header,
		index:     index,
		dataStart: MagicLength + HeaderSizeNumberLength + headerSize,
	}, nil
}

// OpenFile memory maps the profile at path and opens it.
// The archive must be closed to release the mapping.
func OpenFile(path string) (*Archive, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	ar, err := Open(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	ar.closer = r
	return ar, nil
}

// Archive provides concurrent access to the records of a profile.
type Archive struct {
	reader    io.ReaderAt
	closer    io.Closer
	header    Header
	index     map[string]int
	dataStart int64
}

// Header returns the archive header.
func (a *Archive) Header() Header {
	return a.header
}

// Names returns the record names in the order they were added.
func (a *Archive) Names() []string {
	names := make([]string, len(a.header.Index))
	for i, e := range a.header.Index {
		names[i] = e.Name
	}
	return names
}

// Record decompresses and decodes the named record.
func (a *Archive) Record(name string) (Record, error) {
	i, ok := a.index[name]
	if !ok {
		return Record{}, ErrNotFound
	}
	return a.decode(a.header.Index[i])
}

// Records decodes every record in the order they were added.
func (a *Archive) Records() ([]Record, error) {
	records := make([]Record, 0, len(a.header.Index))
	for _, e := range a.header.Index {
		rec, err := a.decode(e)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (a *Archive) decode(e IndexEntry) (Record, error) {
	section := io.NewSectionReader(a.reader, a.dataStart+e.Offset, e.CompressedSize)
	// One byte past Size is enough to tell an oversized frame apart.
	raw, err := ioutil.ReadAll(io.LimitReader(lz4.NewReader(section), e.Size+1))
	if err != nil {
		return Record{}, ErrFileFormat
	}
	if int64(len(raw)) != e.Size {
		return Record{}, ErrFileFormat
	}

	var rec Record
	if err := gobDecode(&rec, raw); err != nil {
		return Record{}, ErrFileFormat
	}
	return rec, nil
}

// Close releases the memory mapping of an archive opened with OpenFile.
// It does nothing for archives opened with Open.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
