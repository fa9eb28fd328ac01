// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package profile stores captured device snapshots in an lz4 backed archive
// and replays them as a device backend. Every record is compressed on its
// own and the index sits in front, so a memory mapped archive can decode any
// record without touching the others. It can be read from concurrently.
package profile

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not a device profile")
	ErrNotFound   = errors.New("no such record in profile")
	ErrExists     = errors.New("destination file exists, will not overwrite")
)

// Sizes relevant to the header of file
const (
	MagicLength            = 4
	HeaderSizeNumberLength = 8
)

// FormatVersion is the archive version written by Builder.
const FormatVersion = 1

// maxHeaderSize bounds the header allocation when opening untrusted input.
const maxHeaderSize = 64 << 20

var magic = [MagicLength]byte{'K', 'D', 'P', '\x00'}

// IndexEntry locates one record in the archive. Offset is relative
// to the end of the header.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the file header of a profile archive.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

func int64ToBinary(num int64) []byte {
	bts := make([]byte, HeaderSizeNumberLength)
	binary.LittleEndian.PutUint64(bts, uint64(num))
	return bts
}

func binaryToInt64(bts []byte) int64 {
	return int64(binary.LittleEndian.Uint64(bts))
}

func gobEncode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	enc := gob.NewEncoder(&encoded)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(obj interface{}, bts []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(bts))
	return dec.Decode(obj)
}
