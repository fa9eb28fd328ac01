// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package profile

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/devsel/caps"
	"github.com/devblok/devsel/device"
)

// Record is everything captured from one physical device.
type Record struct {
	Features caps.CoreFeatures

	// DescriptorIndexing is nil when the backend could not report it.
	DescriptorIndexing *caps.DescriptorIndexingFeatures
	Properties         caps.DeviceProperties
	Limits             caps.Limits
	Families           []caps.QueueProperties

	// Present holds, per queue family, whether it could present to
	// the surface the record was captured with.
	Present    []bool
	Extensions []string
}

// Name returns the recorded device name.
func (r Record) Name() string {
	return r.Properties.DeviceName
}

// RecordName is the archive name used for the record of the device at
// enumeration position index.
func RecordName(index int, rec Record) string {
	return fmt.Sprintf("%02d-%s", index, rec.Name())
}

// Capture records every device in cache, asking the backend live for
// presentation support to surface. A nil surface records no support.
func Capture(cache *device.Cache, surface device.Surface) ([]Record, error) {
	snapshots := cache.Snapshots()
	records := make([]Record, 0, len(snapshots))
	for _, s := range snapshots {
		features := s.Features()
		properties := s.Properties()

		rec := Record{
			Features:   *features.CoreFeatures(),
			Properties: *properties.DeviceProperties(),
			Limits:     *properties.Limits(),
		}
		if features.Has(caps.BlockDescriptorIndexing) {
			rec.DescriptorIndexing = features.DescriptorIndexingFeatures()
		}
		if extensions := s.Extensions(); len(extensions) > 0 {
			rec.Extensions = extensions
		}

		for _, family := range s.QueueFamilies() {
			present, err := cache.SupportsPresent(s, family.Index, surface)
			if err != nil {
				return nil, err
			}
			rec.Families = append(rec.Families, *family.Chain.QueueProperties())
			rec.Present = append(rec.Present, present)
		}

		log.WithFields(log.Fields{
			"index":    s.Index(),
			"name":     rec.Name(),
			"families": len(rec.Families),
		}).Debug("device recorded")
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords adds records to b in order, named by RecordName.
func WriteRecords(b *Builder, records []Record) error {
	for i, rec := range records {
		if err := b.Add(RecordName(i, rec), rec); err != nil {
			return err
		}
	}
	return nil
}

// Save writes records into a new profile file at path. An existing file
// is only replaced when overwrite is set, otherwise ErrExists is returned.
func Save(path string, header Header, records []Record, overwrite bool) (int64, error) {
	builder := NewBuilder(header)
	if err := WriteRecords(builder, records); err != nil {
		return 0, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	dst, err := os.OpenFile(path, flags, 0644)
	if os.IsExist(err) {
		return 0, ErrExists
	} else if err != nil {
		return 0, err
	}

	written, err := builder.WriteTo(dst)
	if err != nil {
		dst.Close()
		return written, err
	}
	return written, dst.Close()
}
