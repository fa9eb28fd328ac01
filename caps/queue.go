// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package caps

import "strings"

// QueueID identifies a queue family property.
type QueueID int

// Known queue family properties
const (
	QueueFlagsID QueueID = iota
	QueueCountID
	QueueTimestampValidBitsID
	QueueMinImageTransferGranularityID
	queueCount
)

// QueueFlagSymbols names the queue capability bits for textual requirements.
var QueueFlagSymbols = map[string]uint32{
	"graphics":      uint32(QueueGraphics),
	"compute":       uint32(QueueCompute),
	"transfer":      uint32(QueueTransfer),
	"sparseBinding": uint32(QueueSparseBinding),
	"protected":     uint32(QueueProtected),
}

var queueTable = [queueCount]Entry{
	QueueFlagsID: symbolField("queueFlags", Superset, QueueFlagSymbols, func(c *Chain) *uint32 {
		return (*uint32)(&c.QueueProperties().Flags)
	}),
	QueueCountID: uint32Field("queueCount", AtMost, func(c *Chain) *uint32 {
		return &c.QueueProperties().Count
	}),
	QueueTimestampValidBitsID: uint32Field("timestampValidBits", AtMost, func(c *Chain) *uint32 {
		return &c.QueueProperties().TimestampValidBits
	}),
	QueueMinImageTransferGranularityID: uint32x3Field("minImageTransferGranularity", AtMost, func(c *Chain) *[3]uint32 {
		return &c.QueueProperties().MinImageTransferGranularity
	}),
}

var queuesByName = indexNames(queueTable[:])

// Entry returns the table row for id.
func (id QueueID) Entry() Entry {
	return queueTable[id]
}

func (id QueueID) String() string {
	if id >= 0 && id < queueCount {
		return queueTable[id].Name
	}
	return "unknown queue property"
}

// LookupQueue resolves a queue family property by its name.
func LookupQueue(name string) (QueueID, bool) {
	idx, ok := queuesByName[name]
	return QueueID(idx), ok
}

// AllQueues lists every queue family property in table order.
func AllQueues() []QueueID {
	ids := make([]QueueID, queueCount)
	for i := range ids {
		ids[i] = QueueID(i)
	}
	return ids
}

// Has reports whether every bit of other is set in f.
func (f QueueFlags) Has(other QueueFlags) bool {
	return f&other == other
}

func (f QueueFlags) String() string {
	var names []string
	for _, bit := range []struct {
		flag QueueFlags
		name string
	}{
		{QueueGraphics, "graphics"},
		{QueueCompute, "compute"},
		{QueueTransfer, "transfer"},
		{QueueSparseBinding, "sparseBinding"},
		{QueueProtected, "protected"},
	} {
		if f.Has(bit.flag) {
			names = append(names, bit.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
