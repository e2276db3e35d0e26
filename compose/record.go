package compose

import (
	"maps"
	"slices"
)

// Record is the open-ended key/value accumulator passed between Sequence
// stages.
type Record map[string]any

// Merge returns a new Record holding the keys of r overlaid with the keys
// of other. Keys present in both take the value from other. Neither input
// is modified.
func (r Record) Merge(other Record) Record {
	merged := make(Record, len(r)+len(other))
	maps.Copy(merged, r)
	maps.Copy(merged, other)
	return merged
}

// Keys returns the record keys in ascending order.
func (r Record) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}
