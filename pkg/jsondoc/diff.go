package jsondoc

import "reflect"

// Change records both sides of a differing key.
// A key missing on one side reports that side as nil.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Diff compares a and b by top-level key and returns a Change for every key
// in the union of both key sets whose values differ (deep inequality).
//
// A key present on only one side is a difference; the absent side is nil,
// which is indistinguishable from a present null value, mirroring the
// mapping-get semantics of the contract.
func Diff(a, b map[string]any) map[string]Change {
	diff := make(map[string]Change)

	// Absent keys read as nil on both sides, so a present null never
	// differs from a missing key.
	for key, oldVal := range a {
		newVal := b[key]
		if !reflect.DeepEqual(oldVal, newVal) {
			diff[key] = Change{Old: oldVal, New: newVal}
		}
	}

	for key, newVal := range b {
		if _, ok := a[key]; ok {
			continue
		}

		if !reflect.DeepEqual(any(nil), newVal) {
			diff[key] = Change{Old: nil, New: newVal}
		}
	}

	return diff
}
