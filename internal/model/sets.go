package model

import (
	"cmp"
	"slices"
)

// InsertSorted inserts v into the sorted slice s if absent.
// Returns the new slice and whether v was inserted.
func InsertSorted[T cmp.Ordered](s []T, v T) ([]T, bool) {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s, false
	}
	return slices.Insert(s, i, v), true
}

// RemoveSorted removes v from the sorted slice s if present
func RemoveSorted[T cmp.Ordered](s []T, v T) ([]T, bool) {
	i, found := slices.BinarySearch(s, v)
	if !found {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}

// ContainsSorted reports whether the sorted slice s contains v
func ContainsSorted[T cmp.Ordered](s []T, v T) bool {
	_, found := slices.BinarySearch(s, v)
	return found
}
