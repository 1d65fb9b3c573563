// Package prefixsum provides a mutable sequence of non-negative integers
// with cached prefix-sum queries and by-accumulated-value lookups.
//
// The cache is invalidated from the lowest mutated index, so a burst of
// mutations followed by a burst of reads costs one linear cache rebuild;
// [Computer.IndexOf] is a binary search over the rebuilt cache.
package prefixsum
