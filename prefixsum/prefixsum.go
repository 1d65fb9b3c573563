package prefixsum

import "slices"

// Computer maintains a sequence of non-negative integers alongside a lazily
// rebuilt prefix-sum cache.
//
// Values are clamped to be non-negative. Indices passed to mutating methods
// are clamped into the valid range, so callers may treat the Computer as
// total over int; read queries on an empty Computer return zero values.
//
// Create instances with [New].
type Computer struct {
	values     []int
	prefixSums []int
	// Index of the last valid prefixSums entry, -1 when none are valid.
	validIndex int
}

// New creates a new [Computer] holding the given values.
// Negative values are clamped to 0. The slice is copied.
func New(values []int) *Computer {
	c := &Computer{
		values:     make([]int, len(values)),
		prefixSums: make([]int, len(values)),
		validIndex: -1,
	}
	for i, v := range values {
		c.values[i] = max(0, v)
	}

	return c
}

// Len returns the number of values.
func (c *Computer) Len() int {
	return len(c.values)
}

// Value returns the value at index i, or 0 if i is out of range.
func (c *Computer) Value(i int) int {
	if i < 0 || i >= len(c.values) {
		return 0
	}

	return c.values[i]
}

// InsertValues splices the given values into the sequence at index i.
// Returns true if the sequence changed.
func (c *Computer) InsertValues(i int, values []int) bool {
	if len(values) == 0 {
		return false
	}

	i = clamp(i, 0, len(c.values))

	inserted := make([]int, len(values))
	for j, v := range values {
		inserted[j] = max(0, v)
	}

	c.values = slices.Insert(c.values, i, inserted...)
	c.prefixSums = append(c.prefixSums, make([]int, len(values))...)
	c.invalidateFrom(i)

	return true
}

// ChangeValue sets the value at index i.
// Returns true if the value changed.
func (c *Computer) ChangeValue(i, value int) bool {
	if len(c.values) == 0 {
		return false
	}

	i = clamp(i, 0, len(c.values)-1)
	value = max(0, value)

	if c.values[i] == value {
		return false
	}

	c.values[i] = value
	c.invalidateFrom(i)

	return true
}

// RemoveValues deletes count values starting at index i.
// Returns true if the sequence changed.
func (c *Computer) RemoveValues(i, count int) bool {
	if len(c.values) == 0 || count <= 0 {
		return false
	}

	i = clamp(i, 0, len(c.values)-1)
	count = min(count, len(c.values)-i)

	c.values = slices.Delete(c.values, i, i+count)
	c.prefixSums = c.prefixSums[:len(c.values)]
	c.invalidateFrom(i)

	return true
}

// TotalValue returns the sum of all values.
func (c *Computer) TotalValue() int {
	if len(c.values) == 0 {
		return 0
	}

	return c.AccumulatedValue(len(c.values) - 1)
}

// AccumulatedValue returns the sum of values[0..i], inclusive.
// i is clamped into the valid range; an empty Computer yields 0.
func (c *Computer) AccumulatedValue(i int) int {
	if len(c.values) == 0 {
		return 0
	}

	i = clamp(i, 0, len(c.values)-1)

	if i <= c.validIndex {
		return c.prefixSums[i]
	}

	start := c.validIndex + 1

	sum := 0
	if start > 0 {
		sum = c.prefixSums[start-1]
	}

	for j := start; j <= i; j++ {
		sum += c.values[j]
		c.prefixSums[j] = sum
	}

	c.validIndex = i

	return c.prefixSums[i]
}

// IndexOf locates the entry covering the given accumulated value: the
// smallest index whose accumulated value exceeds accumulated, together with
// the remainder within that entry. Entries with value 0 are never returned
// as the target, since their accumulated value cannot exceed any preceding
// accumulated value.
//
// The result is meaningful when 0 <= accumulated < [Computer.TotalValue];
// out-of-range inputs are clamped to the nearest covered value.
func (c *Computer) IndexOf(accumulated int) (index, remainder int) {
	if len(c.values) == 0 {
		return 0, 0
	}

	total := c.TotalValue()
	if total == 0 {
		return 0, 0
	}

	accumulated = clamp(accumulated, 0, total-1)

	// The cache is fully valid after TotalValue above.
	low, high := 0, len(c.values)-1
	for low < high {
		mid := low + (high-low)/2
		if c.prefixSums[mid] > accumulated {
			high = mid
		} else {
			low = mid + 1
		}
	}

	remainder = accumulated
	if low > 0 {
		remainder -= c.prefixSums[low-1]
	}

	return low, remainder
}

func (c *Computer) invalidateFrom(i int) {
	c.validIndex = min(c.validIndex, i-1)
}

func clamp(v, low, high int) int {
	return min(max(v, low), high)
}
