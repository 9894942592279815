package sorting

import "cmp"

// Merge returns a sorted copy of s using top-down merge sort.
// Slices of length 0 or 1 are returned as-is.
func Merge[T cmp.Ordered](s []T) []T {
	if len(s) <= 1 {
		return s
	}

	mid := len(s) / 2
	left := Merge(s[:mid])
	right := Merge(s[mid:])

	return merge(left, right)
}

func merge[T cmp.Ordered](left, right []T) []T {
	result := make([]T, 0, len(left)+len(right))
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			result = append(result, left[i])
			i++
		} else {
			result = append(result, right[j])
			j++
		}
	}

	result = append(result, left[i:]...)
	result = append(result, right[j:]...)
	return result
}
