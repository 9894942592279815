package sorting

import "cmp"

// Quick returns a sorted copy of s using quick sort with a middle pivot and a
// three-way partition into fresh slices. Slices of length 0 or 1 are returned as-is.
func Quick[T cmp.Ordered](s []T) []T {
	if len(s) <= 1 {
		return s
	}

	pivot := s[len(s)/2]
	var less, equal, greater []T
	for _, v := range s {
		switch {
		case v < pivot:
			less = append(less, v)
		case v > pivot:
			greater = append(greater, v)
		default:
			equal = append(equal, v)
		}
	}

	result := make([]T, 0, len(s))
	result = append(result, Quick(less)...)
	result = append(result, equal...)
	result = append(result, Quick(greater)...)
	return result
}
