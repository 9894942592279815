package sorting

import (
	"strings"

	"github.com/DjordjeVuckovic/sort-energy-bench/internal/apperr"
)

const (
	MergeSortName = "MergeSort"
	QuickSortName = "QuickSort"
)

// Algorithm is a named sort function over ints, the unit the benchmark runner measures.
type Algorithm struct {
	Name string
	Sort func([]int) []int
}

// Algorithms returns the built-in algorithms in reporting order.
func Algorithms() []Algorithm {
	return []Algorithm{
		{Name: MergeSortName, Sort: Merge[int]},
		{Name: QuickSortName, Sort: Quick[int]},
	}
}

func Lookup(name string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if strings.EqualFold(a.Name, strings.TrimSpace(name)) {
			return a, nil
		}
	}
	return Algorithm{}, apperr.NewValidationf("unknown algorithm %q", name)
}

// Select resolves names in the given order. An empty list selects every algorithm.
func Select(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return Algorithms(), nil
	}

	algs := make([]Algorithm, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		a, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		algs = append(algs, a)
	}
	return algs, nil
}
