package clean

import (
	"sort"

	"github.com/gyeh/healthdata/internal/normalize"
)

// median returns the median of the parseable non-missing values.
func median(values []string) (float64, bool) {
	var nums []float64
	for _, v := range values {
		if v == "" {
			continue
		}
		if n, ok := normalize.ParseNumber(v); ok {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return 0, false
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid], true
	}
	return (nums[mid-1] + nums[mid]) / 2, true
}

// mode returns the most frequent non-missing value accepted by keep (nil
// accepts all). Ties go to the lexicographically smallest value.
func mode(values []string, keep func(string) bool) (string, bool) {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" || (keep != nil && !keep(v)) {
			continue
		}
		counts[v]++
	}
	best, bestN := "", 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best, bestN > 0
}
