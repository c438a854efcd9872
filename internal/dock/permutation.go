package dock

import "fmt"

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: permutation length must be %d (got %d)", ErrInvariantViolation, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrInvariantViolation, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate job index %d in permutation", ErrInvariantViolation, v)
		}
		seen[v] = true
	}
	return nil
}

// Identity returns [0, 1, ..., n-1].
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
