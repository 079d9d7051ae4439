package candy

import (
	"fmt"
	"math/rand"
	"strings"
)

// Circle is a concrete candy circle: child i+1 of the model holds
// Counts[i]. It executes the real dynamics so the proved properties
// can be cross-checked on actual runs.
type Circle struct {
	Counts []int
}

// NewCircle creates a circle from explicit counts. Every count must be
// even and non-negative, and there must be at least one child.
func NewCircle(counts ...int) (*Circle, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("candy: a circle needs at least one child")
	}
	for i, c := range counts {
		if c < 0 || c%2 != 0 {
			return nil, fmt.Errorf("candy: child %d holds %d, want even and non-negative", i+1, c)
		}
	}
	circle := &Circle{Counts: make([]int, len(counts))}
	copy(circle.Counts, counts)
	return circle, nil
}

// RandomCircle creates a circle of n children holding random even
// counts in [0, 2*maxHalf].
func RandomCircle(n, maxHalf int, rng *rand.Rand) (*Circle, error) {
	if n < 1 {
		return nil, fmt.Errorf("candy: a circle needs at least one child, got %d", n)
	}
	if maxHalf < 0 {
		return nil, fmt.Errorf("candy: count bound %d is negative", maxHalf)
	}
	counts := make([]int, n)
	for i := range counts {
		counts[i] = 2 * rng.Intn(maxHalf+1)
	}
	return &Circle{Counts: counts}, nil
}

// right returns the index of child i's clockwise neighbor.
func (c *Circle) right(i int) int {
	if i < len(c.Counts)-1 {
		return i + 1
	}
	return 0
}

// Step applies one simultaneous redistribution: every child replaces
// its count with the half-sum of its own and its right neighbor's,
// rounded up by one when odd so counts stay even.
func (c *Circle) Step() {
	next := make([]int, len(c.Counts))
	for i := range c.Counts {
		half := (c.Counts[i] + c.Counts[c.right(i)]) / 2
		next[i] = half + half%2
	}
	c.Counts = next
}

// Min returns the smallest count, min2 of the model.
func (c *Circle) Min() int {
	minimum := c.Counts[0]
	for _, v := range c.Counts[1:] {
		if v < minimum {
			minimum = v
		}
	}
	return minimum
}

// Max returns the largest count, max2 of the model.
func (c *Circle) Max() int {
	maximum := c.Counts[0]
	for _, v := range c.Counts[1:] {
		if v > maximum {
			maximum = v
		}
	}
	return maximum
}

// Num counts the children holding exactly n candies, num(n,·) of the
// model.
func (c *Circle) Num(n int) int {
	count := 0
	for _, v := range c.Counts {
		if v == n {
			count++
		}
	}
	return count
}

// Variants returns the lexicographic measure (max-min, holders of min).
func (c *Circle) Variants() (int, int) {
	return c.Max() - c.Min(), c.Num(c.Min())
}

// Converged reports whether all children hold the same count.
func (c *Circle) Converged() bool {
	return c.Min() == c.Max()
}

// StepsToConverge runs the dynamics until convergence and returns the
// number of steps taken, or false if maxSteps was not enough.
func (c *Circle) StepsToConverge(maxSteps int) (int, bool) {
	for k := 0; k <= maxSteps; k++ {
		if c.Converged() {
			return k, true
		}
		c.Step()
	}
	return maxSteps, false
}

// String returns a readable snapshot of the circle.
func (c *Circle) String() string {
	parts := make([]string, len(c.Counts))
	for i, v := range c.Counts {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("[%s] min=%d max=%d", strings.Join(parts, " "), c.Min(), c.Max())
}
