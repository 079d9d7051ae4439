package candy

import (
	"math/rand"
	"testing"
)

func TestTwoChildrenConverge(t *testing.T) {
	c, err := NewCircle(4, 0)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}

	v1, v2 := c.Variants()
	if v1 != 4 || v2 != 1 {
		t.Errorf("Expected variants (4,1) at k=0, got (%d,%d)", v1, v2)
	}
	if c.Converged() {
		t.Error("Expected no convergence at k=0")
	}

	// Both half-sums are (4+0)/2 = 2, already even.
	c.Step()
	if c.Counts[0] != 2 || c.Counts[1] != 2 {
		t.Errorf("Expected [2 2] at k=1, got %v", c.Counts)
	}
	if !c.Converged() {
		t.Error("Expected convergence at k=1")
	}
}

func TestHistogramAcrossStep(t *testing.T) {
	c, err := NewCircle(4, 0)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}

	if c.Num(0) != 1 {
		t.Errorf("Expected num(0,0)=1, got %d", c.Num(0))
	}
	if c.Num(4) != 1 {
		t.Errorf("Expected num(4,0)=1, got %d", c.Num(4))
	}

	c.Step()
	if c.Num(2) != 2 {
		t.Errorf("Expected num(2,1)=2, got %d", c.Num(2))
	}
	if c.Num(0) != 0 || c.Num(4) != 0 {
		t.Errorf("Expected num(0,1)=num(4,1)=0, got %d and %d", c.Num(0), c.Num(4))
	}
}

func TestRoundingKeepsCountsEven(t *testing.T) {
	// (2+4)/2 = 3 rounds up to 4; (4+2)/2 = 3 rounds up to 4;
	// (2+2)/2 = 2 stays.
	c, err := NewCircle(2, 4, 2)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}

	c.Step()
	want := []int{4, 4, 2}
	for i, v := range want {
		if c.Counts[i] != v {
			t.Errorf("Expected counts %v after step, got %v", want, c.Counts)
			break
		}
	}
}

func TestNewCircleValidation(t *testing.T) {
	if _, err := NewCircle(); err == nil {
		t.Error("Expected error for an empty circle")
	}
	if _, err := NewCircle(2, 3); err == nil {
		t.Error("Expected error for an odd count")
	}
	if _, err := NewCircle(-2, 4); err == nil {
		t.Error("Expected error for a negative count")
	}
	if _, err := NewCircle(0, 2, 100); err != nil {
		t.Errorf("Expected valid circle, got %v", err)
	}
}

func TestSingleChildIsFixed(t *testing.T) {
	c, err := NewCircle(6)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	if !c.Converged() {
		t.Error("Expected a single child to start converged")
	}
	c.Step()
	if c.Counts[0] != 6 {
		t.Errorf("Expected a single child to keep its 6 candies, got %d", c.Counts[0])
	}
}

func TestRandomCircleValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := RandomCircle(0, 10, rng); err == nil {
		t.Error("Expected error for zero children")
	}
	if _, err := RandomCircle(-3, 10, rng); err == nil {
		t.Error("Expected error for negative children")
	}
	if _, err := RandomCircle(5, -1, rng); err == nil {
		t.Error("Expected error for a negative count bound")
	}

	c, err := RandomCircle(5, 10, rng)
	if err != nil {
		t.Fatalf("RandomCircle: %v", err)
	}
	if len(c.Counts) != 5 {
		t.Errorf("Expected 5 children, got %d", len(c.Counts))
	}
	for i, v := range c.Counts {
		if v < 0 || v > 20 || v%2 != 0 {
			t.Errorf("Expected child %d to hold an even count in [0,20], got %d", i+1, v)
		}
	}
	// A one-child circle is valid and its accessors work.
	single, err := RandomCircle(1, 0, rng)
	if err != nil {
		t.Fatalf("RandomCircle: %v", err)
	}
	if v1, v2 := single.Variants(); v1 != 0 || v2 != 1 {
		t.Errorf("Expected variants (0,1) for one child, got (%d,%d)", v1, v2)
	}
}

func TestInvariantsUnderRandomRuns(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		c, err := RandomCircle(2+rng.Intn(9), 10, rng)
		if err != nil {
			t.Fatalf("seed %d: RandomCircle: %v", seed, err)
		}

		for k := 0; k < 200 && !c.Converged(); k++ {
			prevMin, prevMax := c.Min(), c.Max()
			prev1, prev2 := c.Variants()

			c.Step()

			for i, v := range c.Counts {
				if v < 0 || v%2 != 0 {
					t.Fatalf("seed %d step %d: child %d holds %d, want even and non-negative",
						seed, k, i+1, v)
				}
			}
			if c.Max() > prevMax {
				t.Fatalf("seed %d step %d: max grew from %d to %d", seed, k, prevMax, c.Max())
			}
			if c.Min() < prevMin {
				t.Fatalf("seed %d step %d: min shrank from %d to %d", seed, k, prevMin, c.Min())
			}

			next1, next2 := c.Variants()
			if !(next1 < prev1 || (next1 == prev1 && next2 < prev2)) {
				t.Fatalf("seed %d step %d: variants (%d,%d) did not decrease below (%d,%d)",
					seed, k, next1, next2, prev1, prev2)
			}
		}
	}
}

func TestStepsToConverge(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		c, err := RandomCircle(2+rng.Intn(9), 10, rng)
		if err != nil {
			t.Fatalf("seed %d: RandomCircle: %v", seed, err)
		}

		steps, ok := c.StepsToConverge(1000)
		if !ok {
			t.Fatalf("seed %d: no convergence in 1000 steps: %s", seed, c)
		}
		if !c.Converged() {
			t.Fatalf("seed %d: reported convergence after %d steps but min=%d max=%d",
				seed, steps, c.Min(), c.Max())
		}

		// Convergence is a fixed point.
		final := c.Min()
		c.Step()
		for i, v := range c.Counts {
			if v != final {
				t.Fatalf("seed %d: child %d left the fixed point, holds %d not %d",
					seed, i+1, v, final)
			}
		}
	}
}
