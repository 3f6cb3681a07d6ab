package assign

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdinal(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"015037", 15037},
		{"12", 12},
		{"train-s12", 12},
		{"dev-001", 1},
	}
	for _, tt := range tests {
		got, err := Ordinal(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.id)
	}

	_, err := Ordinal("abc")
	assert.ErrorIs(t, err, ErrNoOrdinal)
}

func TestContextCost(t *testing.T) {
	tests := []struct {
		name  string
		slots []string
		pos   int
		cand  string
		want  int
	}{
		{name: "no neighbours", slots: []string{""}, pos: 0, cand: "7", want: 0},
		{name: "perfect fit", slots: []string{"10", "", "12"}, pos: 1, cand: "11", want: 0},
		{name: "one off", slots: []string{"10", "", "12"}, pos: 1, cand: "13", want: 100*2 + 100*2 + 10},
		{name: "before previous", slots: []string{"10", ""}, pos: 1, cand: "9", want: 100*2 + 10},
		{name: "skips unresolved", slots: []string{"10", "", "", "13"}, pos: 1, cand: "11", want: 0},
		{name: "skips unresolved distance", slots: []string{"10", "", "", "13"}, pos: 2, cand: "12", want: 0},
		{name: "equal to next", slots: []string{"", "5"}, pos: 0, cand: "5", want: 100 + 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContextCost(tt.slots, tt.pos, tt.cand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}

	_, err := ContextCost([]string{"x1", ""}, 1, "abc")
	assert.ErrorIs(t, err, ErrNoOrdinal)
}

func TestSolveSquare(t *testing.T) {
	cost := [][]int{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	got := Solve(cost)
	assert.Equal(t, []int{1, 0, 2}, got)
	assert.Equal(t, 5, Total(cost, got))
}

func TestSolveRectangular(t *testing.T) {
	wide := [][]int{
		{10, 1, 10},
		{1, 10, 10},
	}
	assert.Equal(t, []int{1, 0}, Solve(wide))

	tall := [][]int{
		{10, 1},
		{1, 10},
		{50, 50},
	}
	got := Solve(tall)
	assert.Equal(t, 2, Total(tall, got))
	assert.Equal(t, -1, got[2])
}

func TestSolveEmpty(t *testing.T) {
	assert.Nil(t, Solve(nil))
	assert.Equal(t, []int{-1, -1}, Solve([][]int{{}, {}}))
}

// bruteForce returns the minimum total over all permutations of a square
// matrix.
func bruteForce(cost [][]int) int {
	n := len(cost)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := -1
	var rec func(k int)
	rec = func(k int) {
		if k == n {
			total := Total(cost, perm)
			if best < 0 || total < best {
				best = total
			}
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			rec(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	rec(0)
	return best
}

func TestSolveOptimalBijection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		n := 1 + rng.Intn(6)
		cost := make([][]int, n)
		for i := range cost {
			cost[i] = make([]int, n)
			for j := range cost[i] {
				cost[i][j] = rng.Intn(5) * 100
			}
		}

		got := Solve(cost)
		require.Len(t, got, n)

		used := map[int]bool{}
		for _, j := range got {
			require.GreaterOrEqual(t, j, 0)
			require.False(t, used[j], "column %d used twice", j)
			used[j] = true
		}
		assert.Equal(t, bruteForce(cost), Total(cost, got))
	}
}
