// Package assign resolves ambiguous sentence matches: a context cost between
// an occurrence and a candidate sentence id, and a minimum cost assignment.
package assign

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

const (
	// DistanceWeight multiplies the gap between expected and candidate ids.
	DistanceWeight = 100
	// OrderPenalty is added when a candidate breaks the order of a neighbour.
	OrderPenalty = 10
)

// ErrNoOrdinal indicates a sentence id without numeric part.
var ErrNoOrdinal = errors.New("assign: sentence id has no numeric part")

// Ordinal returns the numeric value of a sentence id: the id itself, or its
// trailing digit run (train-s12 -> 12).
func Ordinal(id string) (int, error) {
	if n, err := strconv.Atoi(id); err == nil {
		return n, nil
	}

	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0, fmt.Errorf("%w: %q", ErrNoOrdinal, id)
	}
	return strconv.Atoi(id[i:])
}

// ContextCost scores candidate for position pos of a document whose resolved
// sentence ids are slots ("" for unresolved). The nearest resolved neighbour
// on each side adds DistanceWeight times the gap between the candidate and
// the id expected from the neighbour, plus OrderPenalty if the candidate does
// not follow (precede) it.
func ContextCost(slots []string, pos int, candidate string) (int, error) {
	cand, err := Ordinal(candidate)
	if err != nil {
		return 0, err
	}

	cost := 0

	for off := 1; pos-off >= 0; off++ {
		if slots[pos-off] == "" {
			continue
		}
		prev, err := Ordinal(slots[pos-off])
		if err != nil {
			return 0, err
		}
		cost += DistanceWeight * abs(cand-prev-off)
		if cand <= prev {
			cost += OrderPenalty
		}
		break
	}

	for off := 1; pos+off < len(slots); off++ {
		if slots[pos+off] == "" {
			continue
		}
		next, err := Ordinal(slots[pos+off])
		if err != nil {
			return 0, err
		}
		cost += DistanceWeight * abs(next-cand-off)
		if cand >= next {
			cost += OrderPenalty
		}
		break
	}

	return cost, nil
}

// Solve returns the minimum total cost assignment of rows to columns of a
// non-negative cost matrix (Hungarian algorithm). assignment[row] is the
// column of row, or -1 when there are more rows than columns and the row is
// left out.
func Solve(cost [][]int) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])
	if m == 0 {
		return fill(n, -1)
	}

	if n > m {
		t := make([][]int, m)
		for j := range t {
			t[j] = make([]int, n)
			for i := 0; i < n; i++ {
				t[j][i] = cost[i][j]
			}
		}
		res := fill(n, -1)
		for col, row := range Solve(t) {
			res[row] = col
		}
		return res
	}

	const inf = math.MaxInt / 4

	// potentials and matching over 1-based indexes, p[j] is the row of column j
	u := make([]int, n+1)
	v := make([]int, m+1)
	p := make([]int, m+1)
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := fill(m+1, inf)
		used := make([]bool, m+1)

		for {
			used[j0] = true
			i0, delta, j1 := p[j0], inf, 0
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	res := make([]int, n)
	for j := 1; j <= m; j++ {
		if p[j] != 0 {
			res[p[j]-1] = j - 1
		}
	}
	return res
}

// Total sums the cost of an assignment.
func Total(cost [][]int, assignment []int) int {
	total := 0
	for i, j := range assignment {
		if j >= 0 {
			total += cost[i][j]
		}
	}
	return total
}

func fill(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
