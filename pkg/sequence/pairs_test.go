package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgesCycle(t *testing.T) {
	cases := []struct {
		name string
		in   []int
		want []Pair[int]
	}{
		{"empty", nil, nil},
		{"length_1", []int{0}, []Pair[int]{{0, 0}}},
		{"length_2", []int{0, 1}, []Pair[int]{{0, 1}, {1, 0}}},
		{"length_3", []int{0, 1, 2}, []Pair[int]{{0, 1}, {1, 2}, {2, 0}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CollectPairs(EdgesCycle(c.in)))
		})
	}
}

func TestEdges(t *testing.T) {
	assert.Nil(t, CollectPairs(Edges([]int{7})))
	assert.Equal(t, []Pair[int]{{0, 1}, {1, 2}}, CollectPairs(Edges([]int{0, 1, 2})))
}

func TestEdgesCycleStopsEarly(t *testing.T) {
	count := 0
	for range EdgesCycle([]int{1, 2, 3, 4}) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestChain2(t *testing.T) {
	got := CollectPairs(Chain2(Edges([]int{1, 2}), EdgesCycle([]int{3, 4})))
	assert.Equal(t, []Pair[int]{{1, 2}, {3, 4}, {4, 3}}, got)
}
