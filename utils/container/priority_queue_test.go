package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/container"
)

func TestPriorityQueueOrder(t *testing.T) {
	q := container.NewPriorityQueue[string]()
	q.Push("c", 3)
	q.Push("a", 1)
	q.Push("b", 2)
	q.Heapify()
	q.HeapPush("z", 0)
	assert.Equal(t, 4, q.Len())

	got := []string{}
	for q.Len() > 0 {
		v, _ := q.HeapPop()
		got = append(got, v)
	}
	assert.Equal(t, []string{"z", "a", "b", "c"}, got)
}

func TestPriorityQueueTieBreak(t *testing.T) {
	q := container.NewPriorityQueue[int]()
	for round := range 2 {
		q.Clear()
		q.Push(1, -5)
		q.Push(0, -5)
		q.Heapify()
		first, p := q.HeapPop()
		assert.Equal(t, 1, first, "round %d", round)
		assert.Equal(t, -5.0, p)
	}
}
