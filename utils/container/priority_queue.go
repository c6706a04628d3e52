package container

import "container/heap"

// item 优先队列中的单个元素
type item[T any] struct {
	Value    T       // 元素的值
	Priority float64 // 优先级，越小越优先
	seq      int     // 加入顺序，优先级相同时先加入者优先
}

// itemHeap 实现heap.Interface，元素按值存放以便复用底层数组
type itemHeap[T any] []item[T]

func (h itemHeap[T]) Len() int { return len(h) }

func (h itemHeap[T]) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h itemHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap[T]) Push(x any) {
	*h = append(*h, x.(item[T]))
}

func (h *itemHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// PriorityQueue 小顶堆优先队列
// 功能：按优先级数值从小到大弹出元素，优先级相同时按加入顺序弹出，结果确定
// 说明：Clear后底层数组保留，适合在每一步仿真中反复使用
type PriorityQueue[T any] struct {
	queue itemHeap[T]
	seq   int
}

// NewPriorityQueue 创建优先队列
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{queue: make(itemHeap[T], 0)}
}

// Len 当前队列长度
func (q *PriorityQueue[T]) Len() int {
	return len(q.queue)
}

// Clear 清空队列，保留已分配的空间
func (q *PriorityQueue[T]) Clear() {
	q.queue = q.queue[:0]
	q.seq = 0
}

// Push 加入元素但不维护堆结构，批量加入后需调用Heapify
func (q *PriorityQueue[T]) Push(value T, priority float64) {
	q.queue = append(q.queue, item[T]{Value: value, Priority: priority, seq: q.seq})
	q.seq++
}

// Heapify 重新构建堆
func (q *PriorityQueue[T]) Heapify() {
	heap.Init(&q.queue)
}

// HeapPush 加入元素并维护堆结构
func (q *PriorityQueue[T]) HeapPush(value T, priority float64) {
	heap.Push(&q.queue, item[T]{Value: value, Priority: priority, seq: q.seq})
	q.seq++
}

// HeapPop 弹出优先级数值最小的元素
// 返回：value-元素值，priority-元素优先级
func (q *PriorityQueue[T]) HeapPop() (value T, priority float64) {
	it := heap.Pop(&q.queue).(item[T])
	return it.Value, it.Priority
}
