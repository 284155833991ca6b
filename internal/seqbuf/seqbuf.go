// Package seqbuf 提供按作业号排序的乱序完成缓冲。
//
// 远程批量后端的结果可能以任意顺序到达；Buffer 以最小堆按作业号
// 缓存结果，调度器据此实现严格按提交顺序的顺序消费：
// 只要堆顶作业号等于下一个期望序号，即可弹出。
//
// 插入与弹出最小值均为 O(log k)。非并发安全，由单个调度 goroutine 使用。
package seqbuf

import "container/heap"

type entry[T any] struct {
	id    int64
	value T
}

// 基于 container/heap 的最小堆。
type entryHeap[T any] []entry[T]

func (h entryHeap[T]) Len() int            { return len(h) }
func (h entryHeap[T]) Less(i, j int) bool  { return h[i].id < h[j].id }
func (h entryHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap[T]) Push(x any)         { *h = append(*h, x.(entry[T])) }
func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Buffer 按作业号排序的缓冲。零值不可用，请通过 New 创建。
type Buffer[T any] struct {
	h entryHeap[T]
}

// New 创建空缓冲。
func New[T any]() *Buffer[T] {
	return &Buffer[T]{}
}

// Push 插入一个带作业号的结果。
func (b *Buffer[T]) Push(id int64, v T) {
	heap.Push(&b.h, entry[T]{id: id, value: v})
}

// Len 返回缓冲中的结果数。
func (b *Buffer[T]) Len() int {
	return b.h.Len()
}

// MinID 返回当前最小作业号。缓冲为空时第二个返回值为 false。
func (b *Buffer[T]) MinID() (int64, bool) {
	if b.h.Len() == 0 {
		return 0, false
	}
	return b.h[0].id, true
}

// PopMin 弹出作业号最小的结果。缓冲为空时第三个返回值为 false。
func (b *Buffer[T]) PopMin() (int64, T, bool) {
	if b.h.Len() == 0 {
		var zero T
		return 0, zero, false
	}
	e := heap.Pop(&b.h).(entry[T])
	return e.id, e.value, true
}
