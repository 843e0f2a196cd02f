package main

import "container/heap"

// Heap is the priority queue behind each lookahead frontier: a min-heap
// ordered by less, so the cheapest candidate is at the top.
type Heap[E any] struct {
	s sliceHeap[E]
}

// NewHeap returns an empty heap ordered by less.
func NewHeap[E any](less func(E, E) bool) *Heap[E] {
	return &Heap[E]{sliceHeap[E]{less: less}}
}

func (h *Heap[E]) Push(elem E) {
	heap.Push(&h.s, elem)
}

// Pop removes the minimum. Panics on an empty heap.
func (h *Heap[E]) Pop() E {
	return heap.Pop(&h.s).(E)
}

// Peek returns the minimum without removing it.
func (h *Heap[E]) Peek() E {
	return h.s.s[0]
}

func (h *Heap[E]) Len() int {
	return len(h.s.s)
}

// sliceHeap adapts the slice to heap.Interface.
type sliceHeap[E any] struct {
	s    []E
	less func(E, E) bool
}

func (s *sliceHeap[E]) Len() int           { return len(s.s) }
func (s *sliceHeap[E]) Swap(i, j int)      { s.s[i], s.s[j] = s.s[j], s.s[i] }
func (s *sliceHeap[E]) Less(i, j int) bool { return s.less(s.s[i], s.s[j]) }

func (s *sliceHeap[E]) Push(x any) {
	s.s = append(s.s, x.(E))
}

func (s *sliceHeap[E]) Pop() any {
	e := s.s[len(s.s)-1]
	var zero E
	s.s[len(s.s)-1] = zero
	s.s = s.s[:len(s.s)-1]
	return e
}
