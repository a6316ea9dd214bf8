// Package roster 提供可在并发增删的同时安全遍历的名册。
package roster

import "sync"

type Identified interface {
	ID() int64
}

// List 按加入顺序保存成员。读取一律返回快照，遍历快照期间的增删互不影响。
type List[T Identified] struct {
	sync.RWMutex
	items []T
}

func New[T Identified]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) Add(item T) {
	l.Lock()
	l.items = append(l.items, item)
	l.Unlock()
}

// Remove 按 ID 移除，返回是否确实移除了成员。
func (l *List[T]) Remove(id int64) bool {
	l.Lock()
	defer l.Unlock()
	for i, it := range l.items {
		if it.ID() == id {
			// 新切片：已经发出去的快照仍指向旧底层数组
			next := make([]T, 0, len(l.items)-1)
			next = append(next, l.items[:i]...)
			l.items = append(next, l.items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *List[T]) Len() int {
	l.RLock()
	defer l.RUnlock()
	return len(l.items)
}

func (l *List[T]) Snapshot() []T {
	l.RLock()
	defer l.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Count(match func(T) bool) int {
	n := 0
	for _, it := range l.Snapshot() {
		if match(it) {
			n++
		}
	}
	return n
}

// First 返回第一个满足 match 的成员。match 在快照上执行，不持有锁。
func (l *List[T]) First(match func(T) bool) (T, bool) {
	for _, it := range l.Snapshot() {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}
