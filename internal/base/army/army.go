// Package army 是集结后的参战名单：战斗中只减不增，清空即战败。
package army

import (
	"sync"

	"BaseWars/internal/base/unit"
)

type Army struct {
	mu      sync.RWMutex
	base    string
	members []*unit.Personnel
	filled  bool
	emptied chan struct{}
}

func New(base string) *Army {
	return &Army{base: base, emptied: make(chan struct{})}
}

func (a *Army) Base() string { return a.base }

// Fill 用存活成员组建军队，只生效一次。成员为空时立即视为清空。
func (a *Army) Fill(members []*unit.Personnel) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.filled {
		return false
	}
	a.filled = true
	for _, m := range members {
		if m != nil && m.Alive() {
			a.members = append(a.members, m)
		}
	}
	if len(a.members) == 0 {
		close(a.emptied)
	}
	return true
}

// Remove 移除成员，返回是否确实移除；最后一名成员移除时关闭 Emptied。
func (a *Army) Remove(id int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, m := range a.members {
		if m.ID() != id {
			continue
		}
		next := make([]*unit.Personnel, 0, len(a.members)-1)
		next = append(next, a.members[:i]...)
		a.members = append(next, a.members[i+1:]...)
		if len(a.members) == 0 {
			close(a.emptied)
		}
		return true
	}
	return false
}

func (a *Army) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.members)
}

func (a *Army) Snapshot() []*unit.Personnel {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*unit.Personnel, len(a.members))
	copy(out, a.members)
	return out
}

// Pick 随机挑选一名存活成员；intn 须返回 [0,n)。
func (a *Army) Pick(intn func(n int) int) (*unit.Personnel, bool) {
	alive := a.Snapshot()
	n := 0
	for _, m := range alive {
		if m.Alive() {
			alive[n] = m
			n++
		}
	}
	if n == 0 {
		return nil, false
	}
	return alive[intn(n)], true
}

// Emptied 在军队被清空后关闭。
func (a *Army) Emptied() <-chan struct{} {
	return a.emptied
}

func (a *Army) IsEmpty() bool {
	select {
	case <-a.emptied:
		return true
	default:
		return false
	}
}
