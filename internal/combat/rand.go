package combat

import (
	"math/rand/v2"
	"sync"
)

// Rand 是引擎使用的随机源，实现须可被多个 goroutine 并发调用。
type Rand interface {
	IntN(n int) int
	Int64N(n int64) int64
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand 返回加锁的 PCG 随机源；seed 为 0 时随机取种。
func NewRand(seed int64) Rand {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return &lockedRand{r: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Int64N(n int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Int64N(n)
}
