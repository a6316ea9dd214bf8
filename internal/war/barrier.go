// Package war 提供两座基地开战前的集结屏障。
package war

import (
	"context"
	"sync"

	"BaseWars/modules/kit/errx"
)

// Latch 是一次性倒计数门闩：计数归零后 Done 关闭，之后的 CountDown 无效。
type Latch struct {
	mu    sync.Mutex
	count int
	done  chan struct{}
}

func NewLatch(count int) *Latch {
	l := &Latch{count: count, done: make(chan struct{})}
	if count <= 0 {
		close(l.done)
	}
	return l
}

func (l *Latch) CountDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count <= 0 {
		return
	}
	l.count--
	if l.count == 0 {
		close(l.done)
	}
}

func (l *Latch) Done() <-chan struct{} { return l.done }

// Wait 阻塞到计数归零或 ctx 结束。
func (l *Latch) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return errx.ErrInterrupted.WithCause(ctx.Err()).WithData("wait", "latch")
	}
}

// Barrier 由恰好两方共享：assembled 门闩记录双方完成集结，engaged 门闩是开战前的会合点。
type Barrier struct {
	ID        string
	assembled *Latch
	engaged   *Latch
}

const parties = 2

func NewBarrier(id string) *Barrier {
	return &Barrier{ID: id, assembled: NewLatch(parties), engaged: NewLatch(parties)}
}

// Assembled 由 AssembleArmy 在军队组建完成后调用。
func (b *Barrier) Assembled() { b.assembled.CountDown() }

func (b *Barrier) WaitAssembled(ctx context.Context) error {
	return b.assembled.Wait(ctx)
}

// Rendezvous 报到并等待对方也报到。对方永不到达时，由调用方通过 ctx 放弃。
func (b *Barrier) Rendezvous(ctx context.Context) error {
	b.engaged.CountDown()
	return b.engaged.Wait(ctx)
}

// Engaged 在双方都通过 Rendezvous 报到后关闭。
func (b *Barrier) Engaged() <-chan struct{} { return b.engaged.Done() }
