package unit

import (
	"sync"
	"testing"
)

func TestStrike_致死只转换一次(t *testing.T) {
	o := newFakeOwner(0, 0)
	target := NewFootman(o)
	target.health.Store(10)

	attackers := make([]*Footman, 8)
	for i := range attackers {
		attackers[i] = NewFootman(o)
	}
	var (
		mu    sync.Mutex
		kills int
		wg    sync.WaitGroup
	)
	for _, a := range attackers {
		wg.Add(1)
		go func(a *Footman) {
			defer wg.Done()
			if _, killed := a.Strike(&target.Personnel, 10); killed {
				mu.Lock()
				kills++
				mu.Unlock()
			}
		}(a)
	}
	wg.Wait()
	if kills != 1 {
		t.Fatalf("期望恰好一次致死, got=%d", kills)
	}
	if target.Health() != 0 || target.Alive() {
		t.Fatalf("期望生命截断为 0 且已死亡, hp=%d state=%v", target.Health(), target.State())
	}
}

func TestStrike_死亡的攻击者不能命中(t *testing.T) {
	o := newFakeOwner(0, 0)
	a, b := NewFootman(o), NewFootman(o)
	a.health.Store(5)
	b.health.Store(5)
	if _, killed := b.Strike(&a.Personnel, 5); !killed {
		t.Fatalf("期望 b 击杀 a")
	}
	if landed, _ := a.Strike(&b.Personnel, 5); landed {
		t.Fatalf("期望已死亡的 a 无法命中")
	}
	if b.Health() != 5 {
		t.Fatalf("期望 b 未受伤, got=%d", b.Health())
	}
}

func TestSetEngaged_死亡后保持Dead(t *testing.T) {
	o := newFakeOwner(0, 0)
	a, b := NewFootman(o), NewFootman(o)
	a.SetEngaged(true)
	if a.State() != Engaged {
		t.Fatalf("期望 Engaged, got=%v", a.State())
	}
	a.health.Store(1)
	b.Strike(&a.Personnel, 3)
	a.SetEngaged(false)
	if a.State() != Dead {
		t.Fatalf("期望保持 Dead, got=%v", a.State())
	}
}
