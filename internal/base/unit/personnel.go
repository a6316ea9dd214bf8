package unit

import (
	"sync"
	"sync/atomic"

	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/internal/shared/idgen"
)

type State int32

const (
	Idle State = iota
	Engaged
	Dead
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Engaged:
		return "engaged"
	case Dead:
		return "dead"
	}
	return "unknown"
}

// Personnel 是可参战的单位。health 原子读写；死亡转换在 mu 下进行且只发生一次。
type Personnel struct {
	mu        sync.Mutex
	id        int64
	kind      unitconf.Kind
	owner     Owner
	health    atomic.Int64
	state     atomic.Int32
	attackMin int
	attackMax int
	foodCost  int
}

func (p *Personnel) init(kind unitconf.Kind, owner Owner, st unitconf.Stats) {
	p.id = idgen.Next()
	p.kind = kind
	p.owner = owner
	p.health.Store(int64(st.Health))
	p.attackMin = st.AttackMin
	p.attackMax = st.AttackMax
	p.foodCost = st.FoodCost
}

func (p *Personnel) ID() int64 { return p.id }
func (p *Personnel) Kind() unitconf.Kind { return p.kind }
func (p *Personnel) Owner() Owner { return p.owner }
func (p *Personnel) FoodCost() int { return p.foodCost }
func (p *Personnel) AttackRange() (int, int) { return p.attackMin, p.attackMax }

// Health 对外截断到 0。
func (p *Personnel) Health() int {
	return int(max(0, p.health.Load()))
}

func (p *Personnel) State() State { return State(p.state.Load()) }

func (p *Personnel) Alive() bool { return p.State() != Dead }

// SetEngaged 切换 Idle/Engaged；已死亡的单位保持 Dead。
func (p *Personnel) SetEngaged(engaged bool) {
	next := Idle
	if engaged {
		next = Engaged
	}
	p.mu.Lock()
	if p.State() != Dead {
		p.state.Store(int32(next))
	}
	p.mu.Unlock()
}

// Strike 让 p 对 target 造成 dmg 点伤害。
// 双方按 ID 顺序加锁，只有攻击者仍存活时才命中，所以两人不会同时击杀对方。
// killed 为 true 时调用方负责在锁外发出死亡通知。
func (p *Personnel) Strike(target *Personnel, dmg int) (landed, killed bool) {
	if target == nil || target == p {
		return false, false
	}
	first, second := p, target
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	defer func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}()

	if p.State() == Dead || target.State() == Dead {
		return false, false
	}
	if target.health.Add(-int64(max(0, dmg))) <= 0 {
		target.state.Store(int32(Dead))
		return true, true
	}
	return true, false
}
