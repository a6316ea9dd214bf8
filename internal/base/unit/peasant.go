package unit

import (
	"sync"
	"sync/atomic"

	"BaseWars/internal/shared/gameconfig/unitconf"
)

// Peasant 同时是采集者、建造者和战斗单位。
// harvesting 与 building 是两个独立的原子标志，空闲 = 两者都为 false。
type Peasant struct {
	Personnel

	harvesting atomic.Bool
	building   atomic.Bool

	hmu  sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewPeasant(owner Owner) *Peasant {
	p := &Peasant{}
	p.init(unitconf.Peasant, owner, owner.Units().MustLookup(unitconf.Peasant))
	return p
}

func (p *Peasant) IsHarvesting() bool { return p.harvesting.Load() }
func (p *Peasant) IsBuilding() bool { return p.building.Load() }

func (p *Peasant) IsFree() bool {
	return !p.harvesting.Load() && !p.building.Load()
}

// Claim 把空闲农民标记为建造中，成功返回 true。
// 查找与占用合成一步，两个调用方不会拿到同一个农民去建造。
func (p *Peasant) Claim() bool {
	if p.harvesting.Load() || !p.Alive() {
		return false
	}
	return p.building.CompareAndSwap(false, true)
}

// Release 归还 Claim 得到的占用。
func (p *Peasant) Release() {
	p.building.Store(false)
}

type Footman struct {
	Personnel
}

func NewFootman(owner Owner) *Footman {
	f := &Footman{}
	f.init(unitconf.Footman, owner, owner.Units().MustLookup(unitconf.Footman))
	return f
}
