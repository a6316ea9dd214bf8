// Package resource 实现基地的资源池：金、木与人口占用。
package resource

import "sync"

// Stock 是资源池某一时刻的快照。
type Stock struct {
	Gold      int `json:"gold"`
	Wood      int `json:"wood"`
	FoodUsed  int `json:"food_used"`
	FoodLimit int `json:"food_limit"`
}

// Pool 的所有读写都在同一把锁下完成，任何计数器都不会为负。
type Pool struct {
	mu        sync.Mutex
	gold      int
	wood      int
	foodUsed  int
	foodLimit int

	onChange func(Stock)
}

func NewPool(gold, wood, foodLimit int) *Pool {
	return &Pool{gold: max(0, gold), wood: max(0, wood), foodLimit: max(0, foodLimit)}
}

// OnChange 注册变更回调，回调在锁外执行。只应在启动前调用一次。
func (p *Pool) OnChange(fn func(Stock)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

func (p *Pool) CanTrain(gold, wood, food int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.affordable(gold, wood) && p.foodUsed+food <= p.foodLimit
}

func (p *Pool) CanBuild(gold, wood int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.affordable(gold, wood)
}

// RemoveCost 无条件扣减，调用方需事先确认买得起；不足部分截断到 0。
// 与 CanTrain/CanBuild 组合使用时不是原子事务，生产路径使用 TryReserve。
func (p *Pool) RemoveCost(gold, wood int) {
	p.mutate(func() bool {
		p.gold = max(0, p.gold-gold)
		p.wood = max(0, p.wood-wood)
		return true
	})
}

// TryReserve 原子地检查并扣除 gold/wood，同时占用 food 人口。
func (p *Pool) TryReserve(gold, wood, food int) bool {
	return p.mutate(func() bool {
		if !p.affordable(gold, wood) || p.foodUsed+food > p.foodLimit {
			return false
		}
		p.gold -= gold
		p.wood -= wood
		p.foodUsed += food
		return true
	})
}

// UpdateCapacity 调整人口占用，结果截断到 0。
func (p *Pool) UpdateCapacity(delta int) {
	p.mutate(func() bool {
		p.foodUsed = max(0, p.foodUsed+delta)
		return true
	})
}

func (p *Pool) AddFoodLimit(n int) {
	p.mutate(func() bool {
		p.foodLimit = max(0, p.foodLimit+n)
		return true
	})
}

func (p *Pool) AddGold(n int) {
	if n <= 0 {
		return
	}
	p.mutate(func() bool {
		p.gold += n
		return true
	})
}

func (p *Pool) AddWood(n int) {
	if n <= 0 {
		return
	}
	p.mutate(func() bool {
		p.wood += n
		return true
	})
}

func (p *Pool) Snapshot() Stock {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stock()
}

func (p *Pool) affordable(gold, wood int) bool {
	return p.gold >= gold && p.wood >= wood
}

func (p *Pool) stock() Stock {
	return Stock{Gold: p.gold, Wood: p.wood, FoodUsed: p.foodUsed, FoodLimit: p.foodLimit}
}

// mutate 在锁内执行 fn；fn 返回 true 表示有变更，此时在锁外触发回调。
func (p *Pool) mutate(fn func() bool) bool {
	p.mu.Lock()
	changed := fn()
	s, cb := p.stock(), p.onChange
	p.mu.Unlock()
	if changed && cb != nil {
		cb(s)
	}
	return changed
}
