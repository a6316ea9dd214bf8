// Package base 编排一座基地的全部生命周期：开局、备战、集结、出征。
package base

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"BaseWars/internal/base/army"
	"BaseWars/internal/base/resource"
	"BaseWars/internal/base/roster"
	"BaseWars/internal/base/unit"
	"BaseWars/internal/combat"
	"BaseWars/internal/shared/event"
	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/internal/shared/metrics"
	"BaseWars/internal/shared/notify"
	"BaseWars/internal/shared/simconfig"
	"BaseWars/modules/kit/logx"
)

type Deps struct {
	Units   unitconf.Table
	Sim     simconfig.SimConfig
	Engine  *combat.Engine
	Log     logx.Logger
	Metrics *metrics.Metrics
	Events  event.Sink
}

type Base struct {
	name  string
	sim   simconfig.SimConfig
	units unitconf.Table

	pool      *resource.Pool
	peasants  *roster.List[*unit.Peasant]
	footmen   *roster.List[*unit.Footman]
	buildings *roster.List[*unit.Building]
	army      *army.Army

	// 当前出征的 war id，阵亡事件据此归档
	warID atomic.Value

	// trainSlot 容量为 1：同一时刻只有一笔训练在付费等待
	trainSlot chan struct{}
	training  atomic.Int32
	changed   *notify.Notifier

	engine  *combat.Engine
	log     logx.Logger
	metrics *metrics.Metrics
	events  event.Sink

	// 开局采集者的生命周期，Close 时结束
	life   context.Context
	cancel context.CancelFunc
}

// New 创建基地：按配置放入初始农民（不走训练、不扣费，但占用人口），并派出开局采集者。
func New(name string, deps Deps) *Base {
	if deps.Units == nil {
		deps.Units = unitconf.Default()
	}
	if deps.Log == nil {
		deps.Log = logx.Nop()
	}
	if deps.Events == nil {
		deps.Events = event.Nop()
	}
	if deps.Engine == nil {
		deps.Engine = combat.New(combat.NewRand(deps.Sim.Seed), combat.Pacing{
			WaitMin: deps.Sim.AttackWaitMin,
			WaitMax: deps.Sim.AttackWaitMax,
		})
	}
	if deps.Sim.PollInterval <= 0 {
		deps.Sim.PollInterval = 50 * time.Millisecond
	}

	b := &Base{
		name:      name,
		sim:       deps.Sim,
		units:     deps.Units,
		pool:      resource.NewPool(deps.Sim.StartGold, deps.Sim.StartWood, deps.Sim.FoodLimit),
		peasants:  roster.New[*unit.Peasant](),
		footmen:   roster.New[*unit.Footman](),
		buildings: roster.New[*unit.Building](),
		army:      army.New(name),
		trainSlot: make(chan struct{}, 1),
		changed:   notify.New(),
		engine:    deps.Engine,
		log:       deps.Log.With(zap.String("base", name)),
		metrics:   deps.Metrics,
		events:    deps.Events,
	}
	b.life, b.cancel = context.WithCancel(context.Background())
	b.pool.OnChange(func(s resource.Stock) {
		b.metrics.Stock(b.name, s.Gold, s.Wood, s.FoodUsed, s.FoodLimit)
		b.changed.Broadcast()
	})

	food := b.units.MustLookup(unitconf.Peasant).FoodCost
	for i := 0; i < deps.Sim.StarterPeasants; i++ {
		b.peasants.Add(unit.NewPeasant(b))
		b.pool.UpdateCapacity(food)
	}
	for i := 0; i < deps.Sim.StarterMiners; i++ {
		b.commandHarvester(b.life, unit.Gold)
	}
	for i := 0; i < deps.Sim.StarterWoodcutters; i++ {
		b.commandHarvester(b.life, unit.Wood)
	}
	b.log.Info("base created",
		zap.Int("peasants", b.peasants.Len()),
		zap.Int("harvesters", b.harvesterCount()),
	)
	return b
}

// Close 停止所有采集。可重复调用。
func (b *Base) Close() {
	b.cancel()
	b.StopHarvesting()
}

func (b *Base) Name() string { return b.name }
func (b *Base) Pool() *resource.Pool { return b.pool }
func (b *Base) Units() unitconf.Table { return b.units }
func (b *Base) Army() *army.Army { return b.army }
func (b *Base) Changed() <-chan struct{} { return b.changed.C() }
func (b *Base) Peasants() []*unit.Peasant { return b.peasants.Snapshot() }
func (b *Base) Footmen() []*unit.Footman { return b.footmen.Snapshot() }

func (b *Base) Harvest() unit.HarvestPlan {
	return unit.HarvestPlan{Interval: b.sim.HarvestInterval, Yield: b.sim.HarvestYield}
}

func (b *Base) Deposit(res unit.Resource, n int) {
	switch res {
	case unit.Gold:
		b.pool.AddGold(n)
	case unit.Wood:
		b.pool.AddWood(n)
	default:
		return
	}
	b.metrics.Deposit(b.name, string(res), n)
}

// AddBuilding 登记建成的建筑；农场提升人口上限。
func (b *Base) AddBuilding(bld *unit.Building) {
	b.buildings.Add(bld)
	if st, ok := b.units.Lookup(bld.Kind); ok && st.FoodSupply > 0 {
		b.pool.AddFoodLimit(st.FoodSupply)
	}
	b.metrics.Built(b.name, string(bld.Kind))
	b.publish(event.Event{Kind: event.BuildingFinished, Unit: string(bld.Kind), UnitID: bld.ID()})
	b.log.Info("building finished", zap.String("kind", string(bld.Kind)), zap.Int64("id", bld.ID()))
	b.changed.Broadcast()
}

func (b *Base) BuildingCount(kind unitconf.Kind) int {
	return b.buildings.Count(func(bld *unit.Building) bool { return bld.Kind == kind })
}

func (b *Base) HasBuilding(kind unitconf.Kind) bool {
	_, ok := b.buildings.First(func(bld *unit.Building) bool { return bld.Kind == kind })
	return ok
}

// StopHarvesting 停下所有农民的采集，返回时不会再有入库。
func (b *Base) StopHarvesting() {
	for _, p := range b.peasants.Snapshot() {
		p.StopHarvesting()
	}
}

// claimFreePeasant 找到并占用一个空闲农民，查找和占用是一步。
func (b *Base) claimFreePeasant() (*unit.Peasant, bool) {
	for _, p := range b.peasants.Snapshot() {
		if p.Claim() {
			return p, true
		}
	}
	return nil, false
}

// commandHarvester 让一个空闲农民去采集 res，成功返回 true。
func (b *Base) commandHarvester(ctx context.Context, res unit.Resource) bool {
	for _, p := range b.peasants.Snapshot() {
		if !p.IsFree() || !p.Alive() {
			continue
		}
		var started bool
		if res == unit.Gold {
			started = p.StartMining(ctx)
		} else {
			started = p.StartCuttingWood(ctx)
		}
		if started {
			b.publish(event.Event{Kind: event.HarvestStarted, Unit: string(unitconf.Peasant), UnitID: p.ID(), Detail: string(res)})
			return true
		}
	}
	return false
}

func (b *Base) harvesterCount() int {
	return b.peasants.Count(func(p *unit.Peasant) bool { return p.IsHarvesting() })
}

func (b *Base) publish(e event.Event) {
	e.Base = b.name
	if e.At.IsZero() {
		e.At = time.Now()
	}
	b.events.Publish(e)
}

// await 等待状态变更、兜底轮询周期或 ctx 结束。
func (b *Base) await(ctx context.Context, changed <-chan struct{}) error {
	t := time.NewTimer(b.sim.PollInterval)
	defer t.Stop()
	select {
	case <-changed:
	case <-t.C:
	case <-ctx.Done():
		return interrupted(ctx, "await")
	}
	return nil
}
