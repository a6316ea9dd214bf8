package unit

import (
	"context"
	"time"
)

func (p *Peasant) StartMining(ctx context.Context) bool {
	return p.startHarvest(ctx, Gold)
}

func (p *Peasant) StartCuttingWood(ctx context.Context) bool {
	return p.startHarvest(ctx, Wood)
}

// startHarvest 启动一个常驻采集循环。已经在采集或正在建造时返回 false。
func (p *Peasant) startHarvest(ctx context.Context, res Resource) bool {
	p.hmu.Lock()
	defer p.hmu.Unlock()
	if p.harvesting.Load() || p.building.Load() {
		return false
	}
	p.harvesting.Store(true)
	stop, done := make(chan struct{}), make(chan struct{})
	p.stop, p.done = stop, done
	go p.harvestLoop(ctx, res, stop, done)
	return true
}

// StopHarvesting 清除采集标志并等待循环退出；返回后不会再有入库。
func (p *Peasant) StopHarvesting() {
	p.hmu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.hmu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (p *Peasant) harvestLoop(ctx context.Context, res Resource, stop, done chan struct{}) {
	defer close(done)
	defer p.harvesting.Store(false)

	plan := p.owner.Harvest()
	t := time.NewTicker(plan.Interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-t.C:
		}
		// stop 与 tick 同时就绪时 select 随机挑选，这里再确认一次
		select {
		case <-stop:
			return
		default:
		}
		if !p.Alive() {
			return
		}
		p.owner.Deposit(res, plan.Yield)
	}
}
