package unit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/modules/kit/errx"
)

func TestIsFree_真值表(t *testing.T) {
	p := NewPeasant(newFakeOwner(0, 0))
	cases := []struct {
		harvesting, building, free bool
	}{
		{false, false, true},
		{true, false, false},
		{false, true, false},
		{true, true, false},
	}
	for _, c := range cases {
		p.harvesting.Store(c.harvesting)
		p.building.Store(c.building)
		if got := p.IsFree(); got != c.free {
			t.Fatalf("harvesting=%v building=%v: 期望 free=%v, got=%v", c.harvesting, c.building, c.free, got)
		}
	}
}

func TestClaim_并发只有一个成功(t *testing.T) {
	p := NewPeasant(newFakeOwner(0, 0))
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p.Claim() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Fatalf("期望只有一个调用方占用成功, got=%d", wins.Load())
	}
	p.Release()
	if !p.IsFree() {
		t.Fatalf("期望释放后空闲")
	}
}

func TestStopHarvesting_返回后不再入库(t *testing.T) {
	o := newFakeOwner(0, 0)
	p := NewPeasant(o)
	if !p.StartMining(context.Background()) {
		t.Fatalf("期望开始采矿")
	}
	if p.StartCuttingWood(context.Background()) {
		t.Fatalf("期望已在采集时再次启动返回 false")
	}
	deadline := time.Now().Add(time.Second)
	for o.deposited(Gold) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	p.StopHarvesting()
	after := o.deposited(Gold)
	if after == 0 {
		t.Fatalf("期望停止前至少入库一次")
	}
	if p.IsHarvesting() {
		t.Fatalf("期望停止后采集标志清除")
	}
	time.Sleep(4 * o.plan.Interval)
	if got := o.deposited(Gold); got != after {
		t.Fatalf("期望停止后不再入库, before=%d after=%d", after, got)
	}
	if o.deposited(Wood) != 0 {
		t.Fatalf("期望采矿不产出木材")
	}
}

func TestHarvest_context结束时退出并清除标志(t *testing.T) {
	o := newFakeOwner(0, 0)
	p := NewPeasant(o)
	ctx, cancel := context.WithCancel(context.Background())
	p.StartCuttingWood(ctx)
	cancel()
	deadline := time.Now().Add(time.Second)
	for p.IsHarvesting() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if p.IsHarvesting() {
		t.Fatalf("期望 ctx 结束后循环退出")
	}
	p.StopHarvesting()
	if !p.StartMining(context.Background()) {
		t.Fatalf("期望退出后可以重新启动")
	}
	p.StopHarvesting()
}

func TestTryBuilding_买不起时不派出工人(t *testing.T) {
	o := newFakeOwner(10, 0)
	p := NewPeasant(o)
	if p.TryBuilding(context.Background(), unitconf.Farm) {
		t.Fatalf("期望资源不足时返回 false")
	}
	if o.buildingCount() != 0 {
		t.Fatalf("期望没有建筑")
	}
}

func TestTryBuilding_扣费并登记建筑(t *testing.T) {
	o := newFakeOwner(100, 30)
	p := NewPeasant(o)
	if !p.TryBuilding(context.Background(), unitconf.Farm) {
		t.Fatalf("期望派出建造工人")
	}
	if o.buildingCount() != 1 {
		t.Fatalf("期望登记 1 个建筑, got=%d", o.buildingCount())
	}
	if s := o.pool.Snapshot(); s.Gold != 20 || s.Wood != 10 {
		t.Fatalf("期望扣除农场成本, got=%+v", s)
	}
	if p.IsBuilding() {
		t.Fatalf("期望建造结束后清除标志")
	}
}

func TestTryBuilding_已在建造时工人跳过(t *testing.T) {
	o := newFakeOwner(1000, 1000)
	p := NewPeasant(o)
	if !p.Claim() {
		t.Fatalf("claim failed")
	}
	if !p.TryBuilding(context.Background(), unitconf.Farm) {
		t.Fatalf("期望买得起时返回已派出")
	}
	if o.buildingCount() != 0 {
		t.Fatalf("期望标志已置位时工人不建造")
	}
	if s := o.pool.Snapshot(); s.Gold != 1000 {
		t.Fatalf("期望没有扣费, got=%+v", s)
	}
}

func TestBuildClaimed_打断时退款并释放(t *testing.T) {
	o := newFakeOwner(100, 30)
	st := o.units[unitconf.Farm]
	st.BuildTime = time.Hour
	o.units[unitconf.Farm] = st
	p := NewPeasant(o)
	p.Claim()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	b, err := p.BuildClaimed(ctx, unitconf.Farm)
	if b != nil || !errors.Is(err, errx.ErrInterrupted) {
		t.Fatalf("期望被打断, b=%v err=%v", b, err)
	}
	if s := o.pool.Snapshot(); s.Gold != 100 || s.Wood != 30 {
		t.Fatalf("期望退还预留资源, got=%+v", s)
	}
	if !p.IsFree() {
		t.Fatalf("期望释放占用")
	}
}

func TestBuildClaimed_买不起返回业务错误(t *testing.T) {
	p := NewPeasant(newFakeOwner(0, 0))
	p.Claim()
	_, err := p.BuildClaimed(context.Background(), unitconf.Barracks)
	if !errors.Is(err, ErrCannotAfford) || !errx.IsBiz(err) {
		t.Fatalf("期望 ErrCannotAfford 业务错误, got=%v", err)
	}
}
