package unit

import (
	"context"
	"time"

	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/internal/shared/idgen"
)

// Building 建成后不可变。
type Building struct {
	id         int64
	Kind       unitconf.Kind
	OwnerName  string
	FinishedAt time.Time
}

func (b *Building) ID() int64 { return b.id }

// TryBuilding 在买得起 kind 时派出一个一次性建造工人并等待它结束，返回是否派出。
// 不检查也不改变采集标志：正在采集的农民会同时采集和建造。
func (p *Peasant) TryBuilding(ctx context.Context, kind unitconf.Kind) bool {
	st, ok := p.owner.Units().Lookup(kind)
	if !ok || !p.owner.Pool().CanBuild(st.GoldCost, st.WoodCost) {
		return false
	}
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		if !p.building.CompareAndSwap(false, true) {
			return
		}
		defer p.building.Store(false)
		_, _ = p.construct(ctx, kind, st)
	}()
	<-finished
	return true
}

// BuildClaimed 为已经 Claim 过的农民执行建造，结束时释放占用。
func (p *Peasant) BuildClaimed(ctx context.Context, kind unitconf.Kind) (*Building, error) {
	defer p.Release()
	st, ok := p.owner.Units().Lookup(kind)
	if !ok {
		return nil, ErrUnknownKind.WithData("kind", kind)
	}
	return p.construct(ctx, kind, st)
}

// construct 预留资源、等待建造时长并登记建筑。被打断时退还已预留的资源。
func (p *Peasant) construct(ctx context.Context, kind unitconf.Kind, st unitconf.Stats) (*Building, error) {
	pool := p.owner.Pool()
	if !pool.TryReserve(st.GoldCost, st.WoodCost, 0) {
		return nil, ErrCannotAfford.WithData("kind", kind)
	}
	if err := Sleep(ctx, st.BuildTime); err != nil {
		pool.AddGold(st.GoldCost)
		pool.AddWood(st.WoodCost)
		return nil, err
	}
	b := &Building{id: idgen.Next(), Kind: kind, OwnerName: p.owner.Name(), FinishedAt: time.Now()}
	p.owner.AddBuilding(b)
	return b, nil
}
