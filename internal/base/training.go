package base

import (
	"context"

	"go.uber.org/zap"

	"BaseWars/internal/base/unit"
	"BaseWars/internal/shared/event"
	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/modules/kit/errx"
)

const CodeBuildingRequired errx.Code = "BUILDING_REQUIRED"

var ErrBuildingRequired = errx.NewBiz(CodeBuildingRequired, "缺少前置建筑")

// CreatePeasant 训练一名农民。没有结果时返回业务错误，调用方稍后重试即可。
func (b *Base) CreatePeasant(ctx context.Context) (*unit.Peasant, error) {
	var p *unit.Peasant
	err := b.train(ctx, unitconf.Peasant, func() int64 {
		p = unit.NewPeasant(b)
		b.peasants.Add(p)
		return p.ID()
	})
	return p, err
}

// CreateFootman 训练一名步兵，需要已建成兵营。
func (b *Base) CreateFootman(ctx context.Context) (*unit.Footman, error) {
	var f *unit.Footman
	err := b.train(ctx, unitconf.Footman, func() int64 {
		f = unit.NewFootman(b)
		b.footmen.Add(f)
		return f.ID()
	})
	return f, err
}

// train 是一笔训练事务：锁外预检，拿到训练槽后等待训练时长，再原子地扣费并占用人口，
// 最后在槽内生成单位。
func (b *Base) train(ctx context.Context, kind unitconf.Kind, mint func() int64) error {
	st, ok := b.units.Lookup(kind)
	if !ok {
		return unit.ErrUnknownKind.WithData("kind", kind)
	}
	if kind == unitconf.Footman && !b.HasBuilding(unitconf.Barracks) {
		b.metrics.Rejected(b.name, string(kind), "barracks")
		return ErrBuildingRequired.WithData("building", unitconf.Barracks)
	}
	if !b.pool.CanTrain(st.GoldCost, st.WoodCost, st.FoodCost) {
		b.metrics.Rejected(b.name, string(kind), "precheck")
		return unit.ErrCannotAfford.WithData("kind", kind)
	}

	select {
	case b.trainSlot <- struct{}{}:
	case <-ctx.Done():
		return interrupted(ctx, "train_slot")
	}
	defer func() { <-b.trainSlot }()

	b.training.Add(1)
	done := b.metrics.TrainingStarted(b.name)
	err := unit.Sleep(ctx, st.BuildTime)
	done()
	b.training.Add(-1)
	if err != nil {
		return err
	}
	if !b.pool.TryReserve(st.GoldCost, st.WoodCost, st.FoodCost) {
		// 等待期间资源被建造花掉了
		b.metrics.Rejected(b.name, string(kind), "reserve")
		return unit.ErrCannotAfford.WithData("kind", kind)
	}

	id := mint()
	b.metrics.Trained(b.name, string(kind))
	b.publish(event.Event{Kind: event.UnitTrained, Unit: string(kind), UnitID: id})
	b.log.Debug("unit trained", zap.String("kind", string(kind)), zap.Int64("id", id))
	b.changed.Broadcast()
	return nil
}

// TrainingInFlight 返回正在付费等待的训练数，恒为 0 或 1。
func (b *Base) TrainingInFlight() int {
	return int(b.training.Load())
}

func interrupted(ctx context.Context, wait string) error {
	return errx.ErrInterrupted.WithCause(ctx.Err()).WithData("wait", wait)
}
