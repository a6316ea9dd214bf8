package base

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"BaseWars/internal/base/unit"
	"BaseWars/internal/shared/event"
	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/modules/kit/errx"
	"BaseWars/modules/kit/logx"
)

// Stage 是建造驱动器的一个阶段：Kind 的建筑数达到 Count 才进入下一阶段。
type Stage struct {
	Kind  unitconf.Kind
	Count int
}

// Stages 返回建造顺序：农场×3 → 伐木场 → 铁匠铺 → （variant 2）兵营。
func Stages(variant int) []Stage {
	out := []Stage{
		{unitconf.Farm, 3},
		{unitconf.Lumbermill, 1},
		{unitconf.Blacksmith, 1},
	}
	if variant >= 2 {
		out = append(out, Stage{unitconf.Barracks, 1})
	}
	return out
}

// StartPreparation 并发运行建造、农民、（variant 2）步兵三个驱动器，全部完成后返回。
// 返回前停止所有采集。
func (b *Base) StartPreparation(ctx context.Context) error {
	log := b.log.WithContext(ctx)
	log.Info("preparation started", zap.Int("variant", b.sim.Variant))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.buildingDriver(gctx) })
	g.Go(func() error { return b.peasantDriver(gctx) })
	if b.sim.Variant >= 2 {
		g.Go(func() error { return b.footmanDriver(gctx) })
	}
	err := g.Wait()
	b.StopHarvesting()
	if err != nil {
		logx.ReportSysErrorWithLoggerContext(ctx, b.log, logx.NewSysLog("start_preparation", err))
		return err
	}

	s := b.pool.Snapshot()
	log.Info("base ready",
		zap.Int("peasants", b.peasants.Len()),
		zap.Int("footmen", b.footmen.Len()),
		zap.Int("buildings", b.buildings.Len()),
		zap.Int("gold", s.Gold),
		zap.Int("wood", s.Wood),
	)
	b.publish(event.Event{Kind: event.BaseReady})
	return nil
}

func (b *Base) buildingDriver(ctx context.Context) error {
	for _, st := range Stages(b.sim.Variant) {
		cost := b.units.MustLookup(st.Kind)
		for b.BuildingCount(st.Kind) < st.Count {
			changed := b.changed.C()
			if !b.pool.CanBuild(cost.GoldCost, cost.WoodCost) {
				if err := b.await(ctx, changed); err != nil {
					return err
				}
				continue
			}
			p, ok := b.claimFreePeasant()
			if !ok {
				if err := b.await(ctx, changed); err != nil {
					return err
				}
				continue
			}
			if _, err := p.BuildClaimed(ctx, st.Kind); err != nil {
				if !errx.IsBiz(err) {
					return err
				}
				logx.ReportBizWithLoggerContext(ctx, b.log, logx.NewBizLog("build", err.Error()))
				if err := b.await(ctx, changed); err != nil {
					return err
				}
			}
		}
		b.log.Debug("building stage complete", zap.String("kind", string(st.Kind)), zap.Int("count", st.Count))
	}
	return nil
}

// peasantDriver 训练农民直到名册达标，然后派出两名矿工和一名伐木工。
func (b *Base) peasantDriver(ctx context.Context) error {
	for b.peasants.Len() < b.sim.PeasantGoal {
		changed := b.changed.C()
		if _, err := b.CreatePeasant(ctx); err != nil {
			if !errx.IsBiz(err) {
				return err
			}
			if err := b.await(ctx, changed); err != nil {
				return err
			}
		}
	}
	for _, res := range []unit.Resource{unit.Gold, unit.Gold, unit.Wood} {
		if !b.commandHarvester(ctx, res) {
			break
		}
	}
	return nil
}

func (b *Base) footmanDriver(ctx context.Context) error {
	for b.footmen.Len() < b.sim.FootmanGoal {
		changed := b.changed.C()
		if _, err := b.CreateFootman(ctx); err != nil {
			if !errx.IsBiz(err) {
				return err
			}
			if err := b.await(ctx, changed); err != nil {
				return err
			}
		}
	}
	return nil
}
