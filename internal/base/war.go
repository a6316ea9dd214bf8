package base

import (
	"context"
	"errors"
	"strconv"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"BaseWars/internal/base/army"
	"BaseWars/internal/base/unit"
	"BaseWars/internal/shared/event"
	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/internal/war"
	"BaseWars/modules/kit/errx"
	"BaseWars/modules/kit/logx"
	"BaseWars/modules/kit/tracex"
)

type Outcome int

const (
	Undecided Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "undecided"
}

// AssembleArmy 把当前存活的农民和步兵编入军队，然后在屏障上报告集结完成。
func (b *Base) AssembleArmy(barrier *war.Barrier) int {
	members := make([]*unit.Personnel, 0, b.peasants.Len()+b.footmen.Len())
	for _, p := range b.peasants.Snapshot() {
		members = append(members, &p.Personnel)
	}
	for _, f := range b.footmen.Snapshot() {
		members = append(members, &f.Personnel)
	}
	b.warID.Store(barrier.ID)
	b.army.Fill(members)
	n := b.army.Len()

	b.publish(event.Event{Kind: event.ArmyAssembled, WarID: barrier.ID, Detail: strconv.Itoa(n)})
	b.log.Info("army assembled", zap.String("war_id", barrier.ID), zap.Int("size", n))
	barrier.Assembled()
	return n
}

// GoToWar 在屏障会合后让每名己方战斗单位各自作战，直到某一方军队被清空。
// 会合前不会有任何出手；ctx 结束时放弃本场并返回 Undecided。
func (b *Base) GoToWar(ctx context.Context, enemy *army.Army, barrier *war.Barrier) (Outcome, error) {
	ctx = tracex.WithWarID(ctx, barrier.ID)
	log := b.log.WithContext(ctx)

	if err := barrier.Rendezvous(ctx); err != nil {
		logx.ReportSysErrorWithLoggerContext(ctx, b.log, logx.NewSysLog("war_rendezvous", err))
		return Undecided, err
	}
	b.publish(event.Event{Kind: event.WarStarted, WarID: barrier.ID, Detail: enemy.Base()})
	log.Info("war started", zap.String("enemy", enemy.Base()), zap.Int("size", b.army.Len()))

	if b.army.IsEmpty() {
		b.publish(event.Event{Kind: event.WarFinished, WarID: barrier.ID, Detail: Lost.String()})
		return Lost, nil
	}

	fightCtx, stop := context.WithCancel(ctx)
	defer stop()
	var wg conc.WaitGroup
	for _, p := range b.army.Snapshot() {
		wg.Go(func() {
			err := b.engine.StartWar(fightCtx, p, enemy)
			if err != nil && !errors.Is(err, errx.ErrInterrupted) {
				log.Warn("combatant stopped", zap.Int64("id", p.ID()), zap.Error(err))
			}
		})
	}

	var outcome Outcome
	select {
	case <-b.army.Emptied():
		outcome = Lost
	case <-enemy.Emptied():
		outcome = Won
	case <-ctx.Done():
		stop()
		wg.Wait()
		err := interrupted(ctx, "war")
		logx.ReportSysErrorWithLoggerContext(ctx, b.log, logx.NewSysLog("go_to_war", err))
		return Undecided, err
	}
	wg.Wait()

	b.publish(event.Event{Kind: event.WarFinished, WarID: barrier.ID, Detail: outcome.String()})
	log.Info("war finished", zap.String("outcome", outcome.String()), zap.Int("survivors", b.army.Len()))
	return outcome, nil
}

// SignalPersonnelDeath 由战斗引擎在单位阵亡后调用一次：释放人口、移出军队和名册。
func (b *Base) SignalPersonnelDeath(p *unit.Personnel) {
	b.pool.UpdateCapacity(-p.FoodCost())
	b.army.Remove(p.ID())
	switch p.Kind() {
	case unitconf.Peasant:
		b.peasants.Remove(p.ID())
	case unitconf.Footman:
		b.footmen.Remove(p.ID())
	}
	b.metrics.Death(b.name, string(p.Kind()))
	warID, _ := b.warID.Load().(string)
	b.publish(event.Event{Kind: event.PersonnelDeath, WarID: warID, Unit: string(p.Kind()), UnitID: p.ID()})
	b.log.Debug("personnel died", zap.String("kind", string(p.Kind())), zap.Int64("id", p.ID()), zap.Int("army_left", b.army.Len()))
}
