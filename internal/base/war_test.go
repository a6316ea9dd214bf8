package base

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"BaseWars/internal/shared/event"
	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/internal/war"
	"BaseWars/modules/kit/errx"
)

// fragileUnits 让农民很快分出胜负。
func fragileUnits(hp, atkMin, atkMax int) unitconf.Table {
	tbl := fastUnits()
	st := tbl[unitconf.Peasant]
	st.Health, st.AttackMin, st.AttackMax = hp, atkMin, atkMax
	tbl[unitconf.Peasant] = st
	return tbl
}

func warPair(t *testing.T, nA, nB int, tbl unitconf.Table) (*Base, *Base, *recorder, *recorder) {
	t.Helper()
	simA, simB := fastSim(), fastSim()
	simA.StarterPeasants, simB.StarterPeasants = nA, nB
	simB.Seed = 12
	a, recA := newTestBase("A", simA, tbl)
	b, recB := newTestBase("B", simB, tbl)
	t.Cleanup(a.Close)
	t.Cleanup(b.Close)
	return a, b, recA, recB
}

func fight(t *testing.T, a, b *Base, barrier *war.Barrier) (Outcome, Outcome) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var (
		wg         sync.WaitGroup
		outA, outB Outcome
		errA, errB error
	)
	wg.Add(2)
	go func() { defer wg.Done(); outA, errA = a.GoToWar(ctx, b.Army(), barrier) }()
	go func() { defer wg.Done(); outB, errB = b.GoToWar(ctx, a.Army(), barrier) }()
	wg.Wait()
	if errA != nil || errB != nil {
		t.Fatalf("期望战斗正常结束, errA=%v errB=%v", errA, errB)
	}
	return outA, outB
}

func TestGoToWar_双方出征恰有一方被清空(t *testing.T) {
	a, b, _, _ := warPair(t, 4, 5, fragileUnits(20, 5, 6))
	barrier := war.NewBarrier("w-full")
	a.AssembleArmy(barrier)
	b.AssembleArmy(barrier)
	if err := barrier.WaitAssembled(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}

	outA, outB := fight(t, a, b, barrier)
	if outA == outB || outA == Undecided || outB == Undecided {
		t.Fatalf("期望一胜一负, A=%v B=%v", outA, outB)
	}
	winner, loser := a, b
	if outB == Won {
		winner, loser = b, a
	}
	if !loser.Army().IsEmpty() || winner.Army().Len() < 1 {
		t.Fatalf("期望败方清空、胜方至少 1 人, winner=%d loser=%d", winner.Army().Len(), loser.Army().Len())
	}
	if got := loser.Status().Peasants; got != 0 {
		t.Fatalf("期望败方名册同步移除阵亡单位, got=%d", got)
	}
	if got := loser.Pool().Snapshot().FoodUsed; got != 0 {
		t.Fatalf("期望败方人口随死亡归零, got=%d", got)
	}
}

func TestGoToWar_一对一一回合结束(t *testing.T) {
	a, b, recA, recB := warPair(t, 1, 1, fragileUnits(10, 10, 10))
	barrier := war.NewBarrier("w-1v1")
	a.AssembleArmy(barrier)
	b.AssembleArmy(barrier)

	outA, outB := fight(t, a, b, barrier)
	deaths := len(recA.of(event.PersonnelDeath)) + len(recB.of(event.PersonnelDeath))
	if deaths != 1 {
		t.Fatalf("期望只有一人阵亡, got=%d", deaths)
	}
	if a.Army().Len()+b.Army().Len() != 1 || outA == outB {
		t.Fatalf("期望一方剩 1 人另一方清空, A=%d(%v) B=%d(%v)", a.Army().Len(), outA, b.Army().Len(), outB)
	}
}

func TestGoToWar_会合前不出手(t *testing.T) {
	a, b, _, _ := warPair(t, 3, 3, fragileUnits(50, 5, 5))
	barrier := war.NewBarrier("w-gate")
	a.AssembleArmy(barrier)
	b.AssembleArmy(barrier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan Outcome, 1)
	go func() {
		out, _ := a.GoToWar(ctx, b.Army(), barrier)
		done <- out
	}()
	time.Sleep(30 * time.Millisecond)
	for _, m := range b.Army().Snapshot() {
		if m.Health() != 50 {
			t.Fatalf("期望对方会合前没有受到伤害, hp=%d", m.Health())
		}
	}

	out, err := b.GoToWar(ctx, a.Army(), barrier)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	select {
	case other := <-done:
		if other == out {
			t.Fatalf("期望一胜一负, got=%v/%v", other, out)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("期望战斗结束")
	}
}

func TestGoToWar_对方缺席时可以放弃(t *testing.T) {
	a, b, _, _ := warPair(t, 1, 1, fastUnits())
	barrier := war.NewBarrier("w-absent")
	a.AssembleArmy(barrier)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	out, err := a.GoToWar(ctx, b.Army(), barrier)
	if out != Undecided || !errors.Is(err, errx.ErrInterrupted) {
		t.Fatalf("期望放弃本场, out=%v err=%v", out, err)
	}
}

func TestSignalPersonnelDeath_扣人口并只移除一次(t *testing.T) {
	a, _, rec, _ := warPair(t, 3, 1, fastUnits())
	barrier := war.NewBarrier("w-death")
	a.AssembleArmy(barrier)

	victim := &a.Peasants()[0].Personnel
	before := a.Pool().Snapshot().FoodUsed
	a.SignalPersonnelDeath(victim)
	if got := a.Pool().Snapshot().FoodUsed; got != before-victim.FoodCost() {
		t.Fatalf("期望人口减少 %d, before=%d after=%d", victim.FoodCost(), before, got)
	}
	if a.Army().Len() != 2 || a.Status().Peasants != 2 {
		t.Fatalf("期望从军队和名册各移除一次, army=%d peasants=%d", a.Army().Len(), a.Status().Peasants)
	}
	if a.Army().Remove(victim.ID()) {
		t.Fatalf("期望成员已不在军队里")
	}
	if len(rec.of(event.PersonnelDeath)) != 1 {
		t.Fatalf("期望一条死亡事件")
	}
}
