package base

import (
	"sync"
	"time"

	"BaseWars/internal/shared/event"
	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/internal/shared/simconfig"
)

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) Publish(e event.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) of(kind event.Kind) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// fastSim 是测试用的快节奏配置：没有开局采集者，训练和建造都是毫秒级。
func fastSim() simconfig.SimConfig {
	s := simconfig.Default().Sim
	s.StarterMiners, s.StarterWoodcutters = 0, 0
	s.HarvestInterval = 2 * time.Millisecond
	s.AttackWaitMin, s.AttackWaitMax = 0, time.Millisecond
	s.PollInterval = 5 * time.Millisecond
	s.Seed = 11
	return s
}

func fastUnits() unitconf.Table {
	tbl := unitconf.Default()
	for k, st := range tbl {
		st.BuildTime = time.Millisecond
		tbl[k] = st
	}
	return tbl
}

func newTestBase(name string, sim simconfig.SimConfig, tbl unitconf.Table) (*Base, *recorder) {
	rec := &recorder{}
	b := New(name, Deps{Units: tbl, Sim: sim, Events: rec})
	return b, rec
}
