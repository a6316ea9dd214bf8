package unit

import (
	"sync"
	"time"

	"BaseWars/internal/base/resource"
	"BaseWars/internal/shared/gameconfig/unitconf"
)

type fakeOwner struct {
	name  string
	pool  *resource.Pool
	units unitconf.Table
	plan  HarvestPlan

	mu        sync.Mutex
	deposits  map[Resource]int
	buildings []*Building
	deaths    []*Personnel
}

func newFakeOwner(gold, wood int) *fakeOwner {
	tbl := unitconf.Default()
	for k, st := range tbl {
		st.BuildTime = 5 * time.Millisecond
		tbl[k] = st
	}
	return &fakeOwner{
		name:     "test",
		pool:     resource.NewPool(gold, wood, 100),
		units:    tbl,
		plan:     HarvestPlan{Interval: 5 * time.Millisecond, Yield: 10},
		deposits: make(map[Resource]int),
	}
}

func (o *fakeOwner) Name() string { return o.name }
func (o *fakeOwner) Pool() *resource.Pool { return o.pool }
func (o *fakeOwner) Units() unitconf.Table { return o.units }
func (o *fakeOwner) Harvest() HarvestPlan { return o.plan }

func (o *fakeOwner) Deposit(res Resource, n int) {
	o.mu.Lock()
	o.deposits[res] += n
	o.mu.Unlock()
	if res == Gold {
		o.pool.AddGold(n)
	} else {
		o.pool.AddWood(n)
	}
}

func (o *fakeOwner) AddBuilding(b *Building) {
	o.mu.Lock()
	o.buildings = append(o.buildings, b)
	o.mu.Unlock()
}

func (o *fakeOwner) SignalPersonnelDeath(p *Personnel) {
	o.mu.Lock()
	o.deaths = append(o.deaths, p)
	o.mu.Unlock()
}

func (o *fakeOwner) deposited(res Resource) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.deposits[res]
}

func (o *fakeOwner) buildingCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.buildings)
}
