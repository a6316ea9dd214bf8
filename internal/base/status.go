package base

import (
	"BaseWars/internal/base/resource"
	"BaseWars/internal/base/unit"
	"BaseWars/internal/shared/gameconfig/unitconf"
)

// Status 是基地的只读快照，供 HTTP 与命令行展示。
type Status struct {
	Name       string                `json:"name"`
	Stock      resource.Stock        `json:"stock"`
	Peasants   int                   `json:"peasants"`
	Harvesting int                   `json:"harvesting"`
	Footmen    int                   `json:"footmen"`
	Buildings  map[unitconf.Kind]int `json:"buildings"`
	Army       int                   `json:"army"`
	Training   int                   `json:"training"`
}

func (b *Base) Status() Status {
	s := Status{
		Name:       b.name,
		Stock:      b.pool.Snapshot(),
		Peasants:   b.peasants.Len(),
		Harvesting: b.harvesterCount(),
		Footmen:    b.footmen.Len(),
		Buildings:  make(map[unitconf.Kind]int),
		Army:       b.army.Len(),
		Training:   b.TrainingInFlight(),
	}
	for _, bld := range b.buildings.Snapshot() {
		s.Buildings[bld.Kind]++
	}
	return s
}

var _ unit.Owner = (*Base)(nil)
