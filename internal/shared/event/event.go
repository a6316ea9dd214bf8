// Package event 是基地向外广播的事件：战报记录与实时推送都订阅它。
package event

import "time"

type Kind string

const (
	UnitTrained      Kind = "unit_trained"
	BuildingFinished Kind = "building_finished"
	HarvestStarted   Kind = "harvest_started"
	BaseReady        Kind = "base_ready"
	ArmyAssembled    Kind = "army_assembled"
	WarStarted       Kind = "war_started"
	PersonnelDeath   Kind = "personnel_death"
	WarFinished      Kind = "war_finished"
)

type Event struct {
	Kind   Kind      `json:"kind"`
	Base   string    `json:"base"`
	WarID  string    `json:"war_id,omitempty"`
	Unit   string    `json:"unit,omitempty"`
	UnitID int64     `json:"unit_id,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// Sink 的实现不得阻塞调用方太久：Publish 在模拟的热路径上被调用。
type Sink interface {
	Publish(e Event)
}

type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }

// Fanout 依次投递给每个非 nil 的 Sink。
type Fanout []Sink

func (f Fanout) Publish(e Event) {
	for _, s := range f {
		if s != nil {
			s.Publish(e)
		}
	}
}

type nop struct{}

func (nop) Publish(Event) {}

func Nop() Sink { return nop{} }
