// Package unit 定义基地里的人员与建筑，以及采集、建造两类工人。
package unit

import (
	"context"
	"time"

	"BaseWars/internal/base/resource"
	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/modules/kit/errx"
)

type Resource string

const (
	Gold Resource = "gold"
	Wood Resource = "wood"
)

// HarvestPlan 是采集循环的节奏：每 Interval 入库 Yield。
type HarvestPlan struct {
	Interval time.Duration
	Yield    int
}

// Owner 是单位对所属基地的非拥有引用，只暴露单位回调需要的能力。
type Owner interface {
	Name() string
	Pool() *resource.Pool
	Units() unitconf.Table
	Harvest() HarvestPlan
	Deposit(res Resource, n int)
	AddBuilding(b *Building)
	SignalPersonnelDeath(p *Personnel)
}

// Sleep 等待 d，ctx 先结束时返回 ErrInterrupted。
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return interrupted(ctx)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return errx.ErrInterrupted.WithCause(ctx.Err())
	}
}

func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errx.ErrInterrupted.WithCause(err)
	}
	return nil
}
