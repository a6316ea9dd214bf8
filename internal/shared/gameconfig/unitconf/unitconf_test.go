package unitconf

import (
	"testing"
	"time"
)

func TestApply_只覆盖出现的字段(t *testing.T) {
	gold := 10
	bt := 5 * time.Millisecond
	tbl, err := Default().Apply(map[string]Override{
		"peasant": {GoldCost: &gold, BuildTime: &bt},
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	p := tbl.MustLookup(Peasant)
	if p.GoldCost != 10 || p.BuildTime != bt {
		t.Fatalf("期望覆盖 gold/build_time, got=%+v", p)
	}
	if p.Health != Default().MustLookup(Peasant).Health {
		t.Fatalf("期望未出现的字段保持默认, got=%+v", p)
	}
	if Default().MustLookup(Peasant).GoldCost != 50 {
		t.Fatalf("期望默认表不被修改")
	}
}

func TestApply_未知种类与非法攻击区间报错(t *testing.T) {
	if _, err := Default().Apply(map[string]Override{"dragon": {}}); err == nil {
		t.Fatalf("期望未知种类报错")
	}
	lo, hi := 9, 3
	if _, err := Default().Apply(map[string]Override{"footman": {AttackMin: &lo, AttackMax: &hi}}); err == nil {
		t.Fatalf("期望 attack_min > attack_max 报错")
	}
}
