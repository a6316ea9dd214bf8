package simconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"BaseWars/internal/shared/gameconfig/unitconf"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "conf.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write conf: %v", err)
	}
	return p
}

func TestLoad_空路径使用默认值(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.Sim.Variant != 2 || cfg.Sim.StarterPeasants != 5 || cfg.Sim.PeasantGoal != 10 {
		t.Fatalf("期望默认 sim 配置, got=%+v", cfg.Sim)
	}
	if cfg.Report.Driver != "memory" {
		t.Fatalf("期望默认 report driver=memory, got=%s", cfg.Report.Driver)
	}
}

func TestLoad_文件覆盖与时长解码(t *testing.T) {
	p := writeConf(t, `
sim:
  variant: 1
  harvest_interval: 20ms
  base_names: [A, B]
units:
  peasant:
    build_time: 5ms
    gold_cost: 30
`)
	cfg, err := Load(p, nil)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.Sim.Variant != 1 || cfg.Sim.HarvestInterval != 20*time.Millisecond {
		t.Fatalf("期望文件值生效, got=%+v", cfg.Sim)
	}
	if cfg.Sim.StartGold != 200 {
		t.Fatalf("期望未出现的字段保留默认, got=%d", cfg.Sim.StartGold)
	}
	tbl, err := cfg.UnitTable()
	if err != nil {
		t.Fatalf("unit table err=%v", err)
	}
	ps := tbl.MustLookup(unitconf.Peasant)
	if ps.GoldCost != 30 || ps.BuildTime != 5*time.Millisecond {
		t.Fatalf("期望 units 覆盖生效, got=%+v", ps)
	}
}

func TestLoad_环境变量优先于文件(t *testing.T) {
	p := writeConf(t, "sim:\n  variant: 1\n  seed: 3\n")
	t.Setenv("BASEWARS_VARIANT", "2")
	t.Setenv("BASEWARS_SEED", "42")
	t.Setenv("BASEWARS_LOG_LEVEL", "debug")
	cfg, err := Load(p, nil)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.Sim.Variant != 2 || cfg.Sim.Seed != 42 || cfg.Log.Level != "debug" {
		t.Fatalf("期望环境变量覆盖, got sim=%+v log=%+v", cfg.Sim, cfg.Log)
	}
}

func TestValidate_非法配置报错(t *testing.T) {
	cases := map[string]func(c *Config){
		"variant":     func(c *Config) { c.Sim.Variant = 3 },
		"bases":       func(c *Config) { c.Sim.BaseNames = []string{"solo"} },
		"harvesters":  func(c *Config) { c.Sim.StarterMiners = 9 },
		"attack wait": func(c *Config) { c.Sim.AttackWaitMax = 0; c.Sim.AttackWaitMin = time.Second },
	}
	for name, mutate := range cases {
		c := Default()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: 期望校验失败", name)
		}
	}
}

func TestLoad_文件不存在报错(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml"), nil); err == nil {
		t.Fatalf("期望文件不存在时报错")
	}
}
