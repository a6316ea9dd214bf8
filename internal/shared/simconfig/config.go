package simconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"BaseWars/internal/shared/config"
	"BaseWars/internal/shared/gameconfig/unitconf"
)

// Default 是不依赖配置文件也能跑完一局的默认值。
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", MaxSize: 50, MaxBackups: 3, MaxAge: 7},
		Sim: SimConfig{
			BaseNames:          []string{"Lordaeron", "Durotar"},
			Variant:            2,
			StartGold:          200,
			StartWood:          100,
			FoodLimit:          12,
			StarterPeasants:    5,
			StarterMiners:      1,
			StarterWoodcutters: 1,
			PeasantGoal:        10,
			FootmanGoal:        10,
			HarvestInterval:    100 * time.Millisecond,
			HarvestYield:       10,
			AttackWaitMin:      100 * time.Millisecond,
			AttackWaitMax:      200 * time.Millisecond,
			PollInterval:       50 * time.Millisecond,
		},
		HTTP:   HTTPConfig{Addr: ":8080"},
		Report: ReportConfig{Driver: "memory", SQLite: SQLiteConfig{Path: "data/reports.db"}},
	}
}

// Load 读取配置文件（path 为空时只用默认值），再叠加环境变量覆盖。
// onChange 非空时监听文件变更，回调拿到重新解码的完整配置。
func Load(path string, onChange func(*Config)) (*Config, error) {
	cfg := Default()
	if path != "" {
		var watch func(v *viper.Viper)
		if onChange != nil {
			watch = func(v *viper.Viper) {
				next := Default()
				if err := config.Decode(v, next); err != nil {
					return
				}
				if err := applyEnv(next); err != nil {
					return
				}
				onChange(next)
			}
		}
		if err := config.Load(path, cfg, watch); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	s := c.Sim
	if len(s.BaseNames) != 2 {
		return fmt.Errorf("sim.base_names must name exactly two bases, got %d", len(s.BaseNames))
	}
	if s.Variant != 1 && s.Variant != 2 {
		return fmt.Errorf("sim.variant must be 1 or 2, got %d", s.Variant)
	}
	if s.StarterMiners+s.StarterWoodcutters > s.StarterPeasants {
		return fmt.Errorf("sim: %d starter harvesters exceed %d starter peasants",
			s.StarterMiners+s.StarterWoodcutters, s.StarterPeasants)
	}
	if s.HarvestInterval <= 0 || s.PollInterval <= 0 {
		return fmt.Errorf("sim: harvest_interval and poll_interval must be positive")
	}
	if s.AttackWaitMin < 0 || s.AttackWaitMax < s.AttackWaitMin {
		return fmt.Errorf("sim: invalid attack wait range [%v,%v]", s.AttackWaitMin, s.AttackWaitMax)
	}
	if _, err := c.UnitTable(); err != nil {
		return err
	}
	return nil
}

// UnitTable 返回叠加 units 覆盖后的成本表。
func (c *Config) UnitTable() (unitconf.Table, error) {
	return unitconf.Default().Apply(c.Units)
}
