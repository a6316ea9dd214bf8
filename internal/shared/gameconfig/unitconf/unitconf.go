package unitconf

import (
	"fmt"
	"sort"
	"time"
)

// Kind 同时标识兵种与建筑种类。
type Kind string

const (
	Peasant    Kind = "peasant"
	Footman    Kind = "footman"
	Farm       Kind = "farm"
	Lumbermill Kind = "lumbermill"
	Blacksmith Kind = "blacksmith"
	Barracks   Kind = "barracks"
)

// Stats 是静态成本表的一行。BuildTime 对兵种是训练时长，对建筑是建造时长。
type Stats struct {
	GoldCost   int           `mapstructure:"gold_cost" json:"gold_cost"`
	WoodCost   int           `mapstructure:"wood_cost" json:"wood_cost"`
	FoodCost   int           `mapstructure:"food_cost" json:"food_cost"`
	BuildTime  time.Duration `mapstructure:"build_time" json:"build_time"`
	Health     int           `mapstructure:"health" json:"health"`
	AttackMin  int           `mapstructure:"attack_min" json:"attack_min"`
	AttackMax  int           `mapstructure:"attack_max" json:"attack_max"`
	FoodSupply int           `mapstructure:"food_supply" json:"food_supply"` // 建成后提升的人口上限
}

// Override 是配置文件里的局部覆盖，只改写出现的字段。
type Override struct {
	GoldCost   *int           `mapstructure:"gold_cost"`
	WoodCost   *int           `mapstructure:"wood_cost"`
	FoodCost   *int           `mapstructure:"food_cost"`
	BuildTime  *time.Duration `mapstructure:"build_time"`
	Health     *int           `mapstructure:"health"`
	AttackMin  *int           `mapstructure:"attack_min"`
	AttackMax  *int           `mapstructure:"attack_max"`
	FoodSupply *int           `mapstructure:"food_supply"`
}

// Table 是只读查找表，构造完成后不再修改，可以被多个 goroutine 并发读取。
type Table map[Kind]Stats

func Default() Table {
	return Table{
		Peasant:    {GoldCost: 50, FoodCost: 1, BuildTime: 500 * time.Millisecond, Health: 220, AttackMin: 5, AttackMax: 6},
		Footman:    {GoldCost: 120, FoodCost: 1, BuildTime: 800 * time.Millisecond, Health: 420, AttackMin: 8, AttackMax: 10},
		Farm:       {GoldCost: 80, WoodCost: 20, BuildTime: time.Second, FoodSupply: 4},
		Lumbermill: {GoldCost: 120, WoodCost: 40, BuildTime: 1500 * time.Millisecond},
		Blacksmith: {GoldCost: 140, WoodCost: 60, BuildTime: 1500 * time.Millisecond},
		Barracks:   {GoldCost: 160, WoodCost: 60, BuildTime: 2 * time.Second},
	}
}

func (t Table) Lookup(k Kind) (Stats, bool) {
	s, ok := t[k]
	return s, ok
}

// MustLookup 用于代码里写死的种类，缺失说明配置被改坏了。
func (t Table) MustLookup(k Kind) Stats {
	s, ok := t[k]
	if !ok {
		panic(fmt.Sprintf("unitconf: missing stats for kind=%s", k))
	}
	return s
}

// Apply 返回应用覆盖后的新表，原表不变。
func (t Table) Apply(overrides map[string]Override) (Table, error) {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	for name, o := range overrides {
		k := Kind(name)
		s, ok := out[k]
		if !ok {
			return nil, fmt.Errorf("unitconf: unknown kind %q", name)
		}
		setInt(&s.GoldCost, o.GoldCost)
		setInt(&s.WoodCost, o.WoodCost)
		setInt(&s.FoodCost, o.FoodCost)
		setInt(&s.Health, o.Health)
		setInt(&s.AttackMin, o.AttackMin)
		setInt(&s.AttackMax, o.AttackMax)
		setInt(&s.FoodSupply, o.FoodSupply)
		if o.BuildTime != nil {
			s.BuildTime = *o.BuildTime
		}
		out[k] = s
	}
	return out, out.Validate()
}

func (t Table) Validate() error {
	for k, s := range t {
		if s.GoldCost < 0 || s.WoodCost < 0 || s.FoodCost < 0 || s.BuildTime < 0 {
			return fmt.Errorf("unitconf: negative cost for kind=%s", k)
		}
		if s.AttackMin > s.AttackMax {
			return fmt.Errorf("unitconf: attack_min > attack_max for kind=%s", k)
		}
	}
	return nil
}

// Kinds 按名称排序，输出表格时保证顺序稳定。
func (t Table) Kinds() []Kind {
	out := make([]Kind, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (k Kind) IsUnit() bool {
	return k == Peasant || k == Footman
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
