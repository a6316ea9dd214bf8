package simconfig

import (
	"time"

	"BaseWars/internal/shared/gameconfig/unitconf"
)

type Config struct {
	Log    LogConfig                    `yaml:"log" mapstructure:"log"`
	Sim    SimConfig                    `yaml:"sim" mapstructure:"sim"`
	Units  map[string]unitconf.Override `yaml:"units" mapstructure:"units"`
	HTTP   HTTPConfig                   `yaml:"http" mapstructure:"http"`
	Report ReportConfig                 `yaml:"report" mapstructure:"report"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level" env:"BASEWARS_LOG_LEVEL"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
	Quiet      bool   `yaml:"quiet" mapstructure:"quiet"` // 关闭控制台输出
}

type SimConfig struct {
	BaseNames []string `yaml:"base_names" mapstructure:"base_names"`
	// Variant 1：农场/伐木场/铁匠铺 + 农民；Variant 2 追加兵营与步兵生产。
	Variant int   `yaml:"variant" mapstructure:"variant" env:"BASEWARS_VARIANT"`
	Seed    int64 `yaml:"seed" mapstructure:"seed" env:"BASEWARS_SEED"` // 0 表示随机

	StartGold          int `yaml:"start_gold" mapstructure:"start_gold"`
	StartWood          int `yaml:"start_wood" mapstructure:"start_wood"`
	FoodLimit          int `yaml:"food_limit" mapstructure:"food_limit"`
	StarterPeasants    int `yaml:"starter_peasants" mapstructure:"starter_peasants"`
	StarterMiners      int `yaml:"starter_miners" mapstructure:"starter_miners"`
	StarterWoodcutters int `yaml:"starter_woodcutters" mapstructure:"starter_woodcutters"`
	PeasantGoal        int `yaml:"peasant_goal" mapstructure:"peasant_goal"`
	FootmanGoal        int `yaml:"footman_goal" mapstructure:"footman_goal"`

	HarvestInterval time.Duration `yaml:"harvest_interval" mapstructure:"harvest_interval"`
	HarvestYield    int           `yaml:"harvest_yield" mapstructure:"harvest_yield"`
	AttackWaitMin   time.Duration `yaml:"attack_wait_min" mapstructure:"attack_wait_min"`
	AttackWaitMax   time.Duration `yaml:"attack_wait_max" mapstructure:"attack_wait_max"`
	// PollInterval 是驱动器在没有任何变更通知时的兜底轮询周期。
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	// Timeout 限制整个模拟（准备 + 战斗）的最长时间，0 表示不限制。
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type HTTPConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr    string `yaml:"addr" mapstructure:"addr" env:"BASEWARS_HTTP_ADDR"`
}

type ReportConfig struct {
	// Driver: memory | sqlite | mongodb | mysql
	Driver  string        `yaml:"driver" mapstructure:"driver" env:"BASEWARS_REPORT_DRIVER"`
	SQLite  SQLiteConfig  `yaml:"sqlite" mapstructure:"sqlite"`
	MongoDB MongoDBConfig `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL   MySQLConfig   `yaml:"mysql" mapstructure:"mysql"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}
