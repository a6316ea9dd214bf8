package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const DefaultRelPath = "configs/conf.yml"

// Load 用 viper 读取 path 并解码到 out。
// onChange 非空时开启 fsnotify 监听，文件变更后重新解码到一个新对象再回调，out 本身不被并发改写。
func Load(path string, out any, onChange func(v *viper.Viper)) error {
	if !fileExist(path) {
		return fmt.Errorf("config file not exist, path=%s", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(v, out); err != nil {
		return err
	}

	if onChange != nil {
		v.OnConfigChange(func(e fsnotify.Event) {
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				return
			}
			onChange(v)
		})
		v.WatchConfig()
	}
	return nil
}

// Decode 统一的解码入口：支持 "150ms" 形式的时长和逗号分隔的列表。
func Decode(v *viper.Viper, out any) error {
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(out, hook); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// Find 解析配置路径：显式传入优先，否则从当前目录向上查找 configs/conf.yml。
// 找不到时返回空串，由调用方决定使用默认配置。
func Find(explicit string) string {
	if explicit != "" {
		if filepath.IsAbs(explicit) {
			return explicit
		}
		if wd, err := os.Getwd(); err == nil {
			return filepath.Join(wd, explicit)
		}
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, DefaultRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func fileExist(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
