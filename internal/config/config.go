// Package config 提供 pexpand 的配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - --config 指定，或按 DefaultPaths 搜索
//  3. 环境变量 - PEXPAND_ 前缀，如 PEXPAND_RENDER_DEBOUNCE
//  4. CLI flags - 仅当用户明确指定时覆盖
package config

import (
	"time"
)

// Config 应用配置。
type Config struct {
	Strict   bool              `json:"strict" desc:"严格模式：引用未设置的变量时报错"`
	Environ  bool              `json:"environ" desc:"以进程环境变量快照作为初始变量表"`
	EnvFiles []string          `json:"env-files" desc:"变量文件 (YAML/JSON)，按顺序覆盖"`
	Vars     map[string]string `json:"vars" desc:"直接定义的变量，优先级最高"`
	Render   RenderConfig      `json:"render" desc:"render 命令配置"`
}

// RenderConfig render 命令配置。
type RenderConfig struct {
	Output   string        `json:"output" desc:"输出文件，为空时写到标准输出"`
	Debounce time.Duration `json:"debounce" desc:"监听模式下的防抖间隔"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Strict:  false,
		Environ: true,
		Render: RenderConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}
