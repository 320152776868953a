// Package command 提供 pexpand 子命令共用的 flags、变量表组装与错误提示。
package command

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/internal/config"
	"github.com/lwmacct/251207-go-pkg-paramexp/internal/envfile"
	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// maxSuggestDistance 提示相近名称时允许的最大编辑距离。
const maxSuggestDistance = 3

// Flags 返回各子命令共用的 flags。每次调用返回新实例。
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    config.FlagConfig,
			Aliases: []string{"c"},
			Usage:   "配置文件路径 (默认按 ./.pexpand.yaml、~/.pexpand.yaml、/etc/pexpand/config.yaml 查找)",
		},
		&cli.BoolFlag{
			Name:  config.FlagStrict,
			Value: Defaults.Strict,
			Usage: "引用未设置的变量时报错",
		},
		&cli.BoolFlag{
			Name:  config.FlagNoEnviron,
			Value: !Defaults.Environ,
			Usage: "不以进程环境变量作为初始变量表",
		},
		&cli.StringSliceFlag{
			Name:    config.FlagEnvFile,
			Aliases: []string{"e"},
			Usage:   "变量文件 (YAML/JSON)，可重复，后者覆盖前者",
		},
		&cli.StringMapFlag{
			Name:  config.FlagVar,
			Usage: "定义变量 name=value，可重复，优先级最高",
		},
	}
}

// BuildEnv 按配置组装变量表：进程环境变量 → 变量文件 → vars。
func BuildEnv(cfg *config.Config) (paramexp.Env, error) {
	env := paramexp.Env{}
	if cfg.Environ {
		env = paramexp.Environ()
	}

	for _, path := range cfg.EnvFiles {
		fileEnv, err := envfile.Load(path)
		if err != nil {
			return nil, err
		}
		maps.Copy(env, fileEnv)
	}

	for name, value := range cfg.Vars {
		if !paramexp.IsName(name) {
			return nil, fmt.Errorf("invalid variable name %q", name)
		}
		env[name] = value
	}

	return env, nil
}

// ExpandOptions 返回配置对应的展开选项。
func ExpandOptions(cfg *config.Config) []paramexp.Option {
	return []paramexp.Option{paramexp.WithStrictIf(cfg.Strict)}
}

// Setup 加载配置并组装变量表，供子命令 Action 使用。
func Setup(cmd *cli.Command) (*config.Config, paramexp.Env, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, nil, err
	}

	env, err := BuildEnv(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, env, nil
}

// Explain 为 [paramexp.NullError] 追加相近变量名的提示，其他错误原样返回。
func Explain(err error, env paramexp.Env) error {
	var nullErr *paramexp.NullError
	if !errors.As(err, &nullErr) {
		return err
	}

	if name := Suggest(nullErr.Name, slices.Sorted(maps.Keys(env))); name != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, name)
	}

	return err
}

// Suggest 在 candidates 中查找与 name 最接近的名称，没有足够接近的返回空串。
//
// 先按子序列模糊匹配排序，再退回编辑距离；均忽略大小写。
func Suggest(name string, candidates []string) string {
	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Stable(ranks)
	for _, r := range ranks {
		if r.Target != name && r.Distance <= maxSuggestDistance {
			return r.Target
		}
	}

	best, bestDist := "", maxSuggestDistance+1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		if c == name {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}
