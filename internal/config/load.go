package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

// AppName 用于生成默认配置路径。
const AppName = "pexpand"

// EnvPrefix 环境变量绑定前缀。
const EnvPrefix = "PEXPAND_"

// envKeys 可由环境变量覆盖的配置 key。vars 只能来自配置文件与 --var。
var envKeys = []string{"strict", "environ", "env-files", "render.output", "render.debounce"}

// CLI flag 名称，与配置 key 一致。
const (
	FlagConfig    = "config"
	FlagStrict    = "strict"
	FlagNoEnviron = "no-environ"
	FlagEnvFile   = "env-file"
	FlagVar       = "var"
	FlagOutput    = "output"
	FlagDebounce  = "debounce"
)

// DefaultPaths 返回默认配置文件的搜索顺序，先命中的文件生效。
//
//  1. ./.pexpand.yaml - 当前目录
//  2. ~/.pexpand.yaml - 用户主目录
//  3. /etc/pexpand/config.yaml - 系统级配置
func DefaultPaths() []string {
	paths := []string{"." + AppName + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+AppName+".yaml"))
	}

	return append(paths, "/etc/"+AppName+"/config.yaml")
}

// Load 读取配置并按优先级合并：默认值 → 配置文件 → 环境变量 → CLI flags。
//
// cmd 设置了 --config 时只读取该文件，文件不存在即报错；
// 否则按 [DefaultPaths] 查找，全部缺失时使用默认值。
// 配置文件在解析前会以进程环境变量快照做参数展开，引号保持原样。
func Load(cmd *cli.Command) (*Config, error) {
	cfg := DefaultConfig()

	paths := DefaultPaths()
	explicit := cmd != nil && cmd.IsSet(FlagConfig)
	if explicit {
		paths = []string{cmd.String(FlagConfig)}
	}

	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			if explicit {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}

			continue // 文件不存在或无法读取，尝试下一个路径
		}

		if err := loadFile(path, content, &cfg); err != nil {
			return nil, err
		}
		slog.Debug("Loaded config from file", "path", path)

		break
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cmd != nil {
		applyFlags(cmd, &cfg)
	}

	return &cfg, nil
}

func loadFile(path string, content []byte, cfg *Config) error {
	expanded, err := paramexp.ExpandEnv(string(content), paramexp.WithLiteralQuotes())
	if err != nil {
		return fmt.Errorf("expand template in %s: %w", path, err)
	}

	fileMap, err := parseConfigBytes(path, []byte(expanded))
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := decodeConfigMap(fileMap, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	return nil
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw map[string]any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]any{}, nil
	}

	return raw, nil
}

func decodeConfigMap(data map[string]any, out *Config) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		ErrorUnused:      true,
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	if err := decoder.Decode(data); err != nil {
		return errors.Join(errors.New("invalid config"), err)
	}

	return nil
}

// envBindings 生成环境变量名到配置 key 的映射。
//
// key 中的 "." 和 "-" 转为 "_" 后大写，再加前缀：
//   - render.debounce → PEXPAND_RENDER_DEBOUNCE
//   - env-files → PEXPAND_ENV_FILES
func envBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyEnv 将非空的绑定环境变量写入配置。
func applyEnv(cfg *Config) error {
	envMap := make(map[string]any)
	for envKey, path := range envBindings(EnvPrefix, envKeys) {
		if val := os.Getenv(envKey); val != "" {
			setByPath(envMap, path, val)
			slog.Debug("Loaded env binding", "env", envKey, "path", path)
		}
	}
	if len(envMap) == 0 {
		return nil
	}

	if err := decodeConfigMap(envMap, cfg); err != nil {
		return fmt.Errorf("decode environment: %w", err)
	}

	return nil
}

// setByPath 按 "a.b" 形式的路径写入嵌套 map。
func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := dst[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			dst[part] = next
		}
		dst = next
	}
	dst[parts[len(parts)-1]] = value
}

// applyFlags 将用户显式设置的 CLI flags 写入配置。
func applyFlags(cmd *cli.Command, cfg *Config) {
	if cmd.IsSet(FlagStrict) {
		cfg.Strict = cmd.Bool(FlagStrict)
	}
	if cmd.IsSet(FlagNoEnviron) {
		cfg.Environ = !cmd.Bool(FlagNoEnviron)
	}
	if cmd.IsSet(FlagEnvFile) {
		cfg.EnvFiles = append(cfg.EnvFiles, cmd.StringSlice(FlagEnvFile)...)
	}
	if cmd.IsSet(FlagVar) {
		if cfg.Vars == nil {
			cfg.Vars = make(map[string]string)
		}
		for name, value := range cmd.StringMap(FlagVar) {
			cfg.Vars[name] = value
		}
	}
	if cmd.IsSet(FlagOutput) {
		cfg.Render.Output = cmd.String(FlagOutput)
	}
	if cmd.IsSet(FlagDebounce) {
		cfg.Render.Debounce = cmd.Duration(FlagDebounce)
	}
}
