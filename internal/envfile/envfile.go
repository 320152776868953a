// Package envfile 读取 YAML/JSON 格式的变量文件。
//
// 文件顶层必须是 name: value 映射，值保留源文本 (1.0 不会变成 1)，
// 空值 (key: 或 key: ~) 表示已设置但为空。
package envfile

import (
	"fmt"
	"log/slog"
	"os"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

// Load 读取 path 指向的变量文件。
func Load(path string) (paramexp.Env, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	env, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse env file %s: %w", path, err)
	}
	slog.Debug("Loaded env file", "path", path, "count", len(env))

	return env, nil
}

// Parse 解析变量文件内容。JSON 作为 YAML 的子集同样适用。
func Parse(content []byte) (paramexp.Env, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	env := paramexp.Env{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return env, nil // 空文件
	}

	root := doc.Content[0]
	if root.Kind != yamlv3.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if !paramexp.IsName(key.Value) {
			return nil, fmt.Errorf("line %d: invalid variable name %q", key.Line, key.Value)
		}
		if val.Kind != yamlv3.ScalarNode {
			return nil, fmt.Errorf("line %d: %s: value must be a scalar", val.Line, key.Value)
		}

		if val.Tag == "!!null" {
			env[key.Value] = ""
		} else {
			env[key.Value] = val.Value
		}
	}

	return env, nil
}
