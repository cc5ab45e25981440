package config

import _ "embed"

// DefaultConfigYAML 嵌入的默认配置，外部 config.yaml 可覆盖其中任意项
//
//go:embed default.yaml
var DefaultConfigYAML []byte
