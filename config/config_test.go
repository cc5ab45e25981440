package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "操作失败"
	testErr := errors.New("internal database error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}

func TestLoadConfigDefaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	// 内置默认配置
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "budgetbook", cfg.Database.DBName)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)

	// 业务配置兜底值
	assert.Equal(t, "INR", cfg.App.DefaultCurrency)
	assert.Equal(t, 90, cfg.App.MaxDateRangeDays)

	// JWT 过期时间换算
	assert.Equal(t, cfg.JWT.ExpireHours, int(cfg.JWT.ExpireTime.Hours()))
	assert.Same(t, cfg, GlobalConfig)
}
