/*
 * @Description: 统一配置管理 (go-ini 文件 + 环境变量覆盖，手动加载)
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-17 09:12:40
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// DefaultFilePath 默认配置文件位置
const DefaultFilePath = "data/conf.ini"

const (
	KeyRemoteBaseURL        = "Remote.BaseURL"
	KeyRemoteToken          = "Remote.Token"
	KeyRemoteTimeoutSeconds = "Remote.TimeoutSeconds"
	KeyRemoteRateLimit      = "Remote.RateLimit"

	KeyMaxCommentLength = "Interaction.MaxCommentLength"
	KeyRefreshPolicy    = "Interaction.RefreshPolicy"

	KeyScrollDebounceMS    = "ScrollSpy.DebounceMS"
	KeyScrollLookahead     = "ScrollSpy.Lookahead"
	KeyScrollNavUpperRatio = "ScrollSpy.NavUpperRatio"
	KeyScrollHeaderMargin  = "ScrollSpy.HeaderMargin"
	KeyScrollNarrowWidth   = "ScrollSpy.NarrowWidth"

	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"
	KeyCacheTTL      = "Cache.TTLSeconds"

	KeyJWTSecret = "Auth.JWTSecret"
	KeySqidsSeed = "Auth.SqidsSeed"

	KeyMockPort = "Mock.Port"
)

// 定义所有已知的配置键，只有这些键会被环境变量覆盖
var allKeys = []string{
	KeyRemoteBaseURL, KeyRemoteToken, KeyRemoteTimeoutSeconds, KeyRemoteRateLimit,
	KeyMaxCommentLength, KeyRefreshPolicy,
	KeyScrollDebounceMS, KeyScrollLookahead, KeyScrollNavUpperRatio, KeyScrollHeaderMargin, KeyScrollNarrowWidth,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB, KeyCacheTTL,
	KeyJWTSecret, KeySqidsSeed,
	KeyMockPort,
}

// 内部默认值，文件和环境变量都没有提供时生效
var defaults = map[string]interface{}{
	KeyRemoteBaseURL:        "http://127.0.0.1:8091/api/public",
	KeyRemoteTimeoutSeconds: 10,
	KeyRemoteRateLimit:      10,
	KeyMaxCommentLength:     1000,
	KeyRefreshPolicy:        "replace",
	KeyScrollDebounceMS:     50,
	KeyScrollLookahead:      300,
	KeyScrollNavUpperRatio:  0.6,
	KeyScrollHeaderMargin:   24,
	KeyScrollNarrowWidth:    1024,
	KeyRedisDB:              0,
	KeyCacheTTL:             60,
	KeyJWTSecret:            "anheyu-interact-dev",
	KeyMockPort:             8091,
}

type Config struct {
	vp *viper.Viper
}

// NewConfig 手动加载配置：内部默认值 → ini 文件 → 环境变量，后者覆盖前者。
// filePath 为空时使用 data/conf.ini，文件不存在时自动创建。
func NewConfig(filePath string) (*Config, error) {
	vp := viper.New()
	if filePath == "" {
		filePath = DefaultFilePath
	}
	for key, value := range defaults {
		vp.SetDefault(key, value)
	}

	// --- 步骤 1: 使用 go-ini 从文件加载配置 ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				// 留空的键不覆盖内部默认值
				if strings.TrimSpace(key.Value()) == "" {
					continue
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了配置。", filePath)
	}

	// --- 步骤 2: 手动检查并覆盖环境变量，例如 ANHEYU_REMOTE_BASEURL ---
	envReplacer := strings.NewReplacer(".", "_")
	envPrefix := "ANHEYU"

	for _, key := range allKeys {
		envVarName := fmt.Sprintf("%s_%s", envPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

func (c *Config) GetFloat64(key string) float64 {
	return c.vp.GetFloat64(key)
}

// Set 覆盖单个配置项，命令行参数使用
func (c *Config) Set(key string, value interface{}) {
	c.vp.Set(key, value)
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[Remote]
BaseURL = http://127.0.0.1:8091/api/public
Token =
TimeoutSeconds = 10
RateLimit = 10

[Interaction]
MaxCommentLength = 1000
# replace: 以服务端为准；merge: 保留本地已确认但服务端尚未返回的评论
RefreshPolicy = replace

[ScrollSpy]
DebounceMS = 50
Lookahead = 300
NavUpperRatio = 0.6
HeaderMargin = 24
NarrowWidth = 1024

# Redis 配置（可选）
# 如果不配置或留空 Addr，将自动使用内存缓存
[Redis]
Addr =
Password =
DB = 0

[Cache]
TTLSeconds = 60

[Auth]
JWTSecret =
SqidsSeed =

[Mock]
Port = 8091
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
