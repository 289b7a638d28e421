package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// 这些变量将在构建时通过 ldflags 注入
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// BuildInfo 包含构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Get 汇总版本信息：ldflags 注入的值优先，其次读取 go 工具链记录的构建信息
func Get() BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if injectedMissing(info.Version, "dev") && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if injectedMissing(info.Commit, "unknown") {
				info.Commit = shortCommit(s.Value)
			}
		case "vcs.time":
			if injectedMissing(info.Date, "unknown") {
				info.Date = formatBuildTime(s.Value)
			}
		}
	}
	return info
}

func injectedMissing(v, placeholder string) bool {
	return v == "" || v == placeholder
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

func formatBuildTime(v string) string {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Format("2006-01-02 15:04:05")
	}
	return v
}

// String 返回一行版本描述，例如 "v1.2.3, commit abc1234, 构建于 2026-10-17 12:00:00"
func (b BuildInfo) String() string {
	parts := []string{b.Version}
	if !injectedMissing(b.Commit, "unknown") {
		parts = append(parts, fmt.Sprintf("commit %s", b.Commit))
	}
	if !injectedMissing(b.Date, "unknown") {
		parts = append(parts, fmt.Sprintf("构建于 %s", b.Date))
	}
	return strings.Join(parts, ", ")
}
