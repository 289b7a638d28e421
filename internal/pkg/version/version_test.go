package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectedValuesWin(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "v1.2.3", "abc1234", "2026-10-17"
	info := Get()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "v1.2.3, commit abc1234, 构建于 2026-10-17", info.String())
	assert.NotEmpty(t, info.GoVersion)
}

func TestBuildInfoString(t *testing.T) {
	testCases := []struct {
		name string
		info BuildInfo
		want string
	}{
		{name: "只有版本号", info: BuildInfo{Version: "dev", Commit: "unknown", Date: "unknown"}, want: "dev"},
		{name: "带提交", info: BuildInfo{Version: "v1", Commit: "deadbee", Date: ""}, want: "v1, commit deadbee"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.info.String())
		})
	}
}

func TestShortCommit(t *testing.T) {
	assert.Equal(t, "0123456", shortCommit("0123456789abcdef"))
	assert.Equal(t, "abc", shortCommit("abc"))
}
