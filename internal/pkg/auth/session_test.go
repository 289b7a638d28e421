package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/idgen"
)

var testSecret = []byte("test-secret")

type recordingPrompter struct {
	reasons []string
}

func (p *recordingPrompter) RequireLogin(reason string) {
	p.reasons = append(p.reasons, reason)
}

func mustToken(t *testing.T, viewer model.Viewer) string {
	t.Helper()
	require.NoError(t, idgen.InitSqidsEncoderWithSeed("session-test"))
	token, err := GenerateToken(viewer, testSecret, time.Minute)
	require.NoError(t, err)
	return token
}

func TestSessionFromToken(t *testing.T) {
	tests := []struct {
		name       string
		viewer     model.Viewer
		wantDelete bool
	}{
		{"管理员可以删除评论", model.Viewer{UserID: 1, Nickname: "安知鱼", UserGroupID: model.AdminUserGroupID}, true},
		{"普通用户不能删除评论", model.Viewer{UserID: 7, Nickname: "访客", UserGroupID: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := mustToken(t, tt.viewer)

			s, err := NewSessionFromToken(token, testSecret, nil)
			require.NoError(t, err)

			v, ok := s.Viewer()
			require.True(t, ok)
			assert.Equal(t, tt.viewer.UserID, v.UserID)
			assert.Equal(t, tt.viewer.Nickname, v.Nickname)
			assert.Equal(t, tt.wantDelete, s.CanDelete())
			assert.Equal(t, token, s.Token())
		})
	}
}

func TestSessionAnonymousAndLogout(t *testing.T) {
	p := &recordingPrompter{}
	s, err := NewSessionFromToken("", testSecret, p)
	require.NoError(t, err)

	_, ok := s.Viewer()
	assert.False(t, ok)
	assert.False(t, s.CanDelete())

	s.PromptLogin()
	assert.Len(t, p.reasons, 1)

	require.NoError(t, s.Login(mustToken(t, model.Viewer{UserID: 3, UserGroupID: 2}), testSecret))
	_, ok = s.Viewer()
	assert.True(t, ok)

	s.Logout()
	_, ok = s.Viewer()
	assert.False(t, ok)
	assert.Equal(t, "", s.Token())
}

func TestSessionRejectsBadToken(t *testing.T) {
	token := mustToken(t, model.Viewer{UserID: 3, UserGroupID: 2})

	_, err := NewSessionFromToken(token, []byte("other-secret"), nil)
	assert.True(t, errors.Is(err, constant.ErrInvalidToken))

	s := NewAnonymousSession(nil)
	err = s.Login("not-a-jwt", testSecret)
	assert.True(t, errors.Is(err, constant.ErrInvalidToken))
	_, ok := s.Viewer()
	assert.False(t, ok, "登录失败后身份保持不变")
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken(model.Viewer{UserID: 1}, nil, time.Minute)
	assert.Error(t, err)
}
