package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// LoginPrompter 负责弹出登录框，由通知服务实现
type LoginPrompter interface {
	RequireLogin(reason string)
}

// Session 保存当前用户身份，供交互引擎查询
type Session struct {
	mu       sync.RWMutex
	viewer   *model.Viewer
	token    string
	prompter LoginPrompter
}

// NewAnonymousSession 创建未登录的会话
func NewAnonymousSession(prompter LoginPrompter) *Session {
	return &Session{prompter: prompter}
}

// NewSessionFromToken 解析 token 建立会话，token 为空时返回未登录会话
func NewSessionFromToken(token string, secretKey []byte, prompter LoginPrompter) (*Session, error) {
	s := NewAnonymousSession(prompter)
	if token == "" {
		return s, nil
	}
	if err := s.Login(token, secretKey); err != nil {
		return nil, err
	}
	return s, nil
}

// Login 用新的 token 替换当前身份，失败时保持原身份不变
func (s *Session) Login(token string, secretKey []byte) error {
	claims, err := ParseToken(token, secretKey)
	if err != nil {
		return fmt.Errorf("%w: %v", constant.ErrInvalidToken, err)
	}
	viewer, err := ViewerFromClaims(claims)
	if err != nil {
		return errors.Join(constant.ErrInvalidToken, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer = viewer
	s.token = token
	return nil
}

// Logout 清除当前身份
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer = nil
	s.token = ""
}

// Token 返回远程调用使用的 Bearer token
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Viewer 返回当前用户的副本
func (s *Session) Viewer() (*model.Viewer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.viewer == nil {
		return nil, false
	}
	v := *s.viewer
	return &v, true
}

// CanDelete 只有管理员可以删除评论
func (s *Session) CanDelete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewer.IsAdmin()
}

// PromptLogin 请求外部组件弹出登录框
func (s *Session) PromptLogin() {
	if s.prompter != nil {
		s.prompter.RequireLogin("请先登录")
	}
}
