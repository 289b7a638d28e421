package remote

import (
	"fmt"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
)

// StatusError 表示远程接口返回了非成功的 code。
// HTTP 状态码为 200 但 body 中 code 不为 200 的情况同样归为此类。
type StatusError struct {
	HTTPStatus int
	Code       int
	Message    string
	Path       string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("远程接口 %s 返回失败 (http=%d, code=%d)", e.Path, e.HTTPStatus, e.Code)
	}
	return fmt.Sprintf("远程接口 %s 返回失败 (http=%d, code=%d): %s", e.Path, e.HTTPStatus, e.Code, e.Message)
}

// Unwrap 使 errors.Is(err, constant.ErrRemoteRejected) 成立
func (e *StatusError) Unwrap() error {
	return constant.ErrRemoteRejected
}
