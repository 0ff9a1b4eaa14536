// file: apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Kind 业务错误分类，调用方据此区分"时机不对"、"没有权限"和"已经做过"
type Kind string

const (
	Validation    Kind = "validation"     // 参数或时间窗口不合法
	StateConflict Kind = "state_conflict" // 与当前状态冲突（重复报名、队伍已满等）
	Permission    Kind = "permission"     // 身份或角色不允许
	NotFound      Kind = "not_found"      // 引用的实体不存在
)

// Error 带分类标签的业务错误
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf 返回错误的业务分类；非业务错误（数据库超时等）返回空串
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind 判断错误是否属于指定分类
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
