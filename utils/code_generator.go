// file: utils/code_generator.go
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateInvitationCode 生成 12 位队伍邀请码
func GenerateInvitationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// GenerateDraftID 生成 AI 草稿的追踪 ID
func GenerateDraftID() string {
	return uuid.New().String()
}
