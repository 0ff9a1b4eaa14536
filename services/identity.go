// file: services/identity.go
package services

import (
	"context"
	"errors"

	"vibebuild/apperrors"
	"vibebuild/models"

	"gorm.io/gorm"
)

// Actor 每次调用显式传入的主体身份。核心服务不读取任何全局凭证，
// 实名标记由调用方（控制器层）随调用提供
type Actor struct {
	UserID   uint32
	Username string
	Verified bool
}

type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// ActorOf 按用户 ID 组装 Actor，供控制器在鉴权后调用
func (s *IdentityService) ActorOf(ctx context.Context, userID uint32) (Actor, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Actor{}, apperrors.New(apperrors.NotFound, "user not found")
		}
		return Actor{}, err
	}
	if user.Status == models.UserStatusBanned {
		return Actor{}, apperrors.New(apperrors.Permission, "user is banned")
	}
	return Actor{UserID: user.ID, Username: user.Username, Verified: user.Verified}, nil
}
