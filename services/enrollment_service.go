// file: services/enrollment_service.go
package services

import (
	"context"
	"errors"
	"time"

	"vibebuild/apperrors"
	"vibebuild/models"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

func (s *EnrollmentService) loadHackathon(ctx context.Context, id uint32) (*models.Hackathon, error) {
	var h models.Hackathon
	if err := s.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "hackathon not found")
		}
		return nil, err
	}
	return &h, nil
}

// Register 报名参加黑客松。需实名、报名窗口开放、容量未满且未报过名；
// 未配置审批时直接置为 approved
func (s *EnrollmentService) Register(ctx context.Context, actor Actor, hackathonID uint32) (*models.Enrollment, error) {
	h, err := s.loadHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if DerivePhase(h, now) == PhaseEnded {
		return nil, apperrors.New(apperrors.Validation, "hackathon ended")
	}
	if !actor.Verified {
		return nil, apperrors.New(apperrors.Permission, "identity not verified")
	}
	if !RegistrationAllowed(h, now) {
		return nil, apperrors.New(apperrors.Validation, "registration is closed")
	}

	status := models.EnrollmentApproved
	if h.RequiresApproval {
		status = models.EnrollmentPending
	}
	enrollment := models.Enrollment{
		UserID:      actor.UserID,
		HackathonID: h.ID,
		Status:      status,
		JoinedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 条件更新原子占用名额：满员的并发报名在这里被数据库串行化拒绝
		res := tx.Model(&models.Hackathon{}).
			Where("id = ? AND (max_participants = 0 OR enrolled_count < max_participants)", h.ID).
			UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.New(apperrors.StateConflict, "hackathon is full")
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.New(apperrors.StateConflict, "already enrolled")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// SetStatus 主办方审批报名。pending 期间可反复调用，approved/rejected 是终态；
// 以相同终态重复调用视为幂等成功
func (s *EnrollmentService) SetStatus(ctx context.Context, actor Actor, enrollmentID uint32, target models.EnrollmentStatus) (*models.Enrollment, error) {
	if target != models.EnrollmentApproved && target != models.EnrollmentRejected {
		return nil, apperrors.Newf(apperrors.Validation, "invalid enrollment status %q", target)
	}

	var enrollment models.Enrollment
	if err := s.db.WithContext(ctx).First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "enrollment not found")
		}
		return nil, err
	}
	h, err := s.loadHackathon(ctx, enrollment.HackathonID)
	if err != nil {
		return nil, err
	}
	if h.OrganizerID != actor.UserID {
		return nil, apperrors.New(apperrors.Permission, "not the organizer of this hackathon")
	}
	if DerivePhase(h, time.Now()) == PhaseEnded {
		return nil, apperrors.New(apperrors.Validation, "hackathon ended")
	}

	if enrollment.Status == target {
		return &enrollment, nil
	}

	// 带状态守卫的条件更新：并发的 approve/reject 在数据库层串行化，
	// 只有仍处 pending 的那次写入生效，终态不会被覆盖
	res := s.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("id = ? AND status = ?", enrollmentID, models.EnrollmentPending).
		Update("status", target)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// 别的审批抢先落了终态，重读判定是幂等成功还是冲突
		if err := s.db.WithContext(ctx).First(&enrollment, enrollmentID).Error; err != nil {
			return nil, err
		}
		if enrollment.Status == target {
			return &enrollment, nil
		}
		// 拒绝后不存在回到激活态的路径，重新报名是另一条业务
		return nil, apperrors.Newf(apperrors.StateConflict, "enrollment already %s", enrollment.Status)
	}
	enrollment.Status = target
	return &enrollment, nil
}

// ListByHackathon 主办方查看报名列表
func (s *EnrollmentService) ListByHackathon(ctx context.Context, actor Actor, hackathonID uint32) ([]models.Enrollment, error) {
	h, err := s.loadHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if h.OrganizerID != actor.UserID {
		return nil, apperrors.New(apperrors.Permission, "not the organizer of this hackathon")
	}
	var enrollments []models.Enrollment
	if err := s.db.WithContext(ctx).Where("hackathon_id = ?", hackathonID).Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// ListMine 查看自己的报名记录
func (s *EnrollmentService) ListMine(ctx context.Context, actor Actor) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := s.db.WithContext(ctx).Where("user_id = ?", actor.UserID).Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// approvedEnrollment 返回用户在某场黑客松的已通过报名，组队与提交作品的前置
func (s *EnrollmentService) approvedEnrollment(ctx context.Context, userID, hackathonID uint32) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND hackathon_id = ? AND status = ?", userID, hackathonID, models.EnrollmentApproved).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.Permission, "not enrolled in this hackathon")
		}
		return nil, err
	}
	return &enrollment, nil
}
