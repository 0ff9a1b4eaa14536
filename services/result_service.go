// file: services/result_service.go
package services

import (
	"context"
	"errors"
	"time"

	"vibebuild/apperrors"
	"vibebuild/dto"
	"vibebuild/models"

	"gorm.io/gorm"
)

type ResultService struct {
	db *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

// Publish 公布获奖名单并不可逆地结束黑客松。结果写入与状态翻转在
// 同一事务内，带状态守卫的 UPDATE 保证并发公布只有一次生效，
// 不会出现"结果已存、状态未翻"或反之的半完成状态
func (s *ResultService) Publish(ctx context.Context, actor Actor, hackathonID uint32, winners []dto.WinnerEntry) ([]models.Result, error) {
	var h models.Hackathon
	if err := s.db.WithContext(ctx).First(&h, hackathonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "hackathon not found")
		}
		return nil, err
	}
	if h.OrganizerID != actor.UserID {
		return nil, apperrors.New(apperrors.Permission, "not the organizer of this hackathon")
	}
	switch h.Status {
	case models.HackathonStatusDraft:
		return nil, apperrors.New(apperrors.Validation, "hackathon is not published")
	case models.HackathonStatusEnded:
		return nil, apperrors.New(apperrors.StateConflict, "results already published")
	}

	// 逐条校验获奖条目引用的都是本场已提交的作品
	results := make([]models.Result, 0, len(winners))
	for _, w := range winners {
		if w.AwardName == "" {
			return nil, apperrors.New(apperrors.Validation, "award_name is required")
		}
		if w.Rank < 1 {
			return nil, apperrors.New(apperrors.Validation, "rank must be positive")
		}
		var project models.Project
		if err := s.db.WithContext(ctx).First(&project, w.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Newf(apperrors.NotFound, "project %d not found", w.ProjectID)
			}
			return nil, err
		}
		if project.HackathonID != hackathonID {
			return nil, apperrors.Newf(apperrors.Validation, "project %d does not belong to this hackathon", w.ProjectID)
		}
		if project.Status != models.ProjectSubmitted {
			return nil, apperrors.Newf(apperrors.Validation, "project %d has not been submitted", w.ProjectID)
		}
		results = append(results, models.Result{
			HackathonID: hackathonID,
			ProjectID:   w.ProjectID,
			AwardName:   w.AwardName,
			Rank:        w.Rank,
			Comment:     w.Comment,
			CreatedAt:   time.Now(),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Hackathon{}).
			Where("id = ? AND status = ?", hackathonID, models.HackathonStatusPublished).
			Update("status", models.HackathonStatusEnded)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.New(apperrors.StateConflict, "results already published")
		}
		if len(results) > 0 {
			if err := tx.Create(&results).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// List 某场黑客松的公布结果，按名次排序
func (s *ResultService) List(ctx context.Context, hackathonID uint32) ([]models.Result, error) {
	var results []models.Result
	err := s.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("`rank` asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
