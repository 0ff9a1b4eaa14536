// file: services/hackathon_service.go
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

type HackathonService struct {
	db *gorm.DB
}

func NewHackathonService(db *gorm.DB) *HackathonService {
	return &HackathonService{db: db}
}

// Create 创建草稿黑客松，创建者即主办方。除标题外允许不完整，
// 完整性推迟到发布时校验，主办方可以在草稿里反复迭代
func (s *HackathonService) Create(ctx context.Context, actor Actor, input dto.HackathonInput) (*models.Hackathon, error) {
	if input.Title == "" {
		return nil, apperrors.New(apperrors.Validation, "title is required")
	}
	h := models.Hackathon{
		OrganizerID: actor.UserID,
		Status:      models.HackathonStatusDraft,
	}
	if err := applyInput(&h, input); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// Update 主办方修改黑客松；已结束的拒绝修改
func (s *HackathonService) Update(ctx context.Context, actor Actor, id uint32, input dto.HackathonInput) (*models.Hackathon, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OrganizerID != actor.UserID {
		return nil, apperrors.New(apperrors.Permission, "not the organizer of this hackathon")
	}
	if DerivePhase(h, time.Now()) == PhaseEnded {
		return nil, apperrors.New(apperrors.Validation, "hackathon ended")
	}
	if input.Title == "" {
		return nil, apperrors.New(apperrors.Validation, "title is required")
	}
	if err := applyInput(h, input); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

func applyInput(h *models.Hackathon, input dto.HackathonInput) error {
	h.Title = input.Title
	h.Description = input.Description
	h.CoverImage = input.CoverImage
	h.ThemeTags = input.ThemeTags
	h.Location = input.Location
	if input.IsOnline != nil {
		h.IsOnline = *input.IsOnline
	}
	h.RegistrationType = input.RegistrationType
	if h.RegistrationType == "" {
		h.RegistrationType = models.RegistrationTeam
	}
	h.TeamSizeMin = input.TeamSizeMin
	if h.TeamSizeMin == 0 {
		h.TeamSizeMin = 1
	}
	h.TeamSizeMax = input.TeamSizeMax
	if h.TeamSizeMax == 0 {
		h.TeamSizeMax = 5
	}
	h.RequiresApproval = input.RequiresApproval
	h.MaxParticipants = input.MaxParticipants
	h.EventStart = input.EventStart
	h.EventEnd = input.EventEnd
	h.RegistrationStart = input.RegistrationStart
	h.RegistrationEnd = input.RegistrationEnd
	h.SubmissionStart = input.SubmissionStart
	h.SubmissionEnd = input.SubmissionEnd
	h.JudgingStart = input.JudgingStart
	h.JudgingEnd = input.JudgingEnd
	h.RulesDetail = input.RulesDetail
	if err := h.SetDimensions(input.ScoringDimensions); err != nil {
		return err
	}
	return h.SetAwards(input.Awards)
}

// Publish 发布黑客松：一次性校验全部字段与时间窗口，draft → published。
// 重复发布是幂等成功
func (s *HackathonService) Publish(ctx context.Context, actor Actor, id uint32) (*models.Hackathon, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OrganizerID != actor.UserID {
		return nil, apperrors.New(apperrors.Permission, "not the organizer of this hackathon")
	}
	switch h.Status {
	case models.HackathonStatusPublished:
		return h, nil
	case models.HackathonStatusEnded:
		return nil, apperrors.New(apperrors.Validation, "hackathon ended")
	}
	if err := ValidatePublish(h); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(h).Update("status", models.HackathonStatusPublished).Error; err != nil {
		return nil, err
	}
	h.Status = models.HackathonStatusPublished
	return h, nil
}

// Get 按 ID 查询
func (s *HackathonService) Get(ctx context.Context, id uint32) (*models.Hackathon, error) {
	var h models.Hackathon
	if err := s.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "hackathon not found")
		}
		return nil, err
	}
	return &h, nil
}

// List 已发布与已结束的黑客松（草稿只有主办方可见，走 Get）
func (s *HackathonService) List(ctx context.Context) ([]models.Hackathon, error) {
	var hackathons []models.Hackathon
	err := s.db.WithContext(ctx).
		Where("status <> ?", models.HackathonStatusDraft).
		Order("event_start desc").
		Find(&hackathons).Error
	if err != nil {
		return nil, err
	}
	return hackathons, nil
}

// AppointJudge 主办方任命评委
func (s *HackathonService) AppointJudge(ctx context.Context, actor Actor, hackathonID, userID uint32) (*models.Judge, error) {
	h, err := s.Get(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if h.OrganizerID != actor.UserID {
		return nil, apperrors.New(apperrors.Permission, "not the organizer of this hackathon")
	}
	if DerivePhase(h, time.Now()) == PhaseEnded {
		return nil, apperrors.New(apperrors.Validation, "hackathon ended")
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "user not found")
		}
		return nil, err
	}

	judge := models.Judge{
		HackathonID: hackathonID,
		UserID:      userID,
		AppointedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&judge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(apperrors.StateConflict, "already a judge for this hackathon")
		}
		return nil, err
	}
	return &judge, nil
}

// RemoveJudge 主办方撤销评委任命
func (s *HackathonService) RemoveJudge(ctx context.Context, actor Actor, hackathonID, userID uint32) error {
	h, err := s.Get(ctx, hackathonID)
	if err != nil {
		return err
	}
	if h.OrganizerID != actor.UserID {
		return apperrors.New(apperrors.Permission, "not the organizer of this hackathon")
	}
	if DerivePhase(h, time.Now()) == PhaseEnded {
		return apperrors.New(apperrors.Validation, "hackathon ended")
	}
	res := s.db.WithContext(ctx).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		Delete(&models.Judge{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, "judge not found for this hackathon")
	}
	return nil
}
