// file: services/project_service.go
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

type ProjectService struct {
	db    *gorm.DB
	teams *TeamService
}

func NewProjectService(db *gorm.DB, teams *TeamService) *ProjectService {
	return &ProjectService{db: db, teams: teams}
}

func (s *ProjectService) loadHackathon(ctx context.Context, id uint32) (*models.Hackathon, error) {
	var h models.Hackathon
	if err := s.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "hackathon not found")
		}
		return nil, err
	}
	return &h, nil
}

// resolveTeam 找到调用者在该黑客松的队伍；个人赛首次触达时隐式建队
func (s *ProjectService) resolveTeam(ctx context.Context, actor Actor, h *models.Hackathon) (*models.Team, error) {
	team, err := s.teams.MemberTeam(ctx, actor.UserID, h.ID)
	if err == nil {
		return team, nil
	}
	if apperrors.IsKind(err, apperrors.NotFound) && h.RegistrationType == models.RegistrationIndividual {
		return s.teams.EnsureIndividualTeam(ctx, actor, h)
	}
	if apperrors.IsKind(err, apperrors.NotFound) {
		return nil, apperrors.New(apperrors.Permission, "not in a team for this hackathon")
	}
	return nil, err
}

// Upsert 创建或编辑队伍作品。一队一作品：已存在时即为编辑。
// 草稿可改到评审开始，已提交的只能改到提交窗口关闭
func (s *ProjectService) Upsert(ctx context.Context, actor Actor, hackathonID uint32, fields dto.ProjectFields) (*models.Project, error) {
	h, err := s.loadHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if DerivePhase(h, now) == PhaseEnded {
		return nil, apperrors.New(apperrors.Validation, "hackathon ended")
	}
	team, err := s.resolveTeam(ctx, actor, h)
	if err != nil {
		return nil, err
	}

	var project models.Project
	err = s.db.WithContext(ctx).Where("team_id = ?", team.ID).First(&project).Error
	switch {
	case err == nil:
		if !ProjectEditAllowed(h, &project, now) {
			if project.Status == models.ProjectSubmitted {
				return nil, apperrors.New(apperrors.Validation, "submission window closed, project is frozen")
			}
			return nil, apperrors.New(apperrors.Validation, "project is frozen for judging")
		}
		applyFields(&project, fields)
		if err := s.db.WithContext(ctx).Save(&project).Error; err != nil {
			return nil, err
		}
		return &project, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if !ProjectEditAllowed(h, nil, now) {
			return nil, apperrors.New(apperrors.Validation, "project is frozen for judging")
		}
		project = models.Project{
			TeamID:      team.ID,
			HackathonID: h.ID,
			Status:      models.ProjectDraft,
		}
		applyFields(&project, fields)
		if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// 并发创建撞上唯一索引：按编辑语义重试一次
				return s.Upsert(ctx, actor, hackathonID, fields)
			}
			return nil, err
		}
		return &project, nil

	default:
		return nil, err
	}
}

func applyFields(p *models.Project, fields dto.ProjectFields) {
	p.Title = fields.Title
	p.Description = fields.Description
	p.DemoURL = fields.DemoURL
	p.RepoURL = fields.RepoURL
	p.VideoURL = fields.VideoURL
	p.AttachmentURL = fields.AttachmentURL
}

// Submit 提交作品，draft → submitted 单向迁移；
// 已提交的重复调用是幂等成功（配合"编辑后再提交"的前端习惯）
func (s *ProjectService) Submit(ctx context.Context, actor Actor, hackathonID uint32) (*models.Project, error) {
	h, err := s.loadHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if DerivePhase(h, now) == PhaseEnded {
		return nil, apperrors.New(apperrors.Validation, "hackathon ended")
	}
	team, err := s.teams.MemberTeam(ctx, actor.UserID, hackathonID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.NotFound) {
			return nil, apperrors.New(apperrors.Permission, "not in a team for this hackathon")
		}
		return nil, err
	}

	var project models.Project
	if err := s.db.WithContext(ctx).Where("team_id = ?", team.ID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "project not found")
		}
		return nil, err
	}
	if project.Status == models.ProjectSubmitted {
		return &project, nil
	}
	if project.Title == "" || project.Description == "" {
		return nil, apperrors.New(apperrors.Validation, "title and description are required before submitting")
	}
	if !SubmitAllowed(h, now) {
		return nil, apperrors.New(apperrors.Validation, "submission is closed")
	}

	updates := map[string]interface{}{
		"status":       models.ProjectSubmitted,
		"submitted_at": now,
	}
	if err := s.db.WithContext(ctx).Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}
	project.Status = models.ProjectSubmitted
	project.SubmittedAt = &now
	return &project, nil
}

// TeamProject 查询自己队伍的作品
func (s *ProjectService) TeamProject(ctx context.Context, actor Actor, hackathonID uint32) (*models.Project, error) {
	team, err := s.teams.MemberTeam(ctx, actor.UserID, hackathonID)
	if err != nil {
		return nil, err
	}
	var project models.Project
	if err := s.db.WithContext(ctx).Where("team_id = ?", team.ID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "project not found")
		}
		return nil, err
	}
	return &project, nil
}

// ListSubmitted 某场黑客松已提交的全部作品（评委视角）
func (s *ProjectService) ListSubmitted(ctx context.Context, hackathonID uint32) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("hackathon_id = ? AND status = ?", hackathonID, models.ProjectSubmitted).
		Order("submitted_at asc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
