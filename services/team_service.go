// file: services/team_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibebuild/apperrors"
	"vibebuild/models"
	"vibebuild/utils"

	"gorm.io/gorm"
)

type TeamService struct {
	db          *gorm.DB
	enrollments *EnrollmentService
}

func NewTeamService(db *gorm.DB, enrollments *EnrollmentService) *TeamService {
	return &TeamService{db: db, enrollments: enrollments}
}

func (s *TeamService) loadHackathon(ctx context.Context, id uint32) (*models.Hackathon, error) {
	var h models.Hackathon
	if err := s.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "hackathon not found")
		}
		return nil, err
	}
	return &h, nil
}

func (s *TeamService) loadTeam(ctx context.Context, id uint32) (*models.Team, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "team not found")
		}
		return nil, err
	}
	return &team, nil
}

// teamActivityGate 队伍变更的公共前置：黑客松未结束且仍在组队窗口
func (s *TeamService) teamActivityGate(h *models.Hackathon, now time.Time) error {
	if DerivePhase(h, now) == PhaseEnded {
		return apperrors.New(apperrors.Validation, "hackathon ended")
	}
	if !TeamActivityAllowed(h, now) {
		return apperrors.New(apperrors.Validation, "team changes are closed")
	}
	return nil
}

// CreateTeam 创建队伍，创建者成为队长。要求已通过报名且尚无队伍
func (s *TeamService) CreateTeam(ctx context.Context, actor Actor, hackathonID uint32, name, description string) (*models.Team, error) {
	h, err := s.loadHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.teamActivityGate(h, now); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.New(apperrors.Validation, "team name is required")
	}
	if _, err := s.enrollments.approvedEnrollment(ctx, actor.UserID, hackathonID); err != nil {
		return nil, err
	}

	team := models.Team{
		HackathonID:    hackathonID,
		TeamName:       name,
		LeaderID:       actor.UserID,
		Description:    description,
		InvitationCode: utils.GenerateInvitationCode(),
		MemberCount:    1,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.New(apperrors.StateConflict, "team name already exists")
			}
			return err
		}
		leader := models.TeamMember{
			TeamID:      team.ID,
			HackathonID: hackathonID,
			UserID:      actor.UserID,
			Role:        models.TeamRoleLeader,
			JoinedAt:    now,
		}
		if err := tx.Create(&leader).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.New(apperrors.StateConflict, "already in a team for this hackathon")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// JoinTeam 凭邀请码入队。最后一个名额的并发竞争由 member_count 的
// 条件更新在数据库层串行化：恰好一人成功，其余拿到 StateConflict
func (s *TeamService) JoinTeam(ctx context.Context, actor Actor, invitationCode string) (*models.Team, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).Where("invitation_code = ?", invitationCode).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "invalid invitation code")
		}
		return nil, err
	}
	h, err := s.loadHackathon(ctx, team.HackathonID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.teamActivityGate(h, now); err != nil {
		return nil, err
	}
	if h.RegistrationType != models.RegistrationTeam {
		return nil, apperrors.New(apperrors.Validation, "this hackathon is individual only")
	}
	if _, err := s.enrollments.approvedEnrollment(ctx, actor.UserID, h.ID); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Team{}).
			Where("id = ? AND member_count < ?", team.ID, h.TeamSizeMax).
			UpdateColumn("member_count", gorm.Expr("member_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.New(apperrors.StateConflict, "team full")
		}
		member := models.TeamMember{
			TeamID:      team.ID,
			HackathonID: h.ID,
			UserID:      actor.UserID,
			Role:        models.TeamRoleMember,
			JoinedAt:    now,
		}
		if err := tx.Create(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.New(apperrors.StateConflict, "already in a team for this hackathon")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	team.MemberCount++
	return &team, nil
}

// LeaveTeam 退出队伍。队长在还有其他成员时必须先转让；
// 最后一名成员退出时整支队伍删除（不允许空队伍存续）
func (s *TeamService) LeaveTeam(ctx context.Context, actor Actor, teamID uint32) error {
	team, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return err
	}
	h, err := s.loadHackathon(ctx, team.HackathonID)
	if err != nil {
		return err
	}
	if DerivePhase(h, time.Now()) == PhaseEnded {
		return apperrors.New(apperrors.Validation, "hackathon ended")
	}

	var member models.TeamMember
	err = s.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, actor.UserID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.NotFound, "not a member of this team")
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if member.Role == models.TeamRoleLeader {
			// 与并发入队在同一守卫列上竞争：条件更新锁行后入队者已占位，
			// 这里就空转，不会删掉别人刚加入的队伍
			res := tx.Model(&models.Team{}).
				Where("id = ? AND member_count = 1", teamID).
				UpdateColumn("member_count", gorm.Expr("member_count - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.New(apperrors.Permission, "leader must transfer leadership or dissolve team first")
			}
			// 队长独自退出，队伍随之删除
			if err := tx.Delete(&member).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Team{}, teamID).Error
		}
		if err := tx.Delete(&member).Error; err != nil {
			return err
		}
		return tx.Model(&models.Team{}).Where("id = ?", teamID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error
	})
}

// TransferLeadership 队长转让，新队长必须已是成员
func (s *TeamService) TransferLeadership(ctx context.Context, actor Actor, teamID, newLeaderID uint32) error {
	team, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return err
	}
	h, err := s.loadHackathon(ctx, team.HackathonID)
	if err != nil {
		return err
	}
	if DerivePhase(h, time.Now()) == PhaseEnded {
		return apperrors.New(apperrors.Validation, "hackathon ended")
	}
	if team.LeaderID != actor.UserID {
		return apperrors.New(apperrors.Permission, "not the team leader")
	}
	if newLeaderID == actor.UserID {
		return nil
	}

	var newLeader models.TeamMember
	err = s.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, newLeaderID).First(&newLeader).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.Validation, "new leader must be a team member")
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Team{}).Where("id = ?", teamID).
			Update("leader_id", newLeaderID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", teamID, actor.UserID).
			Update("role", models.TeamRoleMember).Error; err != nil {
			return err
		}
		return tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", teamID, newLeaderID).
			Update("role", models.TeamRoleLeader).Error
	})
}

// KickMember 队长移出队员
func (s *TeamService) KickMember(ctx context.Context, actor Actor, teamID, userID uint32) error {
	team, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return err
	}
	h, err := s.loadHackathon(ctx, team.HackathonID)
	if err != nil {
		return err
	}
	if DerivePhase(h, time.Now()) == PhaseEnded {
		return apperrors.New(apperrors.Validation, "hackathon ended")
	}
	if team.LeaderID != actor.UserID {
		return apperrors.New(apperrors.Permission, "not the team leader")
	}
	if userID == actor.UserID {
		return apperrors.New(apperrors.Validation, "cannot kick the leader")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&models.TeamMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.New(apperrors.NotFound, "member not found in this team")
		}
		return tx.Model(&models.Team{}).Where("id = ?", teamID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error
	})
}

// MemberTeam 返回用户在某场黑客松所在的队伍（无则 NotFound）
func (s *TeamService) MemberTeam(ctx context.Context, userID, hackathonID uint32) (*models.Team, error) {
	var member models.TeamMember
	err := s.db.WithContext(ctx).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "not in a team for this hackathon")
		}
		return nil, err
	}
	return s.loadTeam(ctx, member.TeamID)
}

// EnsureIndividualTeam 个人赛的隐式单人队伍：第一个需要队伍的动作
// （创建作品）调用它，existing 优先，没有则创建
func (s *TeamService) EnsureIndividualTeam(ctx context.Context, actor Actor, h *models.Hackathon) (*models.Team, error) {
	team, err := s.MemberTeam(ctx, actor.UserID, h.ID)
	if err == nil {
		return team, nil
	}
	if !apperrors.IsKind(err, apperrors.NotFound) {
		return nil, err
	}
	if _, err := s.enrollments.approvedEnrollment(ctx, actor.UserID, h.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	solo := models.Team{
		HackathonID:    h.ID,
		TeamName:       fmt.Sprintf("solo-%d", actor.UserID),
		LeaderID:       actor.UserID,
		InvitationCode: utils.GenerateInvitationCode(),
		MemberCount:    1,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&solo).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.New(apperrors.StateConflict, "already in a team for this hackathon")
			}
			return err
		}
		leader := models.TeamMember{
			TeamID:      solo.ID,
			HackathonID: h.ID,
			UserID:      actor.UserID,
			Role:        models.TeamRoleLeader,
			JoinedAt:    now,
		}
		if err := tx.Create(&leader).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.New(apperrors.StateConflict, "already in a team for this hackathon")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &solo, nil
}

// ListByHackathon 某场黑客松的全部队伍
func (s *TeamService) ListByHackathon(ctx context.Context, hackathonID uint32) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Preload("Members").
		Where("hackathon_id = ?", hackathonID).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}
