// file: services/scoring_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"vibebuild/apperrors"
	"vibebuild/dto"
	"vibebuild/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const leaderboardTTL = 30 * time.Second

type ScoringService struct {
	db  *gorm.DB
	rdb *redis.Client // 可为 nil（测试环境），此时排行榜直接现算
}

func NewScoringService(db *gorm.DB, rdb *redis.Client) *ScoringService {
	return &ScoringService{db: db, rdb: rdb}
}

func (s *ScoringService) loadHackathon(ctx context.Context, id uint32) (*models.Hackathon, error) {
	var h models.Hackathon
	if err := s.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "hackathon not found")
		}
		return nil, err
	}
	return &h, nil
}

// isJudge 调用方是否为该黑客松的受任评委
func (s *ScoringService) isJudge(ctx context.Context, userID, hackathonID uint32) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Judge{}).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordScore 评委对作品打分。(judge, project) 唯一，重复提交整体覆盖；
// 缺失的维度按 0 计，未声明的维度名拒绝
func (s *ScoringService) RecordScore(ctx context.Context, actor Actor, projectID uint32, input dto.ScoreInput) (*models.Score, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "project not found")
		}
		return nil, err
	}
	h, err := s.loadHackathon(ctx, project.HackathonID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if DerivePhase(h, now) == PhaseEnded {
		return nil, apperrors.New(apperrors.Validation, "hackathon ended")
	}
	ok, err := s.isJudge(ctx, actor.UserID, h.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.New(apperrors.Permission, "not a judge for this hackathon")
	}
	if project.Status != models.ProjectSubmitted {
		return nil, apperrors.New(apperrors.Validation, "project has not been submitted")
	}
	if !JudgingAllowed(h, now) {
		return nil, apperrors.New(apperrors.Validation, "judging is closed")
	}

	dims, err := h.Dimensions()
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "hackathon has invalid scoring dimensions")
	}
	declared := make(map[string]bool, len(dims))
	for _, d := range dims {
		declared[d.Name] = true
	}
	for name, v := range input.Values {
		if !declared[name] {
			return nil, apperrors.Newf(apperrors.Validation, "unknown scoring dimension %q", name)
		}
		if v < 0 || v > 100 {
			return nil, apperrors.Newf(apperrors.Validation, "value for %q must be in [0,100]", name)
		}
	}
	// 按声明的维度补全，宽容只填了部分维度的打分界面
	full := make(map[string]float64, len(dims))
	for _, d := range dims {
		full[d.Name] = input.Values[d.Name]
	}

	score := models.Score{
		JudgeID:     actor.UserID,
		ProjectID:   project.ID,
		HackathonID: h.ID,
		Comment:     input.Comment,
	}
	if err := score.SetDimensionValues(full); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "judge_id"}, {Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"values", "comment", "updated_at"}),
	}).Create(&score).Error
	if err != nil {
		return nil, err
	}

	// 覆盖路径上 Create 回填的是本次尝试的 ID/CreatedAt，重读返回落库的那行
	var stored models.Score
	err = s.db.WithContext(ctx).
		Where("judge_id = ? AND project_id = ?", actor.UserID, project.ID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard(ctx, h.ID)
	return &stored, nil
}

// judgeTotal 单个评委的加权总分 Σ value_d × weight_d / 100
func judgeTotal(values map[string]float64, dims []models.ScoringDimension) float64 {
	var total float64
	for _, d := range dims {
		total += values[d.Name] * float64(d.Weight) / 100
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	return total
}

// ProjectTotal 作品总分：各评委加权总分的算术平均，从不落库
func (s *ScoringService) ProjectTotal(ctx context.Context, projectID uint32) (float64, int, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, apperrors.New(apperrors.NotFound, "project not found")
		}
		return 0, 0, err
	}
	h, err := s.loadHackathon(ctx, project.HackathonID)
	if err != nil {
		return 0, 0, err
	}
	dims, err := h.Dimensions()
	if err != nil {
		return 0, 0, err
	}

	var scores []models.Score
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&scores).Error; err != nil {
		return 0, 0, err
	}
	if len(scores) == 0 {
		return 0, 0, nil
	}
	var sum float64
	for _, sc := range scores {
		values, err := sc.DimensionValues()
		if err != nil {
			return 0, 0, err
		}
		sum += judgeTotal(values, dims)
	}
	return sum / float64(len(scores)), len(scores), nil
}

func leaderboardKey(hackathonID uint32) string {
	return fmt.Sprintf("leaderboard:%d", hackathonID)
}

func (s *ScoringService) invalidateLeaderboard(ctx context.Context, hackathonID uint32) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, leaderboardKey(hackathonID)).Err(); err != nil {
		slog.Warn("failed to invalidate leaderboard cache", "hackathon_id", hackathonID, "error", err)
	}
}

// Leaderboard 现算排行榜：平均总分降序，先提交者在前，再按作品 ID。
// Redis 只做带 TTL 的读缓存，写分后失效，从不充当真相来源
func (s *ScoringService) Leaderboard(ctx context.Context, hackathonID uint32) ([]dto.LeaderboardEntry, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, leaderboardKey(hackathonID)).Result()
		if err == nil {
			var entries []dto.LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	h, err := s.loadHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	dims, err := h.Dimensions()
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	err = s.db.WithContext(ctx).
		Where("hackathon_id = ? AND status = ?", hackathonID, models.ProjectSubmitted).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	var scores []models.Score
	if err := s.db.WithContext(ctx).Where("hackathon_id = ?", hackathonID).Find(&scores).Error; err != nil {
		return nil, err
	}
	totals := make(map[uint32]float64, len(projects))
	counts := make(map[uint32]int, len(projects))
	for _, sc := range scores {
		values, err := sc.DimensionValues()
		if err != nil {
			return nil, err
		}
		totals[sc.ProjectID] += judgeTotal(values, dims)
		counts[sc.ProjectID]++
	}

	entries := make([]dto.LeaderboardEntry, 0, len(projects))
	for _, p := range projects {
		total := 0.0
		if counts[p.ID] > 0 {
			total = totals[p.ID] / float64(counts[p.ID])
		}
		entries = append(entries, dto.LeaderboardEntry{
			ProjectID:  p.ID,
			Title:      p.Title,
			TeamID:     p.TeamID,
			Total:      total,
			JudgeCount: counts[p.ID],
		})
	}

	submittedAt := make(map[uint32]time.Time, len(projects))
	for _, p := range projects {
		if p.SubmittedAt != nil {
			submittedAt[p.ID] = *p.SubmittedAt
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		ti, tj := submittedAt[entries[i].ProjectID], submittedAt[entries[j].ProjectID]
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return entries[i].ProjectID < entries[j].ProjectID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, leaderboardKey(hackathonID), raw, leaderboardTTL).Err(); err != nil {
				slog.Warn("failed to cache leaderboard", "hackathon_id", hackathonID, "error", err)
			}
		}
	}
	return entries, nil
}

// ProjectScores 某作品的全部评委打分（主办方/评委视角）
func (s *ScoringService) ProjectScores(ctx context.Context, projectID uint32) ([]models.Score, error) {
	var scores []models.Score
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
