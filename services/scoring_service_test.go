// file: services/scoring_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"vibebuild/apperrors"
	"vibebuild/dto"
	"vibebuild/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringFixture struct {
	*testFixture
	scoring  *ScoringService
	projects *ProjectService
	teams    *TeamService
	h        *models.Hackathon
	judge1   Actor
	judge2   Actor
}

// newScoringFixture 一场评审中的黑客松：alice 的队伍已提交作品，两名评委就位
func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()
	db := newTestDB(t)
	enrollments := NewEnrollmentService(db)
	teams := NewTeamService(db, enrollments)
	projects := NewProjectService(db, teams)
	scoring := NewScoringService(db, nil)

	organizer := seedUser(t, db, "organizer", true)
	alice := seedUser(t, db, "alice", true)
	judge1 := seedUser(t, db, "judge1", true)
	judge2 := seedUser(t, db, "judge2", true)

	h := seedHackathon(t, db, organizer)
	enrollApproved(t, db, alice, h.ID)
	appointJudge(t, db, judge1, h.ID)
	appointJudge(t, db, judge2, h.ID)

	ctx := context.Background()
	_, err := teams.CreateTeam(ctx, alice, h.ID, "night-owls", "")
	require.NoError(t, err)
	_, err = projects.Upsert(ctx, alice, h.ID, dto.ProjectFields{
		Title:       "Recycler",
		Description: "sorts trash with a webcam",
	})
	require.NoError(t, err)
	_, err = projects.Submit(ctx, alice, h.ID)
	require.NoError(t, err)

	return &scoringFixture{
		testFixture: &testFixture{db: db, organizer: organizer, alice: alice},
		scoring:     scoring,
		projects:    projects,
		teams:       teams,
		h:           h,
		judge1:      judge1,
		judge2:      judge2,
	}
}

func (fx *scoringFixture) projectID(t *testing.T) uint32 {
	t.Helper()
	var p models.Project
	require.NoError(t, fx.db.Where("hackathon_id = ?", fx.h.ID).First(&p).Error)
	return p.ID
}

func TestWeightedMeanAcrossJudges(t *testing.T) {
	fx := newScoringFixture(t)
	ctx := context.Background()
	pid := fx.projectID(t)

	_, err := fx.scoring.RecordScore(ctx, fx.judge1, pid, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 90, "Feasibility": 80},
	})
	require.NoError(t, err)

	// 单评委：90×0.6 + 80×0.4 = 86
	total, judges, err := fx.scoring.ProjectTotal(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 1, judges)
	assert.InDelta(t, 86.0, total, 1e-9)

	_, err = fx.scoring.RecordScore(ctx, fx.judge2, pid, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 70, "Feasibility": 60},
	})
	require.NoError(t, err)

	// 两评委平均：(86 + 66) / 2 = 76
	total, judges, err = fx.scoring.ProjectTotal(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 2, judges)
	assert.InDelta(t, 76.0, total, 1e-9)
}

func TestRecordScoreOverwrites(t *testing.T) {
	fx := newScoringFixture(t)
	ctx := context.Background()
	pid := fx.projectID(t)

	first, err := fx.scoring.RecordScore(ctx, fx.judge1, pid, dto.ScoreInput{
		Values:  map[string]float64{"Innovation": 10, "Feasibility": 10},
		Comment: "first pass",
	})
	require.NoError(t, err)

	second, err := fx.scoring.RecordScore(ctx, fx.judge1, pid, dto.ScoreInput{
		Values:  map[string]float64{"Innovation": 90, "Feasibility": 80},
		Comment: "after the demo",
	})
	require.NoError(t, err)

	// 覆盖路径返回的是落库的那行，不是本次尝试回填的新 ID
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "after the demo", second.Comment)

	scores, err := fx.scoring.ProjectScores(ctx, pid)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "after the demo", scores[0].Comment)

	total, _, err := fx.scoring.ProjectTotal(ctx, pid)
	require.NoError(t, err)
	assert.InDelta(t, 86.0, total, 1e-9)
}

func TestRecordScoreValidation(t *testing.T) {
	fx := newScoringFixture(t)
	ctx := context.Background()
	pid := fx.projectID(t)

	// 未声明的维度名拒绝
	_, err := fx.scoring.RecordScore(ctx, fx.judge1, pid, dto.ScoreInput{
		Values: map[string]float64{"Vibes": 100},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Validation))

	// 分值越界拒绝
	_, err = fx.scoring.RecordScore(ctx, fx.judge1, pid, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 101},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Validation))

	// 非评委拒绝
	_, err = fx.scoring.RecordScore(ctx, fx.alice, pid, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 50},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Permission))
}

func TestRecordScoreMissingDimensionsCountAsZero(t *testing.T) {
	fx := newScoringFixture(t)
	ctx := context.Background()
	pid := fx.projectID(t)

	_, err := fx.scoring.RecordScore(ctx, fx.judge1, pid, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 100},
	})
	require.NoError(t, err)

	// Feasibility 缺失按 0 计：100×0.6 + 0×0.4 = 60
	total, _, err := fx.scoring.ProjectTotal(ctx, pid)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, total, 1e-9)
}

func TestRecordScoreRequiresSubmittedProject(t *testing.T) {
	fx := newScoringFixture(t)
	ctx := context.Background()

	bob := seedUser(t, fx.db, "bob", true)
	enrollApproved(t, fx.db, bob, fx.h.ID)
	_, err := fx.teams.CreateTeam(ctx, bob, fx.h.ID, "early-birds", "")
	require.NoError(t, err)
	draft, err := fx.projects.Upsert(ctx, bob, fx.h.ID, dto.ProjectFields{
		Title:       "Unfinished",
		Description: "still cooking",
	})
	require.NoError(t, err)

	_, err = fx.scoring.RecordScore(ctx, fx.judge1, draft.ID, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 50},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Validation))
}

func TestLeaderboardOrderingAndTieBreak(t *testing.T) {
	fx := newScoringFixture(t)
	ctx := context.Background()

	// 第二支队伍，晚于 alice 提交
	bob := seedUser(t, fx.db, "bob", true)
	enrollApproved(t, fx.db, bob, fx.h.ID)
	_, err := fx.teams.CreateTeam(ctx, bob, fx.h.ID, "early-birds", "")
	require.NoError(t, err)
	_, err = fx.projects.Upsert(ctx, bob, fx.h.ID, dto.ProjectFields{
		Title:       "Composter",
		Description: "worms as a service",
	})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = fx.projects.Submit(ctx, bob, fx.h.ID)
	require.NoError(t, err)

	alicePID := fx.projectID(t)
	var bobProject models.Project
	require.NoError(t, fx.db.Where("hackathon_id = ? AND title = ?", fx.h.ID, "Composter").First(&bobProject).Error)

	// 两个作品打成相同总分：先提交者排前
	_, err = fx.scoring.RecordScore(ctx, fx.judge1, alicePID, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 80, "Feasibility": 80},
	})
	require.NoError(t, err)
	_, err = fx.scoring.RecordScore(ctx, fx.judge1, bobProject.ID, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 80, "Feasibility": 80},
	})
	require.NoError(t, err)

	entries, err := fx.scoring.Leaderboard(ctx, fx.h.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, alicePID, entries[0].ProjectID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, bobProject.ID, entries[1].ProjectID)
	assert.Equal(t, 2, entries[1].Rank)

	// 分数拉开后排序翻转
	_, err = fx.scoring.RecordScore(ctx, fx.judge2, bobProject.ID, dto.ScoreInput{
		Values: map[string]float64{"Innovation": 100, "Feasibility": 100},
	})
	require.NoError(t, err)

	entries, err = fx.scoring.Leaderboard(ctx, fx.h.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, bobProject.ID, entries[0].ProjectID)
	assert.Greater(t, entries[0].Total, entries[1].Total)
}

func TestLeaderboardIncludesUnscoredProjects(t *testing.T) {
	fx := newScoringFixture(t)

	entries, err := fx.scoring.Leaderboard(context.Background(), fx.h.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Zero(t, entries[0].Total)
	assert.Zero(t, entries[0].JudgeCount)
	assert.Equal(t, 1, entries[0].Rank)
}
