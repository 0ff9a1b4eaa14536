// file: services/phase_test.go
package services

import (
	"testing"
	"time"

	"vibebuild/apperrors"
	"vibebuild/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func fullWindowHackathon() *models.Hackathon {
	return &models.Hackathon{
		Status:            models.HackathonStatusPublished,
		EventStart:        ts("2026-03-10T09:00:00Z"),
		EventEnd:          ts("2026-03-12T18:00:00Z"),
		RegistrationStart: tsp("2026-03-01T00:00:00Z"),
		RegistrationEnd:   tsp("2026-03-09T23:59:59Z"),
		SubmissionStart:   tsp("2026-03-11T00:00:00Z"),
		SubmissionEnd:     tsp("2026-03-12T12:00:00Z"),
		JudgingStart:      tsp("2026-03-12T12:00:00Z"),
		JudgingEnd:        tsp("2026-03-12T17:00:00Z"),
	}
}

func TestDerivePhase(t *testing.T) {
	h := fullWindowHackathon()

	cases := []struct {
		name string
		now  time.Time
		want Phase
	}{
		{"before registration", ts("2026-02-20T00:00:00Z"), PhaseRegistrationUpcoming},
		{"registration open", ts("2026-03-05T00:00:00Z"), PhaseRegistrationOpen},
		{"between registration and event", ts("2026-03-10T06:00:00Z"), PhaseRegistrationUpcoming},
		{"event running before submission", ts("2026-03-10T12:00:00Z"), PhaseInProgress},
		{"submission open", ts("2026-03-11T08:00:00Z"), PhaseSubmissionOpen},
		{"judging open", ts("2026-03-12T13:00:00Z"), PhaseJudgingOpen},
		{"after judging before event end", ts("2026-03-12T17:30:00Z"), PhaseInProgress},
		{"after event end", ts("2026-03-13T00:00:00Z"), PhaseEnded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DerivePhase(h, tc.now))
		})
	}
}

func TestDerivePhaseStatusOverridesClock(t *testing.T) {
	h := fullWindowHackathon()

	h.Status = models.HackathonStatusDraft
	assert.Equal(t, PhaseDraft, DerivePhase(h, ts("2026-03-05T00:00:00Z")))

	h.Status = models.HackathonStatusEnded
	// 提前收官：时间窗口再怎么看都是进行中，状态说了算
	assert.Equal(t, PhaseEnded, DerivePhase(h, ts("2026-03-11T08:00:00Z")))
}

func TestDerivePhaseUnsetWindows(t *testing.T) {
	h := &models.Hackathon{
		Status:     models.HackathonStatusPublished,
		EventStart: ts("2026-03-10T09:00:00Z"),
		EventEnd:   ts("2026-03-12T18:00:00Z"),
	}
	// 未配置报名窗口：活动开始前都算报名期
	assert.Equal(t, PhaseRegistrationOpen, DerivePhase(h, ts("2026-03-01T00:00:00Z")))
	assert.Equal(t, PhaseInProgress, DerivePhase(h, ts("2026-03-11T00:00:00Z")))
	assert.Equal(t, PhaseEnded, DerivePhase(h, ts("2026-03-13T00:00:00Z")))
}

func TestDerivePhaseContradictoryWindows(t *testing.T) {
	// 发布后主办方把评审窗口改到活动结束之后：结束优先于开放
	h := fullWindowHackathon()
	h.JudgingStart = tsp("2026-03-12T17:00:00Z")
	h.JudgingEnd = tsp("2026-03-13T12:00:00Z")
	assert.Equal(t, PhaseEnded, DerivePhase(h, ts("2026-03-13T00:00:00Z")))
}

func TestActionPredicates(t *testing.T) {
	h := fullWindowHackathon()

	assert.True(t, RegistrationAllowed(h, ts("2026-03-05T00:00:00Z")))
	assert.False(t, RegistrationAllowed(h, ts("2026-03-10T12:00:00Z")))

	// 评审开始后队伍与作品都冻结
	assert.True(t, TeamActivityAllowed(h, ts("2026-03-10T12:00:00Z")))
	assert.False(t, TeamActivityAllowed(h, ts("2026-03-12T13:00:00Z")))

	assert.False(t, SubmitAllowed(h, ts("2026-03-10T12:00:00Z")))
	assert.True(t, SubmitAllowed(h, ts("2026-03-11T08:00:00Z")))
	assert.False(t, SubmitAllowed(h, ts("2026-03-12T13:00:00Z")))

	assert.False(t, JudgingAllowed(h, ts("2026-03-11T08:00:00Z")))
	assert.True(t, JudgingAllowed(h, ts("2026-03-12T13:00:00Z")))
	assert.False(t, JudgingAllowed(h, ts("2026-03-12T17:30:00Z")))

	draft := &models.Project{Status: models.ProjectDraft}
	submitted := &models.Project{Status: models.ProjectSubmitted}
	// 草稿可以改到评审开始，已提交的只能改到提交窗口关闭
	assert.True(t, ProjectEditAllowed(h, draft, ts("2026-03-12T11:00:00Z")))
	assert.True(t, ProjectEditAllowed(h, submitted, ts("2026-03-12T11:00:00Z")))
	assert.False(t, ProjectEditAllowed(h, draft, ts("2026-03-12T13:00:00Z")))
	assert.False(t, ProjectEditAllowed(h, submitted, ts("2026-03-12T13:00:00Z")))
}

func TestSubmitAllowedFallsBackToEventWindow(t *testing.T) {
	h := &models.Hackathon{
		Status:     models.HackathonStatusPublished,
		EventStart: ts("2026-03-10T09:00:00Z"),
		EventEnd:   ts("2026-03-12T18:00:00Z"),
	}
	assert.False(t, SubmitAllowed(h, ts("2026-03-09T00:00:00Z")))
	assert.True(t, SubmitAllowed(h, ts("2026-03-11T00:00:00Z")))
	assert.False(t, SubmitAllowed(h, ts("2026-03-13T00:00:00Z")))
}

func validPublishable() *models.Hackathon {
	h := fullWindowHackathon()
	h.Title = "AI for Good"
	h.Description = "Build something that matters"
	h.RegistrationType = models.RegistrationTeam
	h.TeamSizeMin = 1
	h.TeamSizeMax = 5
	if err := h.SetDimensions([]models.ScoringDimension{
		{Name: "Innovation", Weight: 60},
		{Name: "Feasibility", Weight: 40},
	}); err != nil {
		panic(err)
	}
	return h
}

func TestValidatePublish(t *testing.T) {
	require.NoError(t, ValidatePublish(validPublishable()))

	t.Run("event window inverted", func(t *testing.T) {
		h := validPublishable()
		h.EventStart = ts("2026-01-10T00:00:00Z")
		h.EventEnd = ts("2026-01-05T00:00:00Z")
		err := ValidatePublish(h)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.Validation))
	})

	t.Run("registration ends after event end", func(t *testing.T) {
		h := validPublishable()
		h.EventStart = ts("2026-01-02T00:00:00Z")
		h.EventEnd = ts("2026-01-05T00:00:00Z")
		h.RegistrationStart = tsp("2026-01-01T00:00:00Z")
		h.RegistrationEnd = tsp("2026-01-10T00:00:00Z")
		h.SubmissionEnd = nil
		h.JudgingStart = nil
		err := ValidatePublish(h)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.Validation))
		assert.Contains(t, err.Error(), "registration_end")
	})

	t.Run("submission ends after judging starts", func(t *testing.T) {
		h := validPublishable()
		h.SubmissionEnd = tsp("2026-03-12T15:00:00Z")
		err := ValidatePublish(h)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.Validation))
	})

	t.Run("weights must sum to 100", func(t *testing.T) {
		h := validPublishable()
		require.NoError(t, h.SetDimensions([]models.ScoringDimension{
			{Name: "Innovation", Weight: 60},
			{Name: "Feasibility", Weight: 30},
		}))
		err := ValidatePublish(h)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum to 100")
	})

	t.Run("duplicate dimension name", func(t *testing.T) {
		h := validPublishable()
		require.NoError(t, h.SetDimensions([]models.ScoringDimension{
			{Name: "Innovation", Weight: 50},
			{Name: "Innovation", Weight: 50},
		}))
		require.Error(t, ValidatePublish(h))
	})

	t.Run("no dimensions", func(t *testing.T) {
		h := validPublishable()
		h.ScoringDimensions = nil
		require.Error(t, ValidatePublish(h))
	})

	t.Run("team size inverted", func(t *testing.T) {
		h := validPublishable()
		h.TeamSizeMin = 4
		h.TeamSizeMax = 2
		require.Error(t, ValidatePublish(h))
	})

	t.Run("missing description", func(t *testing.T) {
		h := validPublishable()
		h.Description = ""
		require.Error(t, ValidatePublish(h))
	})
}
