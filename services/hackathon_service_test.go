// file: services/hackathon_service_test.go
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

func validInput() dto.HackathonInput {
	return dto.HackathonInput{
		Title:       "AI for Good",
		Description: "Build something that matters",
		EventStart:  time.Now().Add(24 * time.Hour),
		EventEnd:    time.Now().Add(72 * time.Hour),
		ScoringDimensions: []models.ScoringDimension{
			{Name: "Innovation", Weight: 60},
			{Name: "Feasibility", Weight: 40},
		},
		Awards: []models.Award{{Name: "Grand Prize", Detail: "bragging rights"}},
	}
}

func TestCreateDraftThenPublish(t *testing.T) {
	db := newTestDB(t)
	svc := NewHackathonService(db)
	ctx := context.Background()
	organizer := seedUser(t, db, "organizer", true)

	h, err := svc.Create(ctx, organizer, validInput())
	require.NoError(t, err)
	assert.Equal(t, models.HackathonStatusDraft, h.Status)
	assert.Equal(t, organizer.UserID, h.OrganizerID)
	// 未传的组队字段落默认值
	assert.Equal(t, models.RegistrationTeam, h.RegistrationType)
	assert.Equal(t, 1, h.TeamSizeMin)
	assert.Equal(t, 5, h.TeamSizeMax)

	published, err := svc.Publish(ctx, organizer, h.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HackathonStatusPublished, published.Status)

	// 重复发布幂等
	again, err := svc.Publish(ctx, organizer, h.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HackathonStatusPublished, again.Status)
}

func TestPublishValidatesDraft(t *testing.T) {
	db := newTestDB(t)
	svc := NewHackathonService(db)
	ctx := context.Background()
	organizer := seedUser(t, db, "organizer", true)

	t.Run("inverted event window", func(t *testing.T) {
		input := validInput()
		input.EventStart = ts("2026-01-10T00:00:00Z")
		input.EventEnd = ts("2026-01-05T00:00:00Z")
		h, err := svc.Create(ctx, organizer, input)
		require.NoError(t, err) // 草稿阶段允许不完整

		_, err = svc.Publish(ctx, organizer, h.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.Validation))

		fresh, err := svc.Get(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, models.HackathonStatusDraft, fresh.Status)
	})

	t.Run("weights not 100", func(t *testing.T) {
		input := validInput()
		input.ScoringDimensions = []models.ScoringDimension{{Name: "Innovation", Weight: 70}}
		h, err := svc.Create(ctx, organizer, input)
		require.NoError(t, err)

		_, err = svc.Publish(ctx, organizer, h.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.Validation))
	})

	t.Run("not the organizer", func(t *testing.T) {
		stranger := seedUser(t, db, "stranger", true)
		h, err := svc.Create(ctx, organizer, validInput())
		require.NoError(t, err)

		_, err = svc.Publish(ctx, stranger, h.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.Permission))
	})
}

func TestUpdateRejectedAfterEnd(t *testing.T) {
	db := newTestDB(t)
	svc := NewHackathonService(db)
	ctx := context.Background()
	organizer := seedUser(t, db, "organizer", true)
	h := seedHackathon(t, db, organizer, func(h *models.Hackathon) {
		h.Status = models.HackathonStatusEnded
	})

	_, err := svc.Update(ctx, organizer, h.ID, validInput())
	require.Error(t, err)
	assert.EqualError(t, err, "hackathon ended")
}

func TestListExcludesDrafts(t *testing.T) {
	db := newTestDB(t)
	svc := NewHackathonService(db)
	ctx := context.Background()
	organizer := seedUser(t, db, "organizer", true)

	_, err := svc.Create(ctx, organizer, validInput())
	require.NoError(t, err)
	seedHackathon(t, db, organizer)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.HackathonStatusPublished, list[0].Status)
}

func TestAppointAndRemoveJudge(t *testing.T) {
	db := newTestDB(t)
	svc := NewHackathonService(db)
	ctx := context.Background()
	organizer := seedUser(t, db, "organizer", true)
	judge := seedUser(t, db, "judge", true)
	h := seedHackathon(t, db, organizer)

	appointed, err := svc.AppointJudge(ctx, organizer, h.ID, judge.UserID)
	require.NoError(t, err)
	assert.Equal(t, judge.UserID, appointed.UserID)

	// 重复任命冲突
	_, err = svc.AppointJudge(ctx, organizer, h.ID, judge.UserID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.StateConflict))

	require.NoError(t, svc.RemoveJudge(ctx, organizer, h.ID, judge.UserID))

	err = svc.RemoveJudge(ctx, organizer, h.ID, judge.UserID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}

func TestIdentityActorOf(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentityService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", true)
	actor, err := svc.ActorOf(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", actor.Username)
	assert.True(t, actor.Verified)

	_, err = svc.ActorOf(ctx, 9999)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))

	banned := seedUser(t, db, "banned", true)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", banned.UserID).
		Update("status", models.UserStatusBanned).Error)
	_, err = svc.ActorOf(ctx, banned.UserID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Permission))
}
