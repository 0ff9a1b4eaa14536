// file: controllers/scoring_controller.go
package controllers

import (
	"vibebuild/dto"
	"vibebuild/services"
	"vibebuild/utils"

	"github.com/gin-gonic/gin"
)

type ScoringController struct {
	actorResolver
	scoring *services.ScoringService
}

func NewScoringController(identity *services.IdentityService, scoring *services.ScoringService) *ScoringController {
	return &ScoringController{
		actorResolver: actorResolver{identity: identity},
		scoring:       scoring,
	}
}

// RecordScore 评委打分，重复提交整体覆盖
func (sc *ScoringController) RecordScore(c *gin.Context) {
	actor, ok := sc.currentActor(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ScoreInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}
	score, err := sc.scoring.RecordScore(c.Request.Context(), actor, projectID, req)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Score recorded successfully", score)
}

// ProjectScores 某作品的全部打分
func (sc *ScoringController) ProjectScores(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	scores, err := sc.scoring.ProjectScores(c.Request.Context(), projectID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", scores)
}

// ProjectTotal 某作品的现算总分（各评委加权总分的均值）
func (sc *ScoringController) ProjectTotal(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	total, judgeCount, err := sc.scoring.ProjectTotal(c.Request.Context(), projectID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", gin.H{
		"project_id":  projectID,
		"total":       total,
		"judge_count": judgeCount,
	})
}

// Leaderboard 某场黑客松的现算排行榜
func (sc *ScoringController) Leaderboard(c *gin.Context) {
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := sc.scoring.Leaderboard(c.Request.Context(), hackathonID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", entries)
}
