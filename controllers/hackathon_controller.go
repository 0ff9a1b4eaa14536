// file: controllers/hackathon_controller.go
package controllers

import (
	"time"

	"vibebuild/dto"
	"vibebuild/mappers"
	"vibebuild/services"
	"vibebuild/utils"

	"github.com/gin-gonic/gin"
)

type HackathonController struct {
	actorResolver
	hackathons *services.HackathonService
}

func NewHackathonController(identity *services.IdentityService, hackathons *services.HackathonService) *HackathonController {
	return &HackathonController{
		actorResolver: actorResolver{identity: identity},
		hackathons:    hackathons,
	}
}

func (hc *HackathonController) Create(c *gin.Context) {
	actor, ok := hc.currentActor(c)
	if !ok {
		return
	}
	var req dto.HackathonInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	h, err := hc.hackathons.Create(c.Request.Context(), actor, req)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Hackathon created successfully", mappers.ToHackathonDetail(h, time.Now()))
}

func (hc *HackathonController) Update(c *gin.Context) {
	actor, ok := hc.currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.HackathonInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	h, err := hc.hackathons.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Hackathon updated successfully", mappers.ToHackathonDetail(h, time.Now()))
}

func (hc *HackathonController) Publish(c *gin.Context) {
	actor, ok := hc.currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h, err := hc.hackathons.Publish(c.Request.Context(), actor, id)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Hackathon published successfully", mappers.ToHackathonDetail(h, time.Now()))
}

func (hc *HackathonController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h, err := hc.hackathons.Get(c.Request.Context(), id)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", mappers.ToHackathonDetail(h, time.Now()))
}

func (hc *HackathonController) List(c *gin.Context) {
	hackathons, err := hc.hackathons.List(c.Request.Context())
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", mappers.ToHackathonDetails(hackathons, time.Now()))
}

// Status 查询当前阶段与剩余时间（任何客户端均可现算验证）
func (hc *HackathonController) Status(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h, err := hc.hackathons.Get(c.Request.Context(), id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	now := time.Now()
	phase := services.DerivePhase(h, now)
	remaining := "0s"
	if now.Before(h.EventEnd) && phase != services.PhaseEnded && phase != services.PhaseDraft {
		remaining = h.EventEnd.Sub(now).Round(time.Second).String()
	}
	utils.Success(c, "success", gin.H{
		"phase":          phase,
		"now":            now.Format("2006-01-02 15:04:05"),
		"remaining_time": remaining,
	})
}

func (hc *HackathonController) AppointJudge(c *gin.Context) {
	actor, ok := hc.currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		UserID uint32 `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}
	judge, err := hc.hackathons.AppointJudge(c.Request.Context(), actor, id, req.UserID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Judge appointed successfully", judge)
}

func (hc *HackathonController) RemoveJudge(c *gin.Context) {
	actor, ok := hc.currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	if err := hc.hackathons.RemoveJudge(c.Request.Context(), actor, id, userID); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Judge removed successfully", nil)
}
