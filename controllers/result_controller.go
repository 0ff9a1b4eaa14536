// file: controllers/result_controller.go
package controllers

import (
	"vibebuild/dto"
	"vibebuild/services"
	"vibebuild/utils"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	actorResolver
	results *services.ResultService
}

func NewResultController(identity *services.IdentityService, results *services.ResultService) *ResultController {
	return &ResultController{
		actorResolver: actorResolver{identity: identity},
		results:       results,
	}
}

// Publish 公布获奖名单并结束黑客松（不可逆）
func (rc *ResultController) Publish(c *gin.Context) {
	actor, ok := rc.currentActor(c)
	if !ok {
		return
	}
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Winners []dto.WinnerEntry `json:"winners" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	results, err := rc.results.Publish(c.Request.Context(), actor, hackathonID, req.Winners)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Results published successfully", results)
}

// List 查看公布结果
func (rc *ResultController) List(c *gin.Context) {
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	results, err := rc.results.List(c.Request.Context(), hackathonID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", results)
}
