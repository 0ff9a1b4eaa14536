// file: controllers/ai_controller.go
package controllers

import (
	"vibebuild/services"
	"vibebuild/utils"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	ai *services.AIService
}

func NewAIController(ai *services.AIService) *AIController {
	return &AIController{ai: ai}
}

// GenerateDraft 根据主题生成黑客松策划草稿
func (ac *AIController) GenerateDraft(c *gin.Context) {
	var req struct {
		Topic string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	draft, err := ac.ai.GenerateHackathonDraft(c.Request.Context(), req.Topic)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Draft generated successfully", draft)
}
