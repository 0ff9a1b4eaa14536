// file: controllers/project_controller.go
package controllers

import (
	"vibebuild/dto"
	"vibebuild/services"
	"vibebuild/utils"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	actorResolver
	projects *services.ProjectService
}

func NewProjectController(identity *services.IdentityService, projects *services.ProjectService) *ProjectController {
	return &ProjectController{
		actorResolver: actorResolver{identity: identity},
		projects:      projects,
	}
}

// Upsert 创建或编辑本队作品（一队一作品，重复创建即编辑）
func (pc *ProjectController) Upsert(c *gin.Context) {
	actor, ok := pc.currentActor(c)
	if !ok {
		return
	}
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProjectFields
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}
	project, err := pc.projects.Upsert(c.Request.Context(), actor, hackathonID, req)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Project saved successfully", project)
}

// Submit 提交作品
func (pc *ProjectController) Submit(c *gin.Context) {
	actor, ok := pc.currentActor(c)
	if !ok {
		return
	}
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	project, err := pc.projects.Submit(c.Request.Context(), actor, hackathonID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Project submitted successfully", project)
}

// Mine 查询本队作品
func (pc *ProjectController) Mine(c *gin.Context) {
	actor, ok := pc.currentActor(c)
	if !ok {
		return
	}
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	project, err := pc.projects.TeamProject(c.Request.Context(), actor, hackathonID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", project)
}

// ListSubmitted 已提交作品列表（评委打分入口）
func (pc *ProjectController) ListSubmitted(c *gin.Context) {
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	projects, err := pc.projects.ListSubmitted(c.Request.Context(), hackathonID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", projects)
}
