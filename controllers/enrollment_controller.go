// file: controllers/enrollment_controller.go
package controllers

import (
	"vibebuild/models"
	"vibebuild/services"
	"vibebuild/utils"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	actorResolver
	enrollments *services.EnrollmentService
}

func NewEnrollmentController(identity *services.IdentityService, enrollments *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		actorResolver: actorResolver{identity: identity},
		enrollments:   enrollments,
	}
}

// Register 报名参加黑客松
func (ec *EnrollmentController) Register(c *gin.Context) {
	actor, ok := ec.currentActor(c)
	if !ok {
		return
	}
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	enrollment, err := ec.enrollments.Register(c.Request.Context(), actor, hackathonID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Enrolled successfully", enrollment)
}

// SetStatus 主办方审批报名
func (ec *EnrollmentController) SetStatus(c *gin.Context) {
	actor, ok := ec.currentActor(c)
	if !ok {
		return
	}
	enrollmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.EnrollmentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}
	enrollment, err := ec.enrollments.SetStatus(c.Request.Context(), actor, enrollmentID, req.Status)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Enrollment status updated", enrollment)
}

// ListByHackathon 主办方查看某场黑客松的报名列表
func (ec *EnrollmentController) ListByHackathon(c *gin.Context) {
	actor, ok := ec.currentActor(c)
	if !ok {
		return
	}
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	enrollments, err := ec.enrollments.ListByHackathon(c.Request.Context(), actor, hackathonID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", enrollments)
}

// ListMine 查看自己的报名记录
func (ec *EnrollmentController) ListMine(c *gin.Context) {
	actor, ok := ec.currentActor(c)
	if !ok {
		return
	}
	enrollments, err := ec.enrollments.ListMine(c.Request.Context(), actor)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", enrollments)
}
