// file: controllers/team_controller.go
package controllers

import (
	"vibebuild/services"
	"vibebuild/utils"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	actorResolver
	teams *services.TeamService
}

func NewTeamController(identity *services.IdentityService, teams *services.TeamService) *TeamController {
	return &TeamController{
		actorResolver: actorResolver{identity: identity},
		teams:         teams,
	}
}

func (tc *TeamController) Create(c *gin.Context) {
	actor, ok := tc.currentActor(c)
	if !ok {
		return
	}
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		TeamName    string `json:"team_name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	team, err := tc.teams.CreateTeam(c.Request.Context(), actor, hackathonID, req.TeamName, req.Description)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Team created successfully", gin.H{
		"id":              team.ID,
		"team_name":       team.TeamName,
		"leader_id":       team.LeaderID,
		"invitation_code": team.InvitationCode,
	})
}

func (tc *TeamController) Join(c *gin.Context) {
	actor, ok := tc.currentActor(c)
	if !ok {
		return
	}
	var req struct {
		InvitationCode string `json:"invitation_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}

	team, err := tc.teams.JoinTeam(c.Request.Context(), actor, req.InvitationCode)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Joined team successfully", gin.H{
		"team_id":   team.ID,
		"team_name": team.TeamName,
	})
}

func (tc *TeamController) Leave(c *gin.Context) {
	actor, ok := tc.currentActor(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := tc.teams.LeaveTeam(c.Request.Context(), actor, teamID); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Left team successfully", nil)
}

func (tc *TeamController) TransferLeadership(c *gin.Context) {
	actor, ok := tc.currentActor(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		NewLeaderID uint32 `json:"new_leader_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效")
		return
	}
	if err := tc.teams.TransferLeadership(c.Request.Context(), actor, teamID, req.NewLeaderID); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Leadership transferred successfully", nil)
}

func (tc *TeamController) KickMember(c *gin.Context) {
	actor, ok := tc.currentActor(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	if err := tc.teams.KickMember(c.Request.Context(), actor, teamID, userID); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "Member removed successfully", nil)
}

func (tc *TeamController) ListByHackathon(c *gin.Context) {
	hackathonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	teams, err := tc.teams.ListByHackathon(c.Request.Context(), hackathonID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, "success", teams)
}
