// file: models/team_member.go
package models

import "time"

type TeamMemberRole string

const (
	TeamRoleLeader TeamMemberRole = "leader"
	TeamRoleMember TeamMemberRole = "member"
)

// TeamMember 队伍成员；(hackathon, user) 唯一保证一名用户在一场黑客松里只属于一支队伍
type TeamMember struct {
	ID          uint32         `gorm:"primarykey" json:"id"`
	TeamID      uint32         `gorm:"index;not null" json:"team_id"`
	HackathonID uint32         `gorm:"uniqueIndex:unique_hackathon_user;not null" json:"hackathon_id"`
	UserID      uint32         `gorm:"uniqueIndex:unique_hackathon_user;not null" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role        TeamMemberRole `gorm:"size:20;not null;default:'member'" json:"role"`
	JoinedAt    time.Time      `json:"joined_at"`
}

func (TeamMember) TableName() string {
	return "vibebuild_team_member"
}
