// file: models/team.go
package models

import "time"

type Team struct {
	ID          uint32 `gorm:"primarykey" json:"id"`
	HackathonID uint32 `gorm:"uniqueIndex:unique_hackathon_team_name;not null" json:"hackathon_id"`
	TeamName    string `gorm:"uniqueIndex:unique_hackathon_team_name;size:100;not null" json:"team_name"`
	LeaderID    uint32 `gorm:"not null" json:"leader_id"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	// InvitationCode 入队凭证，队长分发
	InvitationCode string `gorm:"size:32;unique;not null" json:"invitation_code"`
	// MemberCount 容量控制的并发守卫列：入队通过条件更新原子占位，
	// 保证 team_size_max 在并发 join 下不被突破
	MemberCount int          `gorm:"not null;default:0" json:"member_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Members     []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (Team) TableName() string {
	return "vibebuild_team"
}
