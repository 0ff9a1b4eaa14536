// file: models/project.go
package models

import "time"

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectSubmitted ProjectStatus = "submitted"
)

// Project 一支队伍的唯一作品；team_id 唯一索引保证"一队一作品"，
// 重复创建视为编辑而不是报错
type Project struct {
	ID            uint32        `gorm:"primarykey" json:"id"`
	TeamID        uint32        `gorm:"uniqueIndex:unique_team_project;not null" json:"team_id"`
	HackathonID   uint32        `gorm:"index;not null" json:"hackathon_id"`
	Title         string        `gorm:"size:200;not null" json:"title"`
	Description   string        `gorm:"type:text" json:"description"`
	DemoURL       string        `gorm:"size:255" json:"demo_url,omitempty"`
	RepoURL       string        `gorm:"size:255" json:"repo_url,omitempty"`
	VideoURL      string        `gorm:"size:255" json:"video_url,omitempty"`
	AttachmentURL string        `gorm:"size:255" json:"attachment_url,omitempty"`
	Status        ProjectStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	SubmittedAt   *time.Time    `json:"submitted_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Project) TableName() string {
	return "vibebuild_project"
}
