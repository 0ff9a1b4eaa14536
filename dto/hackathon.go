// file: dto/hackathon.go
package dto

import (
	"time"

	"vibebuild/models"
)

// HackathonInput 主办方创建/编辑黑客松的请求体。
// 草稿阶段允许不完整，完整性在发布时统一校验
type HackathonInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	ThemeTags   string `json:"theme_tags"`
	Location    string `json:"location"`
	IsOnline    *bool  `json:"is_online"`

	RegistrationType models.RegistrationType `json:"registration_type"`
	TeamSizeMin      int                     `json:"team_size_min"`
	TeamSizeMax      int                     `json:"team_size_max"`
	RequiresApproval bool                    `json:"requires_approval"`
	MaxParticipants  int                     `json:"max_participants"`

	EventStart        time.Time  `json:"event_start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EventEnd          time.Time  `json:"event_end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	RegistrationStart *time.Time `json:"registration_start"`
	RegistrationEnd   *time.Time `json:"registration_end"`
	SubmissionStart   *time.Time `json:"submission_start"`
	SubmissionEnd     *time.Time `json:"submission_end"`
	JudgingStart      *time.Time `json:"judging_start"`
	JudgingEnd        *time.Time `json:"judging_end"`

	RulesDetail       string                    `json:"rules_detail"`
	ScoringDimensions []models.ScoringDimension `json:"scoring_dimensions"`
	Awards            []models.Award            `json:"awards"`
}

// HackathonDetail 带派生阶段的黑客松视图
type HackathonDetail struct {
	models.Hackathon
	Phase string `json:"phase"`
}

// HackathonDraft AI 协作方产出的结构化草稿。核心不信任也不特殊对待
// AI 内容：草稿走普通的创建/编辑入口，发布时同样校验
type HackathonDraft struct {
	DraftID           string                    `json:"draft_id"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	ThemeTags         string                    `json:"theme_tags"`
	RulesDetail       string                    `json:"rules_detail"`
	ScoringDimensions []models.ScoringDimension `json:"scoring_dimensions"`
	Awards            []models.Award            `json:"awards"`
}
