// file: models/hackathon.go
package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// HackathonStatus 主办方手动控制的状态；"进行中/评审中"等阶段由时间窗口推导，不落库
type HackathonStatus string

const (
	HackathonStatusDraft     HackathonStatus = "draft"
	HackathonStatusPublished HackathonStatus = "published"
	HackathonStatusEnded     HackathonStatus = "ended"
)

type RegistrationType string

const (
	RegistrationIndividual RegistrationType = "individual"
	RegistrationTeam       RegistrationType = "team"
)

// ScoringDimension 主办方定义的评分维度，权重合计必须为 100（发布时校验）
type ScoringDimension struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Award 奖项配置
type Award struct {
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
}

type Hackathon struct {
	ID          uint32          `gorm:"primarykey" json:"id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	CoverImage  string          `gorm:"size:255" json:"cover_image,omitempty"`
	ThemeTags   string          `gorm:"size:255" json:"theme_tags,omitempty"`
	Location    string          `gorm:"size:200" json:"location,omitempty"`
	IsOnline    bool            `gorm:"not null;default:true" json:"is_online"`
	OrganizerID uint32          `gorm:"not null;index" json:"organizer_id"`
	Status      HackathonStatus `gorm:"size:20;not null;default:'draft'" json:"status"`

	RegistrationType RegistrationType `gorm:"size:20;not null;default:'team'" json:"registration_type"`
	TeamSizeMin      int              `gorm:"not null;default:1" json:"team_size_min"`
	TeamSizeMax      int              `gorm:"not null;default:5" json:"team_size_max"`
	RequiresApproval bool             `gorm:"not null;default:false" json:"requires_approval"`
	MaxParticipants  int              `gorm:"not null;default:0" json:"max_participants"` // 0 表示不限
	// EnrolledCount 仅作为容量控制的并发守卫，不是排行榜等派生数据
	EnrolledCount int `gorm:"not null;default:0" json:"enrolled_count"`

	EventStart        time.Time  `gorm:"not null" json:"event_start" time_format:"2006-01-02T15:04:05Z07:00"`
	EventEnd          time.Time  `gorm:"not null" json:"event_end" time_format:"2006-01-02T15:04:05Z07:00"`
	RegistrationStart *time.Time `json:"registration_start,omitempty"`
	RegistrationEnd   *time.Time `json:"registration_end,omitempty"`
	SubmissionStart   *time.Time `json:"submission_start,omitempty"`
	SubmissionEnd     *time.Time `json:"submission_end,omitempty"`
	JudgingStart      *time.Time `json:"judging_start,omitempty"`
	JudgingEnd        *time.Time `json:"judging_end,omitempty"`

	RulesDetail string `gorm:"type:text" json:"rules_detail,omitempty"`
	// 评分维度与奖项在写入时校验结构，读取时直接反序列化，不做防御性容错
	ScoringDimensions datatypes.JSON `json:"scoring_dimensions,omitempty"`
	Awards            datatypes.JSON `json:"awards,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Hackathon) TableName() string {
	return "vibebuild_hackathon"
}

// Dimensions 反序列化评分维度
func (h *Hackathon) Dimensions() ([]ScoringDimension, error) {
	if len(h.ScoringDimensions) == 0 {
		return nil, nil
	}
	var dims []ScoringDimension
	if err := json.Unmarshal(h.ScoringDimensions, &dims); err != nil {
		return nil, err
	}
	return dims, nil
}

// SetDimensions 序列化评分维度
func (h *Hackathon) SetDimensions(dims []ScoringDimension) error {
	raw, err := json.Marshal(dims)
	if err != nil {
		return err
	}
	h.ScoringDimensions = raw
	return nil
}

// AwardList 反序列化奖项配置
func (h *Hackathon) AwardList() ([]Award, error) {
	if len(h.Awards) == 0 {
		return nil, nil
	}
	var awards []Award
	if err := json.Unmarshal(h.Awards, &awards); err != nil {
		return nil, err
	}
	return awards, nil
}

// SetAwards 序列化奖项配置
func (h *Hackathon) SetAwards(awards []Award) error {
	raw, err := json.Marshal(awards)
	if err != nil {
		return err
	}
	h.Awards = raw
	return nil
}
