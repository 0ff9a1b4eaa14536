// file: models/result.go
package models

import "time"

// Result 公布的获奖记录，与 Hackathon 置为 ended 同一事务写入，此后不可变
type Result struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	HackathonID uint32    `gorm:"index;not null" json:"hackathon_id"`
	ProjectID   uint32    `gorm:"not null" json:"project_id"`
	AwardName   string    `gorm:"size:100;not null" json:"award_name"`
	Rank        int       `gorm:"not null" json:"rank"`
	Comment     string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Result) TableName() string {
	return "vibebuild_result"
}
