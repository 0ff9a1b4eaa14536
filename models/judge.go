// file: models/judge.go
package models

import "time"

// Judge 主办方任命的评委，(hackathon, user) 唯一
type Judge struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	HackathonID uint32    `gorm:"uniqueIndex:unique_hackathon_judge;not null" json:"hackathon_id"`
	UserID      uint32    `gorm:"uniqueIndex:unique_hackathon_judge;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AppointedAt time.Time `json:"appointed_at"`
}

func (Judge) TableName() string {
	return "vibebuild_judge"
}
